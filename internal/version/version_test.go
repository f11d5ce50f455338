package version_test

import (
	"testing"

	"github.com/effective-security/xsig/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	v := version.Current()
	assert.Equal(t, "dev", v.Build)
	assert.Equal(t, "0.1.dev", v.String())
}
