package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain(t *testing.T) {
	out := bytes.NewBuffer([]byte{})
	errout := bytes.NewBuffer([]byte{})
	rc := 0
	exit := func(c int) {
		rc = c
	}

	realMain([]string{"xsig-tool", "bogus"}, out, errout, exit)
	assert.Equal(t, 1, rc)
	assert.Equal(t, "xsig-tool: error: unexpected argument bogus\n", errout.String())
	assert.Empty(t, out.String())
}
