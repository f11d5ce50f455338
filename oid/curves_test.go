package oid_test

import (
	"crypto/elliptic"
	"testing"

	"github.com/effective-security/xsig/oid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByOID(t *testing.T) {
	tcases := []struct {
		curve *oid.Curve
		name  string
	}{
		{&oid.CurveP256, "NIST P-256"},
		{&oid.CurveP384, "NIST P-384"},
		{&oid.CurveP521, "NIST P-521"},
		{&oid.CurveEd25519, "Ed25519"},
		{&oid.CurveX25519, "Curve25519"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			found := oid.ByOID(tc.curve.OID)
			require.NotNil(t, found)
			assert.Equal(t, tc.name, found.Name)
		})
	}

	assert.Nil(t, oid.ByOID([]byte{0x01, 0x02, 0x03}))
	assert.Nil(t, oid.ByOID(nil))
}

func TestByElliptic(t *testing.T) {
	found := oid.ByElliptic(elliptic.P256())
	require.NotNil(t, found)
	assert.Equal(t, oid.CurveP256.Name, found.Name)

	assert.Nil(t, oid.ByElliptic(elliptic.P224()))
	assert.Nil(t, oid.ByElliptic(nil))
}
