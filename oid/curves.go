// Package oid provides the curve identifiers used by OpenPGP ECDSA and
// EdDSA keys, per RFC 6637 section 11 and the EdDSA draft extension.
package oid

import (
	"bytes"
	"crypto/elliptic"
)

// Curve describes one named curve and its OpenPGP OID encoding.
type Curve struct {
	// Name is the display name of the curve
	Name string
	// OID is the DER-encoded object identifier without tag and length
	OID []byte
	// Elliptic is the curve implementation for NIST curves, nil otherwise
	Elliptic elliptic.Curve
}

// well-known curves
var (
	CurveP256 = Curve{
		Name:     "NIST P-256",
		OID:      []byte{0x2a, 0x86, 0x48, 0xce, 0x3d, 0x03, 0x01, 0x07},
		Elliptic: elliptic.P256(),
	}
	CurveP384 = Curve{
		Name:     "NIST P-384",
		OID:      []byte{0x2b, 0x81, 0x04, 0x00, 0x22},
		Elliptic: elliptic.P384(),
	}
	CurveP521 = Curve{
		Name:     "NIST P-521",
		OID:      []byte{0x2b, 0x81, 0x04, 0x00, 0x23},
		Elliptic: elliptic.P521(),
	}
	CurveEd25519 = Curve{
		Name: "Ed25519",
		OID:  []byte{0x2b, 0x06, 0x01, 0x04, 0x01, 0xda, 0x47, 0x0f, 0x01},
	}
	CurveX25519 = Curve{
		Name: "Curve25519",
		OID:  []byte{0x2b, 0x06, 0x01, 0x04, 0x01, 0x97, 0x55, 0x01, 0x05, 0x01},
	}
)

var curves = []*Curve{
	&CurveP256,
	&CurveP384,
	&CurveP521,
	&CurveEd25519,
	&CurveX25519,
}

// ByOID returns the curve with the given OID encoding, or nil.
func ByOID(oid []byte) *Curve {
	for _, c := range curves {
		if bytes.Equal(c.OID, oid) {
			return c
		}
	}
	return nil
}

// ByElliptic returns the curve wrapping the given NIST curve, or nil.
func ByElliptic(c elliptic.Curve) *Curve {
	for _, known := range curves {
		if known.Elliptic != nil && known.Elliptic == c {
			return known
		}
	}
	return nil
}
