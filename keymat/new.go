package keymat

import (
	"crypto/dsa"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"math/big"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/effective-security/xsig/oid"
	"github.com/effective-security/xsig/packet"
)

// NewRSA returns KeyMaterial wrapping an RSA public key. priv may be nil
// for a public-only key.
func NewRSA(pub *rsa.PublicKey, priv *rsa.PrivateKey, createdAt time.Time) *KeyMaterial {
	params := packet.AppendMPI(nil, pub.N.Bytes())
	params = packet.AppendMPI(params, big.NewInt(int64(pub.E)).Bytes())
	return newKey(packet.AlgoRSA, params, keyOrNil(priv), createdAt)
}

// NewDSA returns KeyMaterial wrapping a DSA public key.
func NewDSA(pub *dsa.PublicKey, priv *dsa.PrivateKey, createdAt time.Time) *KeyMaterial {
	params := packet.AppendMPI(nil, pub.P.Bytes())
	params = packet.AppendMPI(params, pub.Q.Bytes())
	params = packet.AppendMPI(params, pub.G.Bytes())
	params = packet.AppendMPI(params, pub.Y.Bytes())
	return newKey(packet.AlgoDSA, params, keyOrNil(priv), createdAt)
}

// NewECDSA returns KeyMaterial wrapping an ECDSA public key on a NIST
// curve. Unsupported curves fail.
func NewECDSA(pub *ecdsa.PublicKey, priv *ecdsa.PrivateKey, createdAt time.Time) (*KeyMaterial, error) {
	curve := oid.ByElliptic(pub.Curve)
	if curve == nil {
		return nil, errors.Errorf("unsupported curve: %s", pub.Curve.Params().Name)
	}

	point := elliptic.Marshal(pub.Curve, pub.X, pub.Y)
	params := append([]byte{byte(len(curve.OID))}, curve.OID...)
	params = packet.AppendMPI(params, point)
	return newKey(packet.AlgoECDSA, params, keyOrNil(priv), createdAt), nil
}

// NewEd25519 returns KeyMaterial wrapping an Ed25519 public key. The
// curve point carries the native-encoding 0x40 prefix per the OpenPGP
// EdDSA extension.
func NewEd25519(pub ed25519.PublicKey, priv ed25519.PrivateKey, createdAt time.Time) *KeyMaterial {
	point := append([]byte{0x40}, pub...)
	params := append([]byte{byte(len(oid.CurveEd25519.OID))}, oid.CurveEd25519.OID...)
	params = packet.AppendMPI(params, point)

	var pk any
	if priv != nil {
		pk = priv
	}
	return newKey(packet.AlgoEdDSA, params, pk, createdAt)
}

func newKey(algo packet.PublicKeyAlgorithm, params []byte, priv any, createdAt time.Time) *KeyMaterial {
	k := &KeyMaterial{
		Algorithm: algo,
		Params:    params,
		Private:   priv,
		CreatedAt: createdAt.Truncate(time.Second).UTC(),
	}
	k.Fingerprint = Fingerprint(k.EncodePublicPacket())
	return k
}

// keyOrNil avoids storing a typed nil pointer in the Private interface.
func keyOrNil[T any](priv *T) any {
	if priv == nil {
		return nil
	}
	return priv
}
