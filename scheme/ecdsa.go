package scheme

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"math/big"

	"github.com/cockroachdb/errors"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/oid"
	"github.com/effective-security/xsig/packet"
)

func init() {
	mustRegister(packet.AlgoECDSA, &Backend{
		Name:          "ECDSA",
		Verify:        ecdsaVerify,
		Sign:          ecdsaSign,
		ExportPublic:  ecdsaExportPublic,
		ExportPrivate: ecdsaExportPrivate,
	})
}

func ecdsaDecode(key *keymat.KeyMaterial) (*ecdsa.PublicKey, *oid.Curve, error) {
	kp, err := packet.ParseKeyParams(key.Algorithm, key.Params)
	if err != nil {
		return nil, nil, keyFormatErr(key.Algorithm, "%s", err.Error())
	}

	curve := oid.ByOID(kp.CurveOID)
	if curve == nil || curve.Elliptic == nil {
		return nil, nil, keyFormatErr(key.Algorithm, "unsupported curve OID %x", kp.CurveOID)
	}

	x, y := elliptic.Unmarshal(curve.Elliptic, kp.MPIs[0])
	if x == nil {
		return nil, nil, keyFormatErr(key.Algorithm, "invalid point on %s", curve.Name)
	}

	return &ecdsa.PublicKey{Curve: curve.Elliptic, X: x, Y: y}, curve, nil
}

func ecdsaVerify(key *keymat.KeyMaterial, digest []byte, _ crypto.Hash, sig [][]byte) (bool, error) {
	pub, _, err := ecdsaDecode(key)
	if err != nil {
		return false, err
	}

	r := new(big.Int).SetBytes(sig[0])
	s := new(big.Int).SetBytes(sig[1])
	return ecdsa.Verify(pub, digest, r, s), nil
}

func ecdsaSign(key *keymat.KeyMaterial, digest []byte, _ crypto.Hash) ([]byte, error) {
	priv, ok := key.Private.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match ECDSA key material", key.Private)
	}

	r, s, err := ecdsa.Sign(rand.Reader, priv, digest)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	out := packet.AppendMPI(nil, r.Bytes())
	return packet.AppendMPI(out, s.Bytes()), nil
}

func ecdsaExportPublic(key *keymat.KeyMaterial) ([]byte, error) {
	pub, curve, err := ecdsaDecode(key)
	if err != nil {
		return nil, err
	}

	point := elliptic.Marshal(pub.Curve, pub.X, pub.Y)
	out := append([]byte{byte(len(curve.OID))}, curve.OID...)
	return packet.AppendMPI(out, point), nil
}

func ecdsaExportPrivate(key *keymat.KeyMaterial) ([]byte, error) {
	priv, ok := key.Private.(*ecdsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match ECDSA key material", key.Private)
	}
	return packet.AppendMPI(nil, priv.D.Bytes()), nil
}
