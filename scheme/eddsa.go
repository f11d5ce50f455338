package scheme

import (
	"bytes"
	"crypto"
	"crypto/ed25519"

	"github.com/cockroachdb/errors"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/oid"
	"github.com/effective-security/xsig/packet"
)

func init() {
	mustRegister(packet.AlgoEdDSA, &Backend{
		Name:          "EdDSA",
		Verify:        eddsaVerify,
		Sign:          eddsaSign,
		ExportPublic:  eddsaExportPublic,
		ExportPrivate: eddsaExportPrivate,
	})
}

func eddsaDecode(key *keymat.KeyMaterial) (ed25519.PublicKey, error) {
	kp, err := packet.ParseKeyParams(key.Algorithm, key.Params)
	if err != nil {
		return nil, keyFormatErr(key.Algorithm, "%s", err.Error())
	}

	if !bytes.Equal(kp.CurveOID, oid.CurveEd25519.OID) {
		return nil, keyFormatErr(key.Algorithm, "unsupported curve OID %x", kp.CurveOID)
	}

	// native point encoding: 0x40 prefix followed by the 32-byte key
	point := kp.MPIs[0]
	if len(point) != ed25519.PublicKeySize+1 || point[0] != 0x40 {
		return nil, keyFormatErr(key.Algorithm, "invalid point encoding of %d bytes", len(point))
	}

	return ed25519.PublicKey(point[1:]), nil
}

func eddsaVerify(key *keymat.KeyMaterial, digest []byte, _ crypto.Hash, sig [][]byte) (bool, error) {
	pub, err := eddsaDecode(key)
	if err != nil {
		return false, err
	}
	if len(sig[0]) > 32 || len(sig[1]) > 32 {
		return false, nil
	}

	// EdDSA signs the digest itself; R and S are MPIs without leading
	// zeros and must be restored to their fixed width
	s := append(leftPad(sig[0], 32), leftPad(sig[1], 32)...)
	return ed25519.Verify(pub, digest, s), nil
}

func eddsaSign(key *keymat.KeyMaterial, digest []byte, _ crypto.Hash) ([]byte, error) {
	priv, ok := key.Private.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match EdDSA key material", key.Private)
	}

	s := ed25519.Sign(priv, digest)
	out := packet.AppendMPI(nil, s[:32])
	return packet.AppendMPI(out, s[32:]), nil
}

func eddsaExportPublic(key *keymat.KeyMaterial) ([]byte, error) {
	pub, err := eddsaDecode(key)
	if err != nil {
		return nil, err
	}

	point := append([]byte{0x40}, pub...)
	out := append([]byte{byte(len(oid.CurveEd25519.OID))}, oid.CurveEd25519.OID...)
	return packet.AppendMPI(out, point), nil
}

func eddsaExportPrivate(key *keymat.KeyMaterial) ([]byte, error) {
	priv, ok := key.Private.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match EdDSA key material", key.Private)
	}
	return packet.AppendMPI(nil, priv.Seed()), nil
}
