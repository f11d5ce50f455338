package scheme

import (
	"crypto"
	"crypto/dsa"
	"crypto/rand"
	"math/big"

	"github.com/cockroachdb/errors"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/packet"
)

func init() {
	mustRegister(packet.AlgoDSA, &Backend{
		Name:          "DSA",
		Verify:        dsaVerify,
		Sign:          dsaSign,
		ExportPublic:  dsaExportPublic,
		ExportPrivate: dsaExportPrivate,
	})
}

func dsaDecode(key *keymat.KeyMaterial) (*dsa.PublicKey, error) {
	kp, err := packet.ParseKeyParams(key.Algorithm, key.Params)
	if err != nil {
		return nil, keyFormatErr(key.Algorithm, "%s", err.Error())
	}

	pub := &dsa.PublicKey{
		Parameters: dsa.Parameters{
			P: new(big.Int).SetBytes(kp.MPIs[0]),
			Q: new(big.Int).SetBytes(kp.MPIs[1]),
			G: new(big.Int).SetBytes(kp.MPIs[2]),
		},
		Y: new(big.Int).SetBytes(kp.MPIs[3]),
	}
	if pub.P.Sign() == 0 || pub.Q.Sign() == 0 {
		return nil, keyFormatErr(key.Algorithm, "zero group parameter")
	}
	return pub, nil
}

// dsaTruncate shortens the digest to the byte length of the subgroup
// order, per FIPS 186-4 section 4.6.
func dsaTruncate(q *big.Int, digest []byte) []byte {
	n := (q.BitLen() + 7) / 8
	if len(digest) > n {
		return digest[:n]
	}
	return digest
}

func dsaVerify(key *keymat.KeyMaterial, digest []byte, _ crypto.Hash, sig [][]byte) (bool, error) {
	pub, err := dsaDecode(key)
	if err != nil {
		return false, err
	}

	r := new(big.Int).SetBytes(sig[0])
	s := new(big.Int).SetBytes(sig[1])
	return dsa.Verify(pub, dsaTruncate(pub.Q, digest), r, s), nil
}

func dsaSign(key *keymat.KeyMaterial, digest []byte, _ crypto.Hash) ([]byte, error) {
	priv, ok := key.Private.(*dsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match DSA key material", key.Private)
	}

	r, s, err := dsa.Sign(rand.Reader, priv, dsaTruncate(priv.Q, digest))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	out := packet.AppendMPI(nil, r.Bytes())
	return packet.AppendMPI(out, s.Bytes()), nil
}

func dsaExportPublic(key *keymat.KeyMaterial) ([]byte, error) {
	pub, err := dsaDecode(key)
	if err != nil {
		return nil, err
	}
	out := packet.AppendMPI(nil, pub.P.Bytes())
	out = packet.AppendMPI(out, pub.Q.Bytes())
	out = packet.AppendMPI(out, pub.G.Bytes())
	return packet.AppendMPI(out, pub.Y.Bytes()), nil
}

func dsaExportPrivate(key *keymat.KeyMaterial) ([]byte, error) {
	priv, ok := key.Private.(*dsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match DSA key material", key.Private)
	}
	return packet.AppendMPI(nil, priv.X.Bytes()), nil
}
