package scheme

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"math/big"

	"github.com/cockroachdb/errors"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/packet"
)

func init() {
	b := &Backend{
		Name:          "RSA",
		Verify:        rsaVerify,
		Sign:          rsaSign,
		ExportPublic:  rsaExportPublic,
		ExportPrivate: rsaExportPrivate,
	}
	mustRegister(packet.AlgoRSA, b)
	mustRegister(packet.AlgoRSASignOnly, b)
}

func rsaDecode(key *keymat.KeyMaterial) (*rsa.PublicKey, error) {
	kp, err := packet.ParseKeyParams(key.Algorithm, key.Params)
	if err != nil {
		return nil, keyFormatErr(key.Algorithm, "%s", err.Error())
	}

	n := new(big.Int).SetBytes(kp.MPIs[0])
	if n.BitLen() < 512 {
		return nil, keyFormatErr(key.Algorithm, "modulus too short: %d bits", n.BitLen())
	}
	if len(kp.MPIs[1]) > 4 {
		return nil, keyFormatErr(key.Algorithm, "exponent too large: %d bytes", len(kp.MPIs[1]))
	}
	e := new(big.Int).SetBytes(kp.MPIs[1])

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func rsaVerify(key *keymat.KeyMaterial, digest []byte, hash crypto.Hash, sig [][]byte) (bool, error) {
	pub, err := rsaDecode(key)
	if err != nil {
		return false, err
	}

	// the signature MPI drops leading zeros; PKCS#1 expects the full
	// modulus width
	s := leftPad(sig[0], (pub.N.BitLen()+7)/8)
	if err := rsa.VerifyPKCS1v15(pub, hash, digest, s); err != nil {
		return false, nil
	}
	return true, nil
}

func rsaSign(key *keymat.KeyMaterial, digest []byte, hash crypto.Hash) ([]byte, error) {
	priv, ok := key.Private.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match RSA key material", key.Private)
	}

	s, err := rsa.SignPKCS1v15(rand.Reader, priv, hash, digest)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return packet.AppendMPI(nil, s), nil
}

func rsaExportPublic(key *keymat.KeyMaterial) ([]byte, error) {
	pub, err := rsaDecode(key)
	if err != nil {
		return nil, err
	}
	out := packet.AppendMPI(nil, pub.N.Bytes())
	return packet.AppendMPI(out, big.NewInt(int64(pub.E)).Bytes()), nil
}

func rsaExportPrivate(key *keymat.KeyMaterial) ([]byte, error) {
	priv, ok := key.Private.(*rsa.PrivateKey)
	if !ok {
		return nil, errors.Errorf("private key of %T type does not match RSA key material", key.Private)
	}

	// d, p, q, u per RFC 4880 section 5.5.3
	p, q := priv.Primes[0], priv.Primes[1]
	u := new(big.Int).ModInverse(p, q)

	out := packet.AppendMPI(nil, priv.D.Bytes())
	out = packet.AppendMPI(out, p.Bytes())
	out = packet.AppendMPI(out, q.Bytes())
	return packet.AppendMPI(out, u.Bytes()), nil
}

func leftPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}
