package scheme

import (
	"crypto"
	"math/big"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/packet"
)

// ElGamal signatures appear only on legacy keys; the backend is
// verify-only and signing dispatches to ErrSigningNotSupported.
func init() {
	mustRegister(packet.AlgoElGamal, &Backend{
		Name:         "ElGamal",
		Verify:       elgamalVerify,
		ExportPublic: elgamalExportPublic,
	})
}

type elgamalKey struct {
	p, g, y *big.Int
}

func elgamalDecode(key *keymat.KeyMaterial) (*elgamalKey, error) {
	kp, err := packet.ParseKeyParams(key.Algorithm, key.Params)
	if err != nil {
		return nil, keyFormatErr(key.Algorithm, "%s", err.Error())
	}

	k := &elgamalKey{
		p: new(big.Int).SetBytes(kp.MPIs[0]),
		g: new(big.Int).SetBytes(kp.MPIs[1]),
		y: new(big.Int).SetBytes(kp.MPIs[2]),
	}
	if k.p.BitLen() < 512 {
		return nil, keyFormatErr(key.Algorithm, "prime too short: %d bits", k.p.BitLen())
	}
	return k, nil
}

func elgamalVerify(key *keymat.KeyMaterial, digest []byte, _ crypto.Hash, sig [][]byte) (bool, error) {
	pub, err := elgamalDecode(key)
	if err != nil {
		return false, err
	}

	r := new(big.Int).SetBytes(sig[0])
	s := new(big.Int).SetBytes(sig[1])

	one := big.NewInt(1)
	pm1 := new(big.Int).Sub(pub.p, one)
	if r.Cmp(one) < 0 || r.Cmp(pub.p) >= 0 || s.Cmp(one) < 0 || s.Cmp(pm1) >= 0 {
		return false, nil
	}

	// g^m == y^r * r^s (mod p)
	m := new(big.Int).SetBytes(digest)
	lhs := new(big.Int).Exp(pub.g, m, pub.p)
	rhs := new(big.Int).Exp(pub.y, r, pub.p)
	rhs.Mul(rhs, new(big.Int).Exp(r, s, pub.p))
	rhs.Mod(rhs, pub.p)

	return lhs.Cmp(rhs) == 0, nil
}

func elgamalExportPublic(key *keymat.KeyMaterial) ([]byte, error) {
	pub, err := elgamalDecode(key)
	if err != nil {
		return nil, err
	}
	out := packet.AppendMPI(nil, pub.p.Bytes())
	out = packet.AppendMPI(out, pub.g.Bytes())
	return packet.AppendMPI(out, pub.y.Bytes()), nil
}
