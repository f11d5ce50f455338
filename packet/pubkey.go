package packet

import (
	"encoding/binary"
	"time"
)

// PublicKey is the decoded body of a public key or public subkey packet,
// per RFC 4880 section 5.5.2. Only version 4 keys are supported.
type PublicKey struct {
	// Version is the key packet version, always 4
	Version int
	// CreatedAt is the key creation time
	CreatedAt time.Time
	// Algorithm is the public key algorithm tag
	Algorithm PublicKeyAlgorithm
	// Params holds the raw algorithm-specific public parameter bytes
	Params []byte
}

// KeyParams is the decoded algorithm-specific portion of a key packet.
type KeyParams struct {
	// MPIs holds the multiprecision integers in wire order
	MPIs [][]byte
	// CurveOID holds the curve identifier for ECDSA/EdDSA/ECDH keys
	CurveOID []byte
}

// ParsePublicKey decodes the body of a public key packet.
func ParsePublicKey(body []byte) (*PublicKey, error) {
	if len(body) < 6 {
		return nil, formatErr(0, "truncated public key packet")
	}
	if body[0] != 4 {
		return nil, formatErr(0, "unsupported key packet version %d", body[0])
	}

	pk := &PublicKey{
		Version:   4,
		CreatedAt: time.Unix(int64(binary.BigEndian.Uint32(body[1:5])), 0).UTC(),
		Algorithm: PublicKeyAlgorithm(body[5]),
		Params:    body[6:],
	}

	// validate the parameter shape up front so that a malformed key
	// fails at parse time, not at verification time
	if _, err := ParseKeyParams(pk.Algorithm, pk.Params); err != nil {
		return nil, err
	}

	return pk, nil
}

// ParseKeyParams decodes the algorithm-specific public parameters of a key
// packet. The parameter layout per algorithm follows RFC 4880 section 5.5.2
// and RFC 6637 section 9.
func ParseKeyParams(algo PublicKeyAlgorithm, params []byte) (*KeyParams, error) {
	switch algo {
	case AlgoRSA, AlgoRSAEncryptOnly, AlgoRSASignOnly:
		return readMPIParams(params, 2)
	case AlgoElGamal, AlgoElGamalEncrypt:
		return readMPIParams(params, 3)
	case AlgoDSA:
		return readMPIParams(params, 4)
	case AlgoECDSA, AlgoEdDSA, AlgoECDH:
		return readCurveParams(params)
	}
	return nil, formatErr(0, "unknown public key algorithm %d", algo)
}

func readMPIParams(params []byte, count int) (*KeyParams, error) {
	kp := &KeyParams{}
	off := 0
	for i := 0; i < count; i++ {
		mpi, next, err := readMPI(params, off)
		if err != nil {
			return nil, err
		}
		kp.MPIs = append(kp.MPIs, mpi)
		off = next
	}
	if off != len(params) {
		return nil, formatErr(off, "trailing bytes after key parameters")
	}
	return kp, nil
}

func readCurveParams(params []byte) (*KeyParams, error) {
	if len(params) < 1 {
		return nil, formatErr(0, "truncated curve OID")
	}
	oidLen := int(params[0])
	if oidLen == 0 || oidLen == 0xff || 1+oidLen > len(params) {
		return nil, formatErr(0, "invalid curve OID length %d", oidLen)
	}

	kp := &KeyParams{
		CurveOID: params[1 : 1+oidLen],
	}

	point, next, err := readMPI(params, 1+oidLen)
	if err != nil {
		return nil, err
	}
	kp.MPIs = append(kp.MPIs, point)

	// ECDH carries trailing KDF parameters after the point; signing
	// algorithms must end exactly at the point
	if next != len(params) && len(params[next:]) > 0 {
		rest := params[next:]
		kdfLen := int(rest[0])
		if 1+kdfLen != len(rest) {
			return nil, formatErr(next, "trailing bytes after curve point")
		}
	}

	return kp, nil
}
