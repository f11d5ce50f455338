package packet

import (
	"encoding/binary"
	"time"
)

// SigType is the OpenPGP signature type, per RFC 4880 section 5.2.1.
type SigType uint8

// Signature types used by the key block grammar and by detached signing
const (
	SigTypeBinary        SigType = 0x00
	SigTypeText          SigType = 0x01
	SigTypeGenericCert   SigType = 0x10
	SigTypePersonaCert   SigType = 0x11
	SigTypeCasualCert    SigType = 0x12
	SigTypePositiveCert  SigType = 0x13
	SigTypeSubkeyBinding SigType = 0x18
	SigTypeDirectKey     SigType = 0x1f
	SigTypeKeyRevocation SigType = 0x20
)

// IsCertification returns true for self-certification signature types
// binding a user ID to a key.
func (t SigType) IsCertification() bool {
	return t >= SigTypeGenericCert && t <= SigTypePositiveCert
}

// Signature is the decoded body of a version 4 signature packet,
// per RFC 4880 section 5.2.3.
type Signature struct {
	// Version is the signature packet version, always 4
	Version int
	// Type is the signature type
	Type SigType
	// Algorithm is the public key algorithm of the signing key
	Algorithm PublicKeyAlgorithm
	// Hash is the hash algorithm used over the signed data
	Hash HashAlgorithm
	// CreatedAt is the signature creation time from the hashed subpackets
	CreatedAt time.Time
	// IssuerKeyID is the 8-byte key ID of the signing key, nil if absent
	IssuerKeyID []byte
	// IssuerFingerprint is the full fingerprint of the signing key
	// when the issuer fingerprint subpacket is present
	IssuerFingerprint []byte
	// KeyLifetime is the key expiration period in seconds after key
	// creation, from a self-signature; zero means no expiration
	KeyLifetime uint32
	// HashedRegion holds the bytes from the version octet through the end
	// of the hashed subpackets, exactly as hashed during signing
	HashedRegion []byte
	// Left16 holds the leftmost two bytes of the signed hash
	Left16 [2]byte
	// SigData holds the raw algorithm-specific signature bytes
	SigData []byte
}

// ParseSignature decodes the body of a signature packet.
func ParseSignature(body []byte) (*Signature, error) {
	if len(body) < 1 {
		return nil, formatErr(0, "empty signature packet")
	}
	if body[0] != 4 {
		return nil, formatErr(0, "unsupported signature packet version %d", body[0])
	}
	if len(body) < 6 {
		return nil, formatErr(0, "truncated signature packet")
	}

	sig := &Signature{
		Version:   4,
		Type:      SigType(body[1]),
		Algorithm: PublicKeyAlgorithm(body[2]),
		Hash:      HashAlgorithm(body[3]),
	}

	hashedLen := int(binary.BigEndian.Uint16(body[4:6]))
	if 6+hashedLen > len(body) {
		return nil, formatErr(4, "truncated hashed subpackets: declared %d bytes", hashedLen)
	}
	sig.HashedRegion = body[:6+hashedLen]
	if err := sig.parseSubpackets(body[6:6+hashedLen], 6, true); err != nil {
		return nil, err
	}

	off := 6 + hashedLen
	if off+2 > len(body) {
		return nil, formatErr(off, "truncated unhashed subpackets length")
	}
	unhashedLen := int(binary.BigEndian.Uint16(body[off : off+2]))
	off += 2
	if off+unhashedLen > len(body) {
		return nil, formatErr(off, "truncated unhashed subpackets: declared %d bytes", unhashedLen)
	}
	if err := sig.parseSubpackets(body[off:off+unhashedLen], off, false); err != nil {
		return nil, err
	}
	off += unhashedLen

	if off+2 > len(body) {
		return nil, formatErr(off, "truncated hash check bytes")
	}
	copy(sig.Left16[:], body[off:off+2])
	off += 2

	sig.SigData = body[off:]
	if _, err := ParseSigParams(sig.Algorithm, sig.SigData); err != nil {
		return nil, err
	}

	return sig, nil
}

// ParseSigParams decodes the algorithm-specific portion of a signature
// packet: one MPI for RSA, two MPIs for DSA, ElGamal, ECDSA and EdDSA.
func ParseSigParams(algo PublicKeyAlgorithm, data []byte) ([][]byte, error) {
	count := 0
	switch algo {
	case AlgoRSA, AlgoRSASignOnly:
		count = 1
	case AlgoDSA, AlgoElGamal, AlgoECDSA, AlgoEdDSA:
		count = 2
	default:
		return nil, formatErr(0, "algorithm %s does not produce signatures", algo)
	}

	var mpis [][]byte
	off := 0
	for i := 0; i < count; i++ {
		mpi, next, err := readMPI(data, off)
		if err != nil {
			return nil, err
		}
		mpis = append(mpis, mpi)
		off = next
	}
	if off != len(data) {
		return nil, formatErr(off, "trailing bytes after signature values")
	}
	return mpis, nil
}

// subpacket types, per RFC 4880 section 5.2.3.1
const (
	subpacketCreationTime  = 2
	subpacketSigLifetime   = 3
	subpacketKeyLifetime   = 9
	subpacketIssuer        = 16
	subpacketPrimaryUserID = 25
	subpacketKeyFlags      = 27
	subpacketIssuerFpr     = 33
)

func (sig *Signature) parseSubpackets(data []byte, base int, hashed bool) error {
	off := 0
	for off < len(data) {
		n, next, err := parseSubpacketLength(data, off, base)
		if err != nil {
			return err
		}
		if n < 1 || next+n > len(data) {
			return formatErr(base+off, "truncated subpacket: declared %d bytes", n)
		}

		typ := data[next]
		critical := typ&0x80 != 0
		typ &= 0x7f
		contents := data[next+1 : next+n]

		switch typ {
		case subpacketCreationTime:
			if len(contents) != 4 {
				return formatErr(base+next, "invalid creation time subpacket")
			}
			if hashed {
				sig.CreatedAt = time.Unix(int64(binary.BigEndian.Uint32(contents)), 0).UTC()
			}
		case subpacketKeyLifetime:
			if len(contents) != 4 {
				return formatErr(base+next, "invalid key expiration subpacket")
			}
			if hashed {
				sig.KeyLifetime = binary.BigEndian.Uint32(contents)
			}
		case subpacketIssuer:
			if len(contents) != 8 {
				return formatErr(base+next, "invalid issuer subpacket")
			}
			if sig.IssuerKeyID == nil {
				sig.IssuerKeyID = contents
			}
		case subpacketIssuerFpr:
			// one version octet followed by the fingerprint
			if len(contents) < 2 {
				return formatErr(base+next, "invalid issuer fingerprint subpacket")
			}
			if hashed {
				sig.IssuerFingerprint = contents[1:]
			}
		default:
			if critical {
				return formatErr(base+next, "unknown critical subpacket type %d", typ)
			}
			// non-critical unknown subpackets are ignored
		}

		off = next + n
	}
	return nil
}

// parseSubpacketLength decodes a subpacket length octet sequence; the
// length includes the type octet. Partial lengths are not valid here.
func parseSubpacketLength(data []byte, off, base int) (n int, next int, err error) {
	if off >= len(data) {
		return 0, 0, formatErr(base+off, "truncated subpacket length")
	}
	l := data[off]
	switch {
	case l < 192:
		return int(l), off + 1, nil
	case l < 255:
		if off+2 > len(data) {
			return 0, 0, formatErr(base+off, "truncated subpacket length")
		}
		return (int(l)-192)<<8 + int(data[off+1]) + 192, off + 2, nil
	default:
		if off+5 > len(data) {
			return 0, 0, formatErr(base+off, "truncated subpacket length")
		}
		return int(binary.BigEndian.Uint32(data[off+1 : off+5])), off + 5, nil
	}
}
