package packet_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/effective-security/xsig/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sigBody builds a structurally valid version 4 signature packet body.
func sigBody(t *testing.T, typ packet.SigType, algo packet.PublicKeyAlgorithm, hashed, unhashed []byte) []byte {
	t.Helper()

	body := []byte{4, byte(typ), byte(algo), byte(packet.HashSHA256)}
	body = binary.BigEndian.AppendUint16(body, uint16(len(hashed)))
	body = append(body, hashed...)
	body = binary.BigEndian.AppendUint16(body, uint16(len(unhashed)))
	body = append(body, unhashed...)
	body = append(body, 0xab, 0xcd)

	// two well-formed signature MPIs
	r := make([]byte, 32)
	r[0] = 1
	s := make([]byte, 32)
	s[0] = 2
	body = packet.AppendMPI(body, r)
	return packet.AppendMPI(body, s)
}

func TestParseSignature(t *testing.T) {
	created := make([]byte, 4)
	binary.BigEndian.PutUint32(created, 1700000000)

	var hashed []byte
	hashed = packet.AppendSubpacket(hashed, 2, created)
	lifetime := make([]byte, 4)
	binary.BigEndian.PutUint32(lifetime, 86400)
	hashed = packet.AppendSubpacket(hashed, 9, lifetime)

	issuer := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	var unhashed []byte
	unhashed = packet.AppendSubpacket(unhashed, 16, issuer)

	sig, err := packet.ParseSignature(sigBody(t, packet.SigTypeBinary, packet.AlgoEdDSA, hashed, unhashed))
	require.NoError(t, err)

	assert.Equal(t, 4, sig.Version)
	assert.Equal(t, packet.SigTypeBinary, sig.Type)
	assert.Equal(t, packet.AlgoEdDSA, sig.Algorithm)
	assert.Equal(t, packet.HashSHA256, sig.Hash)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), sig.CreatedAt)
	assert.Equal(t, uint32(86400), sig.KeyLifetime)
	assert.Equal(t, issuer, sig.IssuerKeyID)
	assert.Equal(t, [2]byte{0xab, 0xcd}, sig.Left16)
}

func TestParseSignature_UnsupportedVersion(t *testing.T) {
	_, err := packet.ParseSignature([]byte{3, 0, 17, 2, 0, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported signature packet version 3")
}

func TestParseSignature_UnknownCriticalSubpacket(t *testing.T) {
	var hashed []byte
	hashed = packet.AppendSubpacket(hashed, 0x80|100, []byte{1})

	_, err := packet.ParseSignature(sigBody(t, packet.SigTypeBinary, packet.AlgoEdDSA, hashed, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown critical subpacket")
}

func TestParseSignature_UnknownNonCriticalIgnored(t *testing.T) {
	var hashed []byte
	hashed = packet.AppendSubpacket(hashed, 100, []byte{1})

	_, err := packet.ParseSignature(sigBody(t, packet.SigTypeBinary, packet.AlgoEdDSA, hashed, nil))
	require.NoError(t, err)
}

func TestParseSignature_TruncatedSubpackets(t *testing.T) {
	body := []byte{4, 0, byte(packet.AlgoEdDSA), byte(packet.HashSHA256), 0xff, 0xff}
	_, err := packet.ParseSignature(body)
	require.Error(t, err)

	var fe *packet.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Reason, "truncated hashed subpackets")
}

func TestParseSignature_TrailingBytes(t *testing.T) {
	body := sigBody(t, packet.SigTypeBinary, packet.AlgoEdDSA, nil, nil)
	body = append(body, 0x00)

	_, err := packet.ParseSignature(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing bytes")
}

func TestParseSigParams(t *testing.T) {
	// RSA carries a single MPI
	data := packet.AppendMPI(nil, []byte{0x42})
	mpis, err := packet.ParseSigParams(packet.AlgoRSA, data)
	require.NoError(t, err)
	require.Len(t, mpis, 1)

	// DSA needs two
	_, err = packet.ParseSigParams(packet.AlgoDSA, data)
	require.Error(t, err)

	// encryption-only algorithms never produce signatures
	_, err = packet.ParseSigParams(packet.AlgoECDH, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not produce signatures")
}
