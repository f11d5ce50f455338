package packet_test

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/effective-security/xsig/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ed25519OID = []byte{0x2b, 0x06, 0x01, 0x04, 0x01, 0xda, 0x47, 0x0f, 0x01}

func ed25519KeyBody(t *testing.T, created uint32) []byte {
	t.Helper()

	body := []byte{4}
	body = binary.BigEndian.AppendUint32(body, created)
	body = append(body, byte(packet.AlgoEdDSA))
	body = append(body, byte(len(ed25519OID)))
	body = append(body, ed25519OID...)

	point := make([]byte, 33)
	point[0] = 0x40
	point[1] = 0x7f
	return packet.AppendMPI(body, point)
}

func TestParsePublicKey(t *testing.T) {
	pk, err := packet.ParsePublicKey(ed25519KeyBody(t, 1700000000))
	require.NoError(t, err)

	assert.Equal(t, 4, pk.Version)
	assert.Equal(t, packet.AlgoEdDSA, pk.Algorithm)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), pk.CreatedAt)

	kp, err := packet.ParseKeyParams(pk.Algorithm, pk.Params)
	require.NoError(t, err)
	assert.Equal(t, ed25519OID, kp.CurveOID)
	require.Len(t, kp.MPIs, 1)
	assert.Equal(t, byte(0x40), kp.MPIs[0][0])
}

func TestParsePublicKey_UnsupportedVersion(t *testing.T) {
	body := ed25519KeyBody(t, 1700000000)
	body[0] = 3

	_, err := packet.ParsePublicKey(body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported key packet version 3")
}

func TestParseKeyParams_Truncated(t *testing.T) {
	// RSA expects two MPIs; cut the second short
	params := packet.AppendMPI(nil, []byte{0x80, 0x01})
	params = append(params, 0x01, 0x00)

	_, err := packet.ParseKeyParams(packet.AlgoRSA, params)
	require.Error(t, err)

	var fe *packet.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Reason, "truncated MPI")
}

func TestParseKeyParams_TrailingBytes(t *testing.T) {
	params := packet.AppendMPI(nil, []byte{0x80, 0x01})
	params = packet.AppendMPI(params, []byte{0x01, 0x00, 0x01})
	params = append(params, 0xee)

	_, err := packet.ParseKeyParams(packet.AlgoRSA, params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing bytes")
}

func TestParseKeyParams_UnknownAlgorithm(t *testing.T) {
	_, err := packet.ParseKeyParams(packet.PublicKeyAlgorithm(99), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown public key algorithm 99")
}
