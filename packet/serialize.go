package packet

import (
	"encoding/binary"
	"math/bits"
)

// Serialize frames body as one new-format packet with the given tag.
func Serialize(tag Tag, body []byte) []byte {
	out := make([]byte, 0, len(body)+6)
	out = append(out, 0xc0|byte(tag))

	n := len(body)
	switch {
	case n < 192:
		out = append(out, byte(n))
	case n < 8384:
		out = append(out, byte((n-192)>>8)+192, byte(n-192))
	default:
		out = append(out, 0xff)
		out = binary.BigEndian.AppendUint32(out, uint32(n))
	}

	return append(out, body...)
}

// AppendMPI appends the multiprecision integer encoding of b: a two-byte
// big-endian bit count followed by the value bytes without leading zeros.
func AppendMPI(dst, b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	bitLen := 0
	if len(b) > 0 {
		bitLen = (len(b)-1)*8 + bits.Len8(b[0])
	}
	dst = binary.BigEndian.AppendUint16(dst, uint16(bitLen))
	return append(dst, b...)
}

// AppendSubpacket appends one signature subpacket with the given type.
func AppendSubpacket(dst []byte, typ uint8, contents []byte) []byte {
	n := len(contents) + 1
	switch {
	case n < 192:
		dst = append(dst, byte(n))
	case n < 16320:
		dst = append(dst, byte((n-192)>>8)+192, byte(n-192))
	default:
		dst = append(dst, 0xff)
		dst = binary.BigEndian.AppendUint32(dst, uint32(n))
	}
	dst = append(dst, typ)
	return append(dst, contents...)
}
