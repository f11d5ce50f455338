package packet

import (
	"encoding/binary"
)

// Parse decodes a raw OpenPGP byte stream into its packet sequence.
//
// Parsing is deterministic and keeps no state between calls: re-invoking
// Parse on the same bytes yields an identical sequence. A packet whose
// declared length exceeds the remaining input, or a truncated header,
// fails with *FormatError; no partial sequence is returned.
func Parse(b []byte) ([]Packet, error) {
	var packets []Packet

	off := 0
	for off < len(b) {
		p, next, err := parseOne(b, off)
		if err != nil {
			return nil, err
		}
		packets = append(packets, p)
		off = next
	}

	return packets, nil
}

// parseOne decodes the packet starting at off and returns it together
// with the offset of the next packet header.
func parseOne(b []byte, off int) (Packet, int, error) {
	hdr := b[off]
	if hdr&0x80 == 0 {
		return Packet{}, 0, formatErr(off, "invalid packet header byte 0x%02x", hdr)
	}

	if hdr&0x40 != 0 {
		return parseNewFormat(b, off)
	}
	return parseOldFormat(b, off)
}

func parseOldFormat(b []byte, off int) (Packet, int, error) {
	tag := Tag((b[off] >> 2) & 0x0f)
	lengthType := b[off] & 0x03
	cur := off + 1

	var bodyLen int
	switch lengthType {
	case 0:
		if cur >= len(b) {
			return Packet{}, 0, formatErr(off, "truncated header")
		}
		bodyLen = int(b[cur])
		cur++
	case 1:
		if cur+2 > len(b) {
			return Packet{}, 0, formatErr(off, "truncated header")
		}
		bodyLen = int(binary.BigEndian.Uint16(b[cur : cur+2]))
		cur += 2
	case 2:
		if cur+4 > len(b) {
			return Packet{}, 0, formatErr(off, "truncated header")
		}
		bodyLen = int(binary.BigEndian.Uint32(b[cur : cur+4]))
		cur += 4
	case 3:
		// indeterminate length: body extends to the end of the input
		bodyLen = len(b) - cur
	}

	if bodyLen < 0 || cur+bodyLen > len(b) {
		return Packet{}, 0, formatErr(cur, "truncated body: declared %d bytes, %d remain", bodyLen, len(b)-cur)
	}

	return Packet{Tag: tag, Offset: off, Body: b[cur : cur+bodyLen]}, cur + bodyLen, nil
}

func parseNewFormat(b []byte, off int) (Packet, int, error) {
	tag := Tag(b[off] & 0x3f)
	cur := off + 1

	var body []byte
	for {
		n, partial, next, err := parseNewLength(b, cur)
		if err != nil {
			return Packet{}, 0, err
		}
		if next+n > len(b) {
			return Packet{}, 0, formatErr(next, "truncated body: declared %d bytes, %d remain", n, len(b)-next)
		}
		chunk := b[next : next+n]
		cur = next + n

		if !partial && body == nil {
			// common case: a single definite-length chunk
			body = chunk
			break
		}

		// partial body lengths: concatenate chunks into one body
		body = append(body, chunk...)
		if !partial {
			break
		}
	}

	return Packet{Tag: tag, Offset: off, Body: body}, cur, nil
}

// parseNewLength decodes one new-format length octet sequence at off,
// returning the chunk length, whether it is a partial body length, and
// the offset of the chunk data.
func parseNewLength(b []byte, off int) (n int, partial bool, next int, err error) {
	if off >= len(b) {
		return 0, false, 0, formatErr(off, "truncated header")
	}

	l := b[off]
	switch {
	case l < 192:
		return int(l), false, off + 1, nil
	case l < 224:
		if off+2 > len(b) {
			return 0, false, 0, formatErr(off, "truncated header")
		}
		return (int(l)-192)<<8 + int(b[off+1]) + 192, false, off + 2, nil
	case l == 255:
		if off+5 > len(b) {
			return 0, false, 0, formatErr(off, "truncated header")
		}
		return int(binary.BigEndian.Uint32(b[off+1 : off+5])), false, off + 5, nil
	default:
		// partial body length, always a power of two
		return 1 << (l & 0x1f), true, off + 1, nil
	}
}

// readMPI decodes one multiprecision integer at off within body,
// returning its bytes without the bit-count prefix.
func readMPI(body []byte, off int) (mpi []byte, next int, err error) {
	if off+2 > len(body) {
		return nil, 0, formatErr(off, "truncated MPI length")
	}
	bits := int(binary.BigEndian.Uint16(body[off : off+2]))
	n := (bits + 7) / 8
	if off+2+n > len(body) {
		return nil, 0, formatErr(off, "truncated MPI: declared %d bits", bits)
	}
	return body[off+2 : off+2+n], off + 2 + n, nil
}
