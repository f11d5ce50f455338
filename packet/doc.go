// Package packet implements a parser for the OpenPGP binary packet format
// defined in RFC 4880.
//
// This package supports:
//   - Old- and new-format packet headers with all length encodings,
//     including partial body lengths
//   - Typed decoding of public key, public subkey, user ID and
//     signature packets
//   - Version 4 signature subpacket parsing
//
// Parsing is a pure function over the input bytes: the same input always
// yields the same packet sequence, and a malformed stream fails with a
// FormatError carrying the byte offset of the problem. Unknown packet tags
// are retained as unrecognized packets so that callers can decide whether
// they invalidate the surrounding structure.
//
// The package deliberately does not depend on an external OpenPGP
// implementation for key material extraction.
package packet
