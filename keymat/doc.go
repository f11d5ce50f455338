// Package keymat provides the canonical in-memory representation of public
// and private key material, independent of the source format.
//
// A KeyMaterial is constructed either from a parsed OpenPGP packet sequence
// via FromPackets, or directly from in-process crypto keys via the New*
// constructors. Instances are immutable after construction and safe for
// concurrent use.
//
// The key identifier is a pure function of the algorithm tag, the creation
// time and the encoded public parameters: two instances with the same
// fingerprint hold identical public keys.
package keymat
