// Package scheme provides a unified dispatch layer for signature
// operations across public key algorithms.
//
// This package abstracts signing and verification to support:
//   - RSA with PKCS#1 v1.5 signatures
//   - DSA
//   - ElGamal, verification only, for legacy keys
//   - ECDSA on the NIST curves
//   - EdDSA over Ed25519
//
// Each algorithm is handled by a Backend registered under its algorithm
// tag. Dispatch is a single table lookup keyed by the tag carried on the
// key material; no algorithm is ever inferred from key size and there is
// no fallback between algorithms. The table is populated during package
// initialization and is read-only afterwards.
package scheme
