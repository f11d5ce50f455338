// Package gpg provides utilities for working with OpenPGP keys and signatures.
//
// This package supports:
//   - Loading and parsing OpenPGP public keys, armored or binary
//   - Keyring management for multiple keys
//   - Detached signature verification against loaded key material
//   - Detached signing with in-process private keys, with an optional
//     shell-out to a local gpg binary
//
// The package is commonly used for verifying signatures on signed metadata
// and validating the authenticity of downloaded artifacts. Verification and
// key loading are pure in-process computations; only the signing path may
// consult an external binary, and only when explicitly configured.
package gpg
