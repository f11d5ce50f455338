package gpg

// VerificationResult is the outcome of a signature verification attempt.
// Failed verification is a normal, typed return value, not an error, so
// that callers trying multiple candidate keys are not forced into
// error-based control flow.
type VerificationResult int

// Verification outcomes. The zero value is Malformed so that an
// uninitialized result never reads as success.
const (
	// Malformed means the signature or key could not be decoded
	Malformed VerificationResult = iota
	// Valid means the signature cryptographically checked out
	Valid
	// Invalid means the hash or signature did not match
	Invalid
	// KeyMismatch means the candidate key is not the signer
	KeyMismatch
	// UnsupportedAlgorithm means no backend handles the signature's
	// public key or hash algorithm
	UnsupportedAlgorithm
)

// String provides the result name
func (r VerificationResult) String() string {
	switch r {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case KeyMismatch:
		return "key mismatch"
	case UnsupportedAlgorithm:
		return "unsupported algorithm"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}
