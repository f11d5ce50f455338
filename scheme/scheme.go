package scheme

import (
	"crypto"
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/packet"
)

// ErrUnsupportedAlgorithm is returned when the algorithm tag has no
// registered backend.
var ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

// ErrMissingPrivateKey is returned when signing is requested for key
// material without a private component.
var ErrMissingPrivateKey = errors.New("missing private key")

// ErrSigningNotSupported is returned when the algorithm is verify-only.
var ErrSigningNotSupported = errors.New("signing not supported")

// KeyFormatError reports public key parameters that cannot be decoded
// into the algorithm's expected shape.
type KeyFormatError struct {
	Algorithm packet.PublicKeyAlgorithm
	Reason    string
}

// Error implements the error interface
func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("invalid %s key parameters: %s", e.Algorithm, e.Reason)
}

func keyFormatErr(algo packet.PublicKeyAlgorithm, format string, args ...any) *KeyFormatError {
	return &KeyFormatError{Algorithm: algo, Reason: fmt.Sprintf(format, args...)}
}

// Backend implements the signature operations of one algorithm.
type Backend struct {
	// Name is the display name of the algorithm
	Name string
	// Verify checks sig, the decoded signature MPIs, over digest.
	// A cryptographically mismatched signature returns false with a
	// nil error.
	Verify func(key *keymat.KeyMaterial, digest []byte, hash crypto.Hash, sig [][]byte) (bool, error)
	// Sign produces the MPI-encoded signature region over digest.
	// Nil for verify-only algorithms.
	Sign func(key *keymat.KeyMaterial, digest []byte, hash crypto.Hash) ([]byte, error)
	// ExportPublic re-encodes the public parameters in canonical form
	ExportPublic func(key *keymat.KeyMaterial) ([]byte, error)
	// ExportPrivate encodes the private component, nil when the
	// algorithm does not support private key export
	ExportPrivate func(key *keymat.KeyMaterial) ([]byte, error)
}

var (
	lockBackends sync.RWMutex
	backends     = make(map[packet.PublicKeyAlgorithm]*Backend)
)

// Register adds a backend for the given algorithm tag. Registration
// happens during package initialization; registering a tag twice fails.
func Register(algo packet.PublicKeyAlgorithm, b *Backend) error {
	lockBackends.Lock()
	defer lockBackends.Unlock()

	if _, ok := backends[algo]; ok {
		return errors.Errorf("already registered: %s", algo)
	}
	backends[algo] = b
	return nil
}

func mustRegister(algo packet.PublicKeyAlgorithm, b *Backend) {
	if err := Register(algo, b); err != nil {
		panic(err)
	}
}

// Registered returns the algorithm tags with a registered backend.
func Registered() []packet.PublicKeyAlgorithm {
	lockBackends.RLock()
	defer lockBackends.RUnlock()

	list := make([]packet.PublicKeyAlgorithm, 0, len(backends))
	for a := range backends {
		list = append(list, a)
	}
	return list
}

func lookup(algo packet.PublicKeyAlgorithm) (*Backend, error) {
	lockBackends.RLock()
	defer lockBackends.RUnlock()

	b, ok := backends[algo]
	if !ok {
		return nil, errors.WithMessagef(ErrUnsupportedAlgorithm, "no backend for algorithm %d", algo)
	}
	return b, nil
}

// Verify checks the MPI-encoded signature region sigBytes over digest
// using the backend registered for the key's algorithm tag. A valid but
// mismatched signature returns false with a nil error; errors are
// reserved for unregistered algorithms, undecodable key parameters and
// malformed signature encodings.
func Verify(key *keymat.KeyMaterial, digest, sigBytes []byte, hash crypto.Hash) (bool, error) {
	b, err := lookup(key.Algorithm)
	if err != nil {
		return false, err
	}

	sig, err := packet.ParseSigParams(key.Algorithm, sigBytes)
	if err != nil {
		return false, err
	}

	return b.Verify(key, digest, hash, sig)
}

// Sign produces the MPI-encoded signature region over digest. The key
// must carry a private component.
func Sign(key *keymat.KeyMaterial, digest []byte, hash crypto.Hash) ([]byte, error) {
	b, err := lookup(key.Algorithm)
	if err != nil {
		return nil, err
	}
	if b.Sign == nil {
		return nil, errors.WithMessagef(ErrSigningNotSupported, "algorithm %s", b.Name)
	}
	if !key.HasPrivate() {
		return nil, errors.WithMessagef(ErrMissingPrivateKey, "key %s", key.KeyIDString())
	}
	return b.Sign(key, digest, hash)
}

// ExportPublic re-encodes the public parameters of the key in canonical
// form, suitable for rebuilding identical key material.
func ExportPublic(key *keymat.KeyMaterial) ([]byte, error) {
	b, err := lookup(key.Algorithm)
	if err != nil {
		return nil, err
	}
	return b.ExportPublic(key)
}

// ExportPrivate encodes the private component of the key.
func ExportPrivate(key *keymat.KeyMaterial) ([]byte, error) {
	b, err := lookup(key.Algorithm)
	if err != nil {
		return nil, err
	}
	if b.ExportPrivate == nil {
		return nil, errors.WithMessagef(ErrSigningNotSupported, "algorithm %s", b.Name)
	}
	if !key.HasPrivate() {
		return nil, errors.WithMessagef(ErrMissingPrivateKey, "key %s", key.KeyIDString())
	}
	return b.ExportPrivate(key)
}
