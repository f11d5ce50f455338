package keymat

import (
	"bytes"
	"crypto"
	"crypto/sha1"
	"encoding/binary"
	"time"

	"github.com/effective-security/xsig/packet"
)

// FingerprintSize is the length of a version 4 key fingerprint.
const FingerprintSize = sha1.Size

// KeyIDSize is the length of the short key identifier, the trailing
// bytes of the fingerprint.
const KeyIDSize = 8

// KeyMaterial is the canonical representation of one public key, with an
// optional private component and optional bound subkeys. Instances are
// immutable after construction.
type KeyMaterial struct {
	// Fingerprint is the 20-byte version 4 key fingerprint
	Fingerprint []byte
	// Algorithm is the public key algorithm tag
	Algorithm packet.PublicKeyAlgorithm
	// Params holds the raw OpenPGP-encoded public parameters
	Params []byte
	// Private is the optional in-process private key,
	// e.g. *rsa.PrivateKey or ed25519.PrivateKey
	Private crypto.PrivateKey
	// CreatedAt is the key creation time
	CreatedAt time.Time
	// ExpiresAt is the declared expiration from a self-signature,
	// nil when the key does not expire. Whether an expired key is
	// acceptable is a policy decision left to the caller.
	ExpiresAt *time.Time
	// Subkeys holds subkeys bound to this primary key
	Subkeys []*KeyMaterial
	// UserIDs holds the user ID strings attached to the key
	UserIDs []string
}

// KeyID returns the 8-byte short identifier, the low bytes of the
// fingerprint.
func (k *KeyMaterial) KeyID() []byte {
	return k.Fingerprint[FingerprintSize-KeyIDSize:]
}

// KeyIDString returns the short identifier in upper-case hex.
func (k *KeyMaterial) KeyIDString() string {
	return upperHex(k.KeyID())
}

// FingerprintString returns the fingerprint in upper-case hex.
func (k *KeyMaterial) FingerprintString() string {
	return upperHex(k.Fingerprint)
}

// HasPrivate returns true when the key carries an in-process private
// component usable for signing.
func (k *KeyMaterial) HasPrivate() bool {
	return k.Private != nil
}

// MatchesKeyID returns true when id equals this key's short identifier.
func (k *KeyMaterial) MatchesKeyID(id []byte) bool {
	return len(id) == KeyIDSize && bytes.Equal(k.KeyID(), id)
}

// FindSigner returns the key or subkey matching the given issuer key ID
// or fingerprint, or nil when none matches. Either argument may be nil.
func (k *KeyMaterial) FindSigner(keyID, fingerprint []byte) *KeyMaterial {
	if matches(k, keyID, fingerprint) {
		return k
	}
	for _, sub := range k.Subkeys {
		if matches(sub, keyID, fingerprint) {
			return sub
		}
	}
	return nil
}

func matches(k *KeyMaterial, keyID, fingerprint []byte) bool {
	if len(fingerprint) == FingerprintSize {
		return bytes.Equal(k.Fingerprint, fingerprint)
	}
	return k.MatchesKeyID(keyID)
}

// EncodePublicPacket returns the body of the OpenPGP public key packet
// for this key: version, creation time, algorithm tag and the encoded
// public parameters. The fingerprint is a pure function of these bytes.
func (k *KeyMaterial) EncodePublicPacket() []byte {
	body := make([]byte, 0, 6+len(k.Params))
	body = append(body, 4)
	body = binary.BigEndian.AppendUint32(body, uint32(k.CreatedAt.Unix()))
	body = append(body, byte(k.Algorithm))
	body = append(body, k.Params...)
	return body
}

// Fingerprint computes the version 4 fingerprint over a public key packet
// body, per RFC 4880 section 12.2.
func Fingerprint(body []byte) []byte {
	h := sha1.New()
	h.Write([]byte{0x99, byte(len(body) >> 8), byte(len(body))})
	h.Write(body)
	return h.Sum(nil)
}

func upperHex(b []byte) string {
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, digits[c>>4], digits[c&0x0f])
	}
	return string(out)
}
