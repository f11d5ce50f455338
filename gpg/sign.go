package gpg

import (
	"encoding/binary"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/metricskey"
	"github.com/effective-security/xsig/packet"
	"github.com/effective-security/xsig/scheme"
)

// DefaultHash is the hash algorithm used for new signatures.
const DefaultHash = packet.HashSHA256

// SignDetached produces a binary detached OpenPGP signature over data
// using the key's in-process private component. Keys without private
// material fail with scheme.ErrMissingPrivateKey; use Signer for keys
// held by a local gpg installation.
func SignDetached(data []byte, key *keymat.KeyMaterial) ([]byte, error) {
	return SignDetachedWithHash(data, key, DefaultHash)
}

// SignDetachedWithHash is SignDetached with an explicit hash algorithm.
func SignDetachedWithHash(data []byte, key *keymat.KeyMaterial, hashAlgo packet.HashAlgorithm) ([]byte, error) {
	if key == nil {
		return nil, errors.New("nil key material")
	}
	defer metricskey.PerfSignatureOperation.MeasureSince(time.Now(), key.Algorithm.String(), "sign")

	hash := hashAlgo.CryptoHash()
	if hash == 0 || !hash.Available() {
		return nil, errors.Errorf("hash algorithm %s is not available", hashAlgo)
	}

	// hashed subpackets: creation time and issuer fingerprint
	created := make([]byte, 4)
	binary.BigEndian.PutUint32(created, uint32(time.Now().Unix()))
	var hashedSub []byte
	hashedSub = packet.AppendSubpacket(hashedSub, 2, created)
	hashedSub = packet.AppendSubpacket(hashedSub, 33, append([]byte{4}, key.Fingerprint...))

	hashedRegion := []byte{4, byte(packet.SigTypeBinary), byte(key.Algorithm), byte(hashAlgo)}
	hashedRegion = binary.BigEndian.AppendUint16(hashedRegion, uint16(len(hashedSub)))
	hashedRegion = append(hashedRegion, hashedSub...)

	h := hash.New()
	h.Write(data)
	h.Write(hashedRegion)
	h.Write(v4Trailer(len(hashedRegion)))
	digest := h.Sum(nil)

	sigData, err := scheme.Sign(key, digest, hash)
	if err != nil {
		return nil, err
	}

	// unhashed subpackets: issuer key ID
	var unhashedSub []byte
	unhashedSub = packet.AppendSubpacket(unhashedSub, 16, key.KeyID())

	body := hashedRegion
	body = binary.BigEndian.AppendUint16(body, uint16(len(unhashedSub)))
	body = append(body, unhashedSub...)
	body = append(body, digest[0], digest[1])
	body = append(body, sigData...)

	return packet.Serialize(packet.TagSignature, body), nil
}
