package gpg

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/metricskey"
	"github.com/effective-security/xsig/packet"
	"github.com/effective-security/xsig/scheme"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xsig", "gpg")

// VerifyDetached checks a detached OpenPGP signature over data against the
// candidate key material. The signature may be armored or binary and must
// contain exactly one signature packet.
//
// The result distinguishes a cryptographically valid signature from every
// failure mode; the error is non-nil only when the call itself is invalid,
// such as a nil key.
func VerifyDetached(data, signature []byte, key *keymat.KeyMaterial) (VerificationResult, error) {
	if key == nil {
		return Malformed, errors.New("nil key material")
	}
	defer metricskey.PerfSignatureOperation.MeasureSince(time.Now(), key.Algorithm.String(), "verify")

	sig, ok := parseDetached(signature)
	if !ok {
		return Malformed, nil
	}

	if len(sig.IssuerKeyID) == 0 && len(sig.IssuerFingerprint) == 0 {
		logger.KV(xlog.TRACE, "reason", "no_issuer")
		return Malformed, nil
	}
	signer := key.FindSigner(sig.IssuerKeyID, sig.IssuerFingerprint)
	if signer == nil {
		return KeyMismatch, nil
	}

	// the signature's algorithm tag must match the key's; a mismatch is
	// a structural defect, never coerced into a signature check
	if normalize(sig.Algorithm) != normalize(signer.Algorithm) {
		logger.KV(xlog.DEBUG, "reason", "algorithm_mismatch",
			"signature", sig.Algorithm.String(), "key", signer.Algorithm.String())
		return Malformed, nil
	}

	hash := sig.Hash.CryptoHash()
	if hash == 0 || !hash.Available() {
		return UnsupportedAlgorithm, nil
	}

	h := hash.New()
	h.Write(data)
	h.Write(sig.HashedRegion)
	h.Write(v4Trailer(len(sig.HashedRegion)))
	digest := h.Sum(nil)

	// quick-reject on the hash check bytes before the expensive check
	if digest[0] != sig.Left16[0] || digest[1] != sig.Left16[1] {
		return Invalid, nil
	}

	ok, err := scheme.Verify(signer, digest, sig.SigData, hash)
	switch {
	case err == nil && ok:
		return Valid, nil
	case err == nil:
		return Invalid, nil
	case errors.Is(err, scheme.ErrUnsupportedAlgorithm):
		return UnsupportedAlgorithm, nil
	default:
		logger.KV(xlog.DEBUG, "reason", "verify_failed", "err", err.Error())
		return Malformed, nil
	}
}

// VerifyWithKeyRing tries each key in the ring in order and returns the
// first conclusive outcome together with the matching key. When no key in
// the ring is the signer, the result is KeyMismatch.
func VerifyWithKeyRing(data, signature []byte, ring []*keymat.KeyMaterial) (VerificationResult, *keymat.KeyMaterial, error) {
	if len(ring) == 0 {
		return Malformed, nil, errors.New("empty keyring")
	}

	for _, key := range ring {
		res, err := VerifyDetached(data, signature, key)
		if err != nil {
			return res, nil, err
		}
		if res != KeyMismatch {
			return res, key, nil
		}
	}
	return KeyMismatch, nil, nil
}

// ParseSignature decodes a detached signature, armored or binary, into
// its signature record. The input must contain exactly one signature
// packet.
func ParseSignature(signature []byte) (*packet.Signature, error) {
	sig, ok := parseDetached(signature)
	if !ok {
		return nil, errors.Errorf("malformed detached signature")
	}
	return sig, nil
}

// parseDetached returns the single signature record from a detached
// signature blob, reporting false for anything malformed or ambiguous.
func parseDetached(signature []byte) (*packet.Signature, bool) {
	raw, err := dearmor(signature, sigBlockType)
	if err != nil {
		logger.KV(xlog.TRACE, "reason", "dearmor", "err", err.Error())
		return nil, false
	}

	pkts, err := packet.Parse(raw)
	if err != nil {
		logger.KV(xlog.TRACE, "reason", "parse", "err", err.Error())
		return nil, false
	}

	var sigPacket *packet.Packet
	for i := range pkts {
		if pkts[i].Tag != packet.TagSignature {
			return nil, false
		}
		if sigPacket != nil {
			// ambiguous: more than one signature packet
			return nil, false
		}
		sigPacket = &pkts[i]
	}
	if sigPacket == nil {
		return nil, false
	}

	sig, err := packet.ParseSignature(sigPacket.Body)
	if err != nil {
		logger.KV(xlog.TRACE, "reason", "parse_signature", "err", err.Error())
		return nil, false
	}
	if sig.Type != packet.SigTypeBinary {
		logger.KV(xlog.TRACE, "reason", "signature_type", "type", uint8(sig.Type))
		return nil, false
	}
	return sig, true
}

// v4Trailer is the final block hashed into a version 4 signature: the
// version octet, 0xFF, and the length of the hashed region,
// per RFC 4880 section 5.2.4.
func v4Trailer(n int) []byte {
	return []byte{0x04, 0xff, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
}

// normalize folds deprecated algorithm tag variants into the backend tag.
func normalize(a packet.PublicKeyAlgorithm) packet.PublicKeyAlgorithm {
	switch a {
	case packet.AlgoRSAEncryptOnly, packet.AlgoRSASignOnly:
		return packet.AlgoRSA
	case packet.AlgoElGamalEncrypt:
		return packet.AlgoElGamal
	}
	return a
}
