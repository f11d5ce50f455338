package keymat

import (
	"time"

	"github.com/effective-security/xlog"

	"github.com/effective-security/xsig/packet"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xsig", "keymat")

// FromPackets builds the primary KeyMaterial from a parsed packet sequence
// conforming to the key block grammar: one public key packet, zero or more
// user ID packets each optionally followed by self-signatures, and zero or
// more public subkey packets each immediately followed by exactly one
// binding signature.
//
// A structurally invalid sequence fails with *packet.FormatError and no
// partially built key is returned. Unrecognized packets and trust packets
// are ignored, except between a subkey and its binding signature.
func FromPackets(pkts []packet.Packet) (*KeyMaterial, error) {
	if len(pkts) == 0 {
		return nil, &packet.FormatError{Reason: "invalid key block: empty packet sequence"}
	}
	if pkts[0].Tag != packet.TagPublicKey {
		return nil, &packet.FormatError{
			Offset: pkts[0].Offset,
			Reason: "invalid key block: expected public key packet, got " + pkts[0].Tag.String(),
		}
	}

	primary, err := fromKeyPacket(pkts[0])
	if err != nil {
		return nil, err
	}

	var latestSelfSig time.Time
	i := 1
	for i < len(pkts) {
		p := pkts[i]
		switch p.Tag {
		case packet.TagUserID:
			primary.UserIDs = append(primary.UserIDs, string(p.Body))
			i++

		case packet.TagSignature:
			sig, err := packet.ParseSignature(p.Body)
			if err != nil {
				return nil, err
			}
			if sig.Type == packet.SigTypeSubkeyBinding {
				return nil, &packet.FormatError{
					Offset: p.Offset,
					Reason: "invalid key block: binding signature without preceding subkey",
				}
			}
			// the declared expiration comes from the most recent
			// self-signature; validity policy is left to the caller
			if isSelfSignature(primary, sig) && !sig.CreatedAt.Before(latestSelfSig) {
				latestSelfSig = sig.CreatedAt
				primary.ExpiresAt = expiry(primary.CreatedAt, sig.KeyLifetime)
			}
			i++

		case packet.TagPublicSubkey:
			sub, err := fromKeyPacket(p)
			if err != nil {
				return nil, err
			}
			if i+1 >= len(pkts) || pkts[i+1].Tag != packet.TagSignature {
				return nil, &packet.FormatError{
					Offset: p.Offset,
					Reason: "invalid key block: subkey is not followed by a binding signature",
				}
			}
			binding, err := packet.ParseSignature(pkts[i+1].Body)
			if err != nil {
				return nil, err
			}
			if binding.Type != packet.SigTypeSubkeyBinding {
				return nil, &packet.FormatError{
					Offset: pkts[i+1].Offset,
					Reason: "invalid key block: subkey is followed by a non-binding signature",
				}
			}
			sub.ExpiresAt = expiry(sub.CreatedAt, binding.KeyLifetime)
			primary.Subkeys = append(primary.Subkeys, sub)
			i += 2

			// exactly one binding signature per subkey
			if i < len(pkts) && pkts[i].Tag == packet.TagSignature {
				return nil, &packet.FormatError{
					Offset: pkts[i].Offset,
					Reason: "invalid key block: more than one signature after subkey",
				}
			}

		case packet.TagPublicKey, packet.TagSecretKey, packet.TagSecretSubkey:
			return nil, &packet.FormatError{
				Offset: p.Offset,
				Reason: "invalid key block: unexpected " + p.Tag.String() + " packet",
			}

		default:
			// trust packets, user attributes and unrecognized tags carry
			// no key material
			logger.KV(xlog.TRACE, "reason", "skipped_packet", "tag", uint8(p.Tag), "offset", p.Offset)
			i++
		}
	}

	return primary, nil
}

func fromKeyPacket(p packet.Packet) (*KeyMaterial, error) {
	pk, err := packet.ParsePublicKey(p.Body)
	if err != nil {
		if fe, ok := err.(*packet.FormatError); ok {
			fe.Offset += p.Offset
		}
		return nil, err
	}

	return &KeyMaterial{
		Fingerprint: Fingerprint(p.Body),
		Algorithm:   pk.Algorithm,
		Params:      pk.Params,
		CreatedAt:   pk.CreatedAt,
	}, nil
}

// isSelfSignature reports whether sig claims to be issued by the key
// itself. Signatures without issuer information are not treated as
// self-signatures.
func isSelfSignature(k *KeyMaterial, sig *packet.Signature) bool {
	if len(sig.IssuerFingerprint) == FingerprintSize {
		return k.FindSigner(nil, sig.IssuerFingerprint) != nil
	}
	if len(sig.IssuerKeyID) == KeyIDSize {
		return k.FindSigner(sig.IssuerKeyID, nil) != nil
	}
	return false
}

func expiry(created time.Time, lifetime uint32) *time.Time {
	if lifetime == 0 {
		return nil
	}
	t := created.Add(time.Duration(lifetime) * time.Second)
	return &t
}
