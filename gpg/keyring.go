package gpg

import (
	"bytes"
	"io"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"golang.org/x/crypto/openpgp/armor"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/metricskey"
	"github.com/effective-security/xsig/packet"
)

// armor block types
const (
	keyBlockType = "PGP PUBLIC KEY BLOCK"
	sigBlockType = "PGP SIGNATURE"
)

var armorPrefix = []byte("-----BEGIN ")

// LoadPublicKey parses one OpenPGP public key block, armored or binary,
// into its KeyMaterial.
func LoadPublicKey(data []byte) (*keymat.KeyMaterial, error) {
	defer metricskey.PerfKeyLoad.MeasureSince(time.Now(), "bytes")

	raw, err := dearmor(data, keyBlockType)
	if err != nil {
		return nil, err
	}

	pkts, err := packet.Parse(raw)
	if err != nil {
		return nil, err
	}

	return keymat.FromPackets(pkts)
}

// KeyRing reads all public keys from the given bundle, which may contain
// several armored blocks or a concatenated binary key stream. The keys may
// then be used to verify signatures on signed metadata.
func KeyRing(data []byte) ([]*keymat.KeyMaterial, error) {
	if isArmored(data) {
		return armoredKeyRing(data)
	}
	return binaryKeyRing(data)
}

// KeyRingFromFile reads a keyring from the given file path.
func KeyRingFromFile(path string) ([]*keymat.KeyMaterial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return KeyRing(data)
}

// KeyRingFromFiles reads a keyring from the given file paths.
//
// This function might typically be used to read all trusted keys in a
// keys directory.
func KeyRingFromFiles(files []string) ([]*keymat.KeyMaterial, error) {
	keyring := make([]*keymat.KeyMaterial, 0)
	for _, path := range files {
		// read keyring in file
		keys, err := KeyRingFromFile(path)
		if err != nil {
			return nil, err
		}

		// append keyring
		keyring = append(keyring, keys...)
	}

	return keyring, nil
}

func armoredKeyRing(data []byte) ([]*keymat.KeyMaterial, error) {
	keyring := make([]*keymat.KeyMaterial, 0)

	rest := data
	for {
		idx := bytes.Index(rest, armorPrefix)
		if idx < 0 {
			if len(keyring) == 0 {
				logger.KV(xlog.TRACE, "reason", "no_block", "data", string(data))
				return nil, errors.New("no armored block found")
			}
			break
		}
		rest = rest[idx:]

		block, err := armor.Decode(bytes.NewReader(rest))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if block.Type == keyBlockType {
			raw, err := io.ReadAll(block.Body)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			keys, err := binaryKeyRing(raw)
			if err != nil {
				return nil, err
			}
			keyring = append(keyring, keys...)
		}

		rest = rest[len(armorPrefix):]
	}

	return keyring, nil
}

// binaryKeyRing splits a concatenated packet stream at public key packet
// boundaries and builds each key block.
func binaryKeyRing(data []byte) ([]*keymat.KeyMaterial, error) {
	pkts, err := packet.Parse(data)
	if err != nil {
		return nil, err
	}

	keyring := make([]*keymat.KeyMaterial, 0)
	start := -1
	for i := range pkts {
		if pkts[i].Tag == packet.TagPublicKey {
			if start >= 0 {
				key, err := keymat.FromPackets(pkts[start:i])
				if err != nil {
					return nil, err
				}
				keyring = append(keyring, key)
			}
			start = i
		}
	}
	if start < 0 {
		return nil, &packet.FormatError{Reason: "invalid key block: no public key packet"}
	}

	key, err := keymat.FromPackets(pkts[start:])
	if err != nil {
		return nil, err
	}
	return append(keyring, key), nil
}

func isArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(data), armorPrefix)
}

// dearmor returns the binary contents of data, decoding one armored block
// of the expected type when the input is armored.
func dearmor(data []byte, blockType string) ([]byte, error) {
	if !isArmored(data) {
		return data, nil
	}

	block, err := armor.Decode(bytes.NewReader(bytes.TrimSpace(data)))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if block.Type != blockType {
		return nil, errors.Errorf("unexpected armor block type: %s", block.Type)
	}

	raw, err := io.ReadAll(block.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return raw, nil
}
