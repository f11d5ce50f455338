package gpg_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/openpgp/armor"

	"github.com/effective-security/xsig/gpg"
	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeKeyBlock(t *testing.T, key *keymat.KeyMaterial) []byte {
	t.Helper()
	return packet.Serialize(packet.TagPublicKey, key.EncodePublicPacket())
}

func armorKeyBlock(t *testing.T, raw []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, "PGP PUBLIC KEY BLOCK", nil)
	require.NoError(t, err)
	_, err = w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	buf.WriteByte('\n')
	return buf.Bytes()
}

func TestLoadPublicKey_Binary(t *testing.T) {
	key := genEd25519(t)

	loaded, err := gpg.LoadPublicKey(encodeKeyBlock(t, key))
	require.NoError(t, err)
	assert.Equal(t, key.Fingerprint, loaded.Fingerprint)
	assert.Equal(t, packet.AlgoEdDSA, loaded.Algorithm)
	assert.Len(t, loaded.Fingerprint, keymat.FingerprintSize)
}

func TestLoadPublicKey_Armored(t *testing.T) {
	key := genEd25519(t)

	loaded, err := gpg.LoadPublicKey(armorKeyBlock(t, encodeKeyBlock(t, key)))
	require.NoError(t, err)
	assert.Equal(t, key.Fingerprint, loaded.Fingerprint)
}

func TestLoadPublicKey_Malformed(t *testing.T) {
	_, err := gpg.LoadPublicKey([]byte{0xc0 | byte(packet.TagPublicKey), 50, 1, 2})
	require.Error(t, err)

	var fe *packet.FormatError
	require.ErrorAs(t, err, &fe)
}

func TestKeyRing_Binary(t *testing.T) {
	a := genEd25519(t)
	b := genEd25519(t)

	bundle := append(encodeKeyBlock(t, a), encodeKeyBlock(t, b)...)
	ring, err := gpg.KeyRing(bundle)
	require.NoError(t, err)
	require.Len(t, ring, 2)
	assert.Equal(t, a.Fingerprint, ring[0].Fingerprint)
	assert.Equal(t, b.Fingerprint, ring[1].Fingerprint)
}

func TestKeyRing_ArmoredMultiBlock(t *testing.T) {
	a := genEd25519(t)
	b := genEd25519(t)

	bundle := armorKeyBlock(t, encodeKeyBlock(t, a))
	bundle = append(bundle, armorKeyBlock(t, encodeKeyBlock(t, b))...)

	ring, err := gpg.KeyRing(bundle)
	require.NoError(t, err)
	require.Len(t, ring, 2)
	assert.Equal(t, a.Fingerprint, ring[0].Fingerprint)
	assert.Equal(t, b.Fingerprint, ring[1].Fingerprint)
}

func TestKeyRing_NoKeys(t *testing.T) {
	_, err := gpg.KeyRing(packet.Serialize(packet.TagUserID, []byte("nobody")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no public key packet")
}

func TestKeyRingFromFiles(t *testing.T) {
	tmpdir := t.TempDir()

	a := genEd25519(t)
	b := genEd25519(t)

	fileA := filepath.Join(tmpdir, "a.gpg")
	require.NoError(t, os.WriteFile(fileA, encodeKeyBlock(t, a), 0644))
	fileB := filepath.Join(tmpdir, "b.asc")
	require.NoError(t, os.WriteFile(fileB, armorKeyBlock(t, encodeKeyBlock(t, b)), 0644))

	ring, err := gpg.KeyRingFromFiles([]string{fileA, fileB})
	require.NoError(t, err)
	require.Len(t, ring, 2)

	_, err = gpg.KeyRingFromFile(filepath.Join(tmpdir, "missing.gpg"))
	require.Error(t, err)
}
