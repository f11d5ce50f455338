package print_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/effective-security/xsig/gpg"
	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/x/print"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_JSON(t *testing.T) {
	w := bytes.NewBuffer([]byte{})
	print.JSON(w, map[string]int{"count": 1})
	assert.Equal(t, "{\n  \"count\": 1\n}\n", w.String())
}

func Test_PrintKey(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	key := keymat.NewEd25519(pub, priv, time.Unix(1136214245, 0))
	key.UserIDs = []string{"tester <tester@example.com>"}

	exp := key.CreatedAt.Add(24 * time.Hour)
	key.ExpiresAt = &exp

	w := bytes.NewBuffer([]byte{})
	print.Key(w, key)

	out := w.String()
	assert.Contains(t, out, "Key ID: "+key.KeyIDString())
	assert.Contains(t, out, "Fingerprint: "+key.FingerprintString())
	assert.Contains(t, out, "Algorithm: EdDSA")
	assert.Contains(t, out, "Created: ")
	assert.Contains(t, out, "Expires: ")
	assert.Contains(t, out, "User ID: tester <tester@example.com>")
}

func Test_PrintSignature(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	key := keymat.NewEd25519(pub, priv, time.Unix(1136214245, 0))

	raw, err := gpg.SignDetached([]byte("data"), key)
	require.NoError(t, err)

	sig, err := gpg.ParseSignature(raw)
	require.NoError(t, err)

	w := bytes.NewBuffer([]byte{})
	print.Signature(w, sig)

	out := w.String()
	assert.Contains(t, out, "Algorithm: EdDSA")
	assert.Contains(t, out, "Hash: SHA256")
	assert.Contains(t, out, "Issuer Key ID: "+key.KeyIDString())
	assert.Contains(t, out, "Issuer Fingerprint: "+key.FingerprintString())
}
