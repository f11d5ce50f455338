package gpg_test

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"golang.org/x/crypto/openpgp/armor"

	"github.com/effective-security/xsig/gpg"
	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/packet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Unix(1700000000, 0)

func genEd25519(t *testing.T) *keymat.KeyMaterial {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return keymat.NewEd25519(pub, priv, createdAt)
}

func TestVerifyDetached_EdDSA(t *testing.T) {
	key := genEd25519(t)

	sig, err := gpg.SignDetached([]byte("hello"), key)
	require.NoError(t, err)

	res, err := gpg.VerifyDetached([]byte("hello"), sig, key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Valid, res)

	// one character off must never verify
	res, err = gpg.VerifyDetached([]byte("hellp"), sig, key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Invalid, res)
}

func TestVerifyDetached_RSA(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	key := keymat.NewRSA(&priv.PublicKey, priv, createdAt)

	data := []byte("signed metadata payload")
	sig, err := gpg.SignDetached(data, key)
	require.NoError(t, err)

	res, err := gpg.VerifyDetached(data, sig, key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Valid, res)
}

func TestVerifyDetached_ECDSA(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)
	key, err := keymat.NewECDSA(&priv.PublicKey, priv, createdAt)
	require.NoError(t, err)

	data := []byte("release manifest")
	sig, err := gpg.SignDetachedWithHash(data, key, packet.HashSHA384)
	require.NoError(t, err)

	res, err := gpg.VerifyDetached(data, sig, key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Valid, res)
}

func TestVerifyDetached_TamperSensitivity(t *testing.T) {
	key := genEd25519(t)
	data := []byte("hello")

	sig, err := gpg.SignDetached(data, key)
	require.NoError(t, err)

	res, err := gpg.VerifyDetached(data, sig, key)
	require.NoError(t, err)
	require.Equal(t, gpg.Valid, res)

	// flipping any single bit in the data must never yield Valid
	for i := range data {
		tampered := bytes.Clone(data)
		tampered[i] ^= 0x01
		res, err := gpg.VerifyDetached(tampered, sig, key)
		require.NoError(t, err)
		assert.Equal(t, gpg.Invalid, res, "bit flip at byte %d", i)
	}

	// flipping bits in the signature value must never yield Valid
	for i := len(sig) - 64; i < len(sig); i++ {
		tampered := bytes.Clone(sig)
		tampered[i] ^= 0x01
		res, err := gpg.VerifyDetached(data, tampered, key)
		require.NoError(t, err)
		assert.NotEqual(t, gpg.Valid, res, "bit flip at byte %d", i)
	}
}

func TestVerifyDetached_KeyMismatch(t *testing.T) {
	signer := genEd25519(t)
	other := genEd25519(t)

	sig, err := gpg.SignDetached([]byte("hello"), signer)
	require.NoError(t, err)

	res, err := gpg.VerifyDetached([]byte("hello"), sig, other)
	require.NoError(t, err)
	assert.Equal(t, gpg.KeyMismatch, res)
}

func TestVerifyDetached_Malformed(t *testing.T) {
	key := genEd25519(t)

	res, err := gpg.VerifyDetached([]byte("hello"), []byte("not a signature"), key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Malformed, res)

	// a non-signature packet is not a detached signature
	notSig := packet.Serialize(packet.TagUserID, []byte("nope"))
	res, err = gpg.VerifyDetached([]byte("hello"), notSig, key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Malformed, res)
}

func TestVerifyDetached_AmbiguousSignature(t *testing.T) {
	key := genEd25519(t)

	sig, err := gpg.SignDetached([]byte("hello"), key)
	require.NoError(t, err)

	// two concatenated signature packets are ambiguous
	res, err := gpg.VerifyDetached([]byte("hello"), append(bytes.Clone(sig), sig...), key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Malformed, res)
}

func TestVerifyDetached_Armored(t *testing.T) {
	key := genEd25519(t)

	sig, err := gpg.SignDetached([]byte("hello"), key)
	require.NoError(t, err)

	var buf bytes.Buffer
	w, err := armor.Encode(&buf, "PGP SIGNATURE", nil)
	require.NoError(t, err)
	_, err = w.Write(sig)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	res, err := gpg.VerifyDetached([]byte("hello"), buf.Bytes(), key)
	require.NoError(t, err)
	assert.Equal(t, gpg.Valid, res)
}

func TestVerifyDetached_NilKey(t *testing.T) {
	_, err := gpg.VerifyDetached([]byte("hello"), []byte{}, nil)
	require.Error(t, err)
}

func TestVerifyDetached_SignatureBySubkey(t *testing.T) {
	primary := genEd25519(t)
	signing := genEd25519(t)

	sig, err := gpg.SignDetached([]byte("hello"), signing)
	require.NoError(t, err)

	pub := &keymat.KeyMaterial{
		Fingerprint: primary.Fingerprint,
		Algorithm:   primary.Algorithm,
		Params:      primary.Params,
		CreatedAt:   primary.CreatedAt,
		Subkeys: []*keymat.KeyMaterial{{
			Fingerprint: signing.Fingerprint,
			Algorithm:   signing.Algorithm,
			Params:      signing.Params,
			CreatedAt:   signing.CreatedAt,
		}},
	}

	res, err := gpg.VerifyDetached([]byte("hello"), sig, pub)
	require.NoError(t, err)
	assert.Equal(t, gpg.Valid, res)
}

func TestVerifyWithKeyRing(t *testing.T) {
	signer := genEd25519(t)
	ring := []*keymat.KeyMaterial{genEd25519(t), genEd25519(t), signer}

	sig, err := gpg.SignDetached([]byte("hello"), signer)
	require.NoError(t, err)

	res, key, err := gpg.VerifyWithKeyRing([]byte("hello"), sig, ring)
	require.NoError(t, err)
	assert.Equal(t, gpg.Valid, res)
	assert.Equal(t, signer.Fingerprint, key.Fingerprint)

	res, key, err = gpg.VerifyWithKeyRing([]byte("hello"), sig, ring[:2])
	require.NoError(t, err)
	assert.Equal(t, gpg.KeyMismatch, res)
	assert.Nil(t, key)

	_, _, err = gpg.VerifyWithKeyRing([]byte("hello"), sig, nil)
	require.Error(t, err)
}

func TestParseSignature(t *testing.T) {
	key := genEd25519(t)

	raw, err := gpg.SignDetached([]byte("hello"), key)
	require.NoError(t, err)

	sig, err := gpg.ParseSignature(raw)
	require.NoError(t, err)
	assert.Equal(t, packet.AlgoEdDSA, sig.Algorithm)
	assert.Equal(t, key.KeyID(), sig.IssuerKeyID)
	assert.Equal(t, key.Fingerprint, sig.IssuerFingerprint)

	_, err = gpg.ParseSignature([]byte("garbage"))
	require.Error(t, err)
}
