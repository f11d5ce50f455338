package packet

import (
	"crypto"

	// register hashes referenced by HashAlgorithm.CryptoHash
	_ "crypto/md5"
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"

	_ "golang.org/x/crypto/ripemd160"
)

// Tag identifies the type of an OpenPGP packet, per RFC 4880 section 4.3.
type Tag uint8

// Packet tags used by the key block grammar. Tags outside this list are
// retained by the parser as unrecognized packets.
const (
	TagSignature    Tag = 2
	TagSecretKey    Tag = 5
	TagPublicKey    Tag = 6
	TagSecretSubkey Tag = 7
	TagTrust        Tag = 12
	TagUserID       Tag = 13
	TagPublicSubkey Tag = 14
	TagUserAttr     Tag = 17
)

// String provides the tag name
func (t Tag) String() string {
	switch t {
	case TagSignature:
		return "signature"
	case TagSecretKey:
		return "secret key"
	case TagPublicKey:
		return "public key"
	case TagSecretSubkey:
		return "secret subkey"
	case TagTrust:
		return "trust"
	case TagUserID:
		return "user ID"
	case TagPublicSubkey:
		return "public subkey"
	case TagUserAttr:
		return "user attribute"
	}
	return "unrecognized"
}

// Recognized returns true for tags the key block grammar assigns meaning to.
func (t Tag) Recognized() bool {
	switch t {
	case TagSignature, TagSecretKey, TagPublicKey, TagSecretSubkey,
		TagTrust, TagUserID, TagPublicSubkey, TagUserAttr:
		return true
	}
	return false
}

// Packet is one length-framed unit of an OpenPGP byte stream.
// Packets are immutable once parsed.
type Packet struct {
	// Tag identifies the packet type
	Tag Tag
	// Offset is the position of the packet header in the original input
	Offset int
	// Body holds the declared-length body bytes
	Body []byte
}

// PublicKeyAlgorithm is the OpenPGP public key algorithm identifier,
// per RFC 4880 section 9.1.
type PublicKeyAlgorithm uint8

// Supported public key algorithms. RSASignOnly and RSAEncryptOnly are
// deprecated aliases that dispatch to the RSA backend.
const (
	AlgoRSA            PublicKeyAlgorithm = 1
	AlgoRSAEncryptOnly PublicKeyAlgorithm = 2
	AlgoRSASignOnly    PublicKeyAlgorithm = 3
	AlgoElGamalEncrypt PublicKeyAlgorithm = 16
	AlgoDSA            PublicKeyAlgorithm = 17
	AlgoECDH           PublicKeyAlgorithm = 18
	AlgoECDSA          PublicKeyAlgorithm = 19
	AlgoElGamal        PublicKeyAlgorithm = 20
	AlgoEdDSA          PublicKeyAlgorithm = 22
)

// String provides the algorithm name
func (a PublicKeyAlgorithm) String() string {
	switch a {
	case AlgoRSA, AlgoRSAEncryptOnly, AlgoRSASignOnly:
		return "RSA"
	case AlgoElGamalEncrypt, AlgoElGamal:
		return "ElGamal"
	case AlgoDSA:
		return "DSA"
	case AlgoECDH:
		return "ECDH"
	case AlgoECDSA:
		return "ECDSA"
	case AlgoEdDSA:
		return "EdDSA"
	}
	return "unknown"
}

// CanSign returns true if the algorithm is usable for signatures.
func (a PublicKeyAlgorithm) CanSign() bool {
	switch a {
	case AlgoRSAEncryptOnly, AlgoElGamalEncrypt, AlgoECDH:
		return false
	}
	return true
}

// HashAlgorithm is the OpenPGP hash algorithm identifier,
// per RFC 4880 section 9.4.
type HashAlgorithm uint8

// Supported hash algorithms
const (
	HashMD5       HashAlgorithm = 1
	HashSHA1      HashAlgorithm = 2
	HashRIPEMD160 HashAlgorithm = 3
	HashSHA256    HashAlgorithm = 8
	HashSHA384    HashAlgorithm = 9
	HashSHA512    HashAlgorithm = 10
	HashSHA224    HashAlgorithm = 11
)

// CryptoHash maps the identifier to a crypto.Hash,
// returning 0 for identifiers without a registered hash.
func (h HashAlgorithm) CryptoHash() crypto.Hash {
	switch h {
	case HashMD5:
		return crypto.MD5
	case HashSHA1:
		return crypto.SHA1
	case HashRIPEMD160:
		return crypto.RIPEMD160
	case HashSHA256:
		return crypto.SHA256
	case HashSHA384:
		return crypto.SHA384
	case HashSHA512:
		return crypto.SHA512
	case HashSHA224:
		return crypto.SHA224
	}
	return 0
}

// String provides the hash name
func (h HashAlgorithm) String() string {
	switch h {
	case HashMD5:
		return "MD5"
	case HashSHA1:
		return "SHA1"
	case HashRIPEMD160:
		return "RIPEMD160"
	case HashSHA256:
		return "SHA256"
	case HashSHA384:
		return "SHA384"
	case HashSHA512:
		return "SHA512"
	case HashSHA224:
		return "SHA224"
	}
	return "unknown"
}
