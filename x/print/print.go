// Package print provides helper package to print objects
package print

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/effective-security/xsig/keymat"
	"github.com/effective-security/xsig/packet"
)

// JSON prints value to out
func JSON(w io.Writer, value any) {
	json, _ := json.MarshalIndent(value, "", "  ")
	_, _ = w.Write(json)
	_, _ = w.Write([]byte{'\n'})
}

// Keys prints a list of public keys
func Keys(w io.Writer, list []*keymat.KeyMaterial) {
	for _, key := range list {
		Key(w, key)
	}
}

// Key prints the key with its user IDs and subkeys
func Key(w io.Writer, key *keymat.KeyMaterial) {
	fmt.Fprintf(w, "Key ID: %s\n", key.KeyIDString())
	fmt.Fprintf(w, "  Fingerprint: %s\n", key.FingerprintString())
	fmt.Fprintf(w, "  Algorithm: %s\n", key.Algorithm.String())
	fmt.Fprintf(w, "  Created: %s\n", key.CreatedAt.Format(time.RFC3339))
	if key.ExpiresAt != nil {
		fmt.Fprintf(w, "  Expires: %s\n", key.ExpiresAt.Format(time.RFC3339))
	}
	for _, uid := range key.UserIDs {
		fmt.Fprintf(w, "  User ID: %s\n", uid)
	}
	for _, sub := range key.Subkeys {
		fmt.Fprintf(w, "  Subkey: %s, %s, created %s\n",
			sub.KeyIDString(), sub.Algorithm.String(), sub.CreatedAt.Format(time.RFC3339))
	}
}

// Signature prints the signature packet
func Signature(w io.Writer, sig *packet.Signature) {
	fmt.Fprintf(w, "Signature:\n")
	fmt.Fprintf(w, "  Type: %d\n", sig.Type)
	fmt.Fprintf(w, "  Algorithm: %s\n", sig.Algorithm.String())
	fmt.Fprintf(w, "  Hash: %s\n", sig.Hash.String())
	if !sig.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Created: %s\n", sig.CreatedAt.Format(time.RFC3339))
	}
	if len(sig.IssuerKeyID) > 0 {
		fmt.Fprintf(w, "  Issuer Key ID: %X\n", sig.IssuerKeyID)
	}
	if len(sig.IssuerFingerprint) > 0 {
		fmt.Fprintf(w, "  Issuer Fingerprint: %X\n", sig.IssuerFingerprint)
	}
}
