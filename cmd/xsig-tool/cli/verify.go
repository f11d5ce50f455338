package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xsig/gpg"
	"github.com/effective-security/xsig/x/print"
)

// VerifyCmd specifies flags for the verify action
type VerifyCmd struct {
	Data string   `kong:"arg" required:"" help:"signed data file name"`
	Sig  string   `kong:"arg" required:"" help:"detached signature file name, armored or binary"`
	Key  []string `required:"" help:"public key file, can be specified multiple times"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	data, err := ctx.ReadFile(a.Data)
	if err != nil {
		return errors.WithMessage(err, "unable to load data file")
	}

	sig, err := ctx.ReadFile(a.Sig)
	if err != nil {
		return errors.WithMessage(err, "unable to load signature file")
	}

	ring, err := gpg.KeyRingFromFiles(a.Key)
	if err != nil {
		return errors.WithMessage(err, "unable to load keys")
	}

	w := ctx.Writer()
	if parsed, err := gpg.ParseSignature(sig); err == nil {
		print.Signature(w, parsed)
	}

	res, signer, err := gpg.VerifyWithKeyRing(data, sig, ring)
	if err != nil {
		return errors.WithMessage(err, "unable to verify")
	}

	fmt.Fprintf(w, "Result: %s\n", res.String())
	if signer != nil {
		fmt.Fprintf(w, "Signed by: %s\n", signer.KeyIDString())
	}
	if res != gpg.Valid {
		return errors.Errorf("signature verification failed: %s", res.String())
	}
	return nil
}
