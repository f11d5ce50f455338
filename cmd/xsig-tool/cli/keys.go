package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xsig/gpg"
	"github.com/effective-security/xsig/x/print"
)

// KeyCmd provides public key commands
type KeyCmd struct {
	Info KeyInfoCmd `cmd:"" help:"print public key info"`
}

// KeyInfoCmd specifies flags for the key info action
type KeyInfoCmd struct {
	In   string `kong:"arg" required:"" help:"public key file name, armored or binary"`
	JSON bool   `help:"optional, print keys as JSON"`
}

// Run the command
func (a *KeyInfoCmd) Run(ctx *Cli) error {
	data, err := ctx.ReadFile(a.In)
	if err != nil {
		return errors.WithMessage(err, "unable to load key file")
	}

	keys, err := gpg.KeyRing(data)
	if err != nil {
		return errors.WithMessage(err, "unable to parse key file")
	}

	if a.JSON {
		ctx.WriteJSON(keys)
		return nil
	}
	print.Keys(ctx.Writer(), keys)
	return nil
}
