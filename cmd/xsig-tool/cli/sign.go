package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/xsig/gpg"
)

// SignCmd specifies flags for the sign action, which delegates to a
// local gpg installation
type SignCmd struct {
	Data    string `kong:"arg" required:"" help:"data file name to sign"`
	Out     string `help:"optional, output file for the detached signature"`
	Cfg     string `help:"optional, YAML configuration file for the signing backend"`
	GPG     string `help:"optional, path to the gpg executable" default:"gpg"`
	KeyID   string `help:"optional, signing key ID passed to gpg --local-user"`
	Homedir string `help:"optional, gpg home directory"`
}

// Run the command
func (a *SignCmd) Run(ctx *Cli) error {
	cfg := gpg.Config{
		GPG:     a.GPG,
		KeyID:   a.KeyID,
		Homedir: a.Homedir,
	}
	if a.Cfg != "" {
		loaded, err := gpg.LoadConfig(a.Cfg)
		if err != nil {
			return errors.WithMessage(err, "unable to load configuration")
		}
		cfg = *loaded
	}

	data, err := ctx.ReadFile(a.Data)
	if err != nil {
		return errors.WithMessage(err, "unable to load data file")
	}

	signer := gpg.NewSigner(cfg)
	if !signer.IsAvailable() {
		return errors.Errorf("signing backend is not available: %q", cfg.GPG)
	}

	sig, err := signer.SignDetached(ctx.Context(), data)
	if err != nil {
		return errors.WithMessage(err, "unable to sign")
	}
	logger.KV(xlog.DEBUG, "signed", a.Data, "size", len(sig))

	if a.Out != "" {
		err = os.WriteFile(a.Out, sig, 0664)
		if err != nil {
			return errors.WithStack(err)
		}
		return nil
	}
	_, err = ctx.Writer().Write(sig)
	return errors.WithStack(err)
}
