package gpg

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"gopkg.in/yaml.v3"
)

// Config specifies the optional local signing backend. The executable
// path is an explicit configuration value, resolved once when the Signer
// is constructed, never read from the process environment at call sites.
type Config struct {
	// GPG is the path to the gpg executable, or a bare command name
	// looked up in PATH
	GPG string `json:"gpg" yaml:"gpg"`
	// KeyID optionally selects the signing key
	KeyID string `json:"key_id" yaml:"key_id"`
	// Homedir optionally overrides the gpg home directory
	Homedir string `json:"homedir" yaml:"homedir"`
}

// LoadConfig loads the signing backend configuration from a YAML file.
func LoadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WithMessagef(err, "unable to parse configuration: %s", file)
	}
	return &cfg, nil
}

// Signer signs data by shelling out to a local gpg installation. It is
// used only when key material has no in-process private component;
// verification and key loading never consult it.
type Signer struct {
	cfg Config
}

// NewSigner returns a Signer for the given configuration.
func NewSigner(cfg Config) *Signer {
	return &Signer{cfg: cfg}
}

// IsAvailable reports whether the configured signing backend is present.
// It never fails: an empty, invalid or nonexistent path reports false.
func (s *Signer) IsAvailable() bool {
	path := s.cfg.GPG
	if path == "" {
		return false
	}

	if strings.ContainsRune(path, os.PathSeparator) {
		fi, err := os.Stat(path)
		if err != nil || fi.IsDir() {
			logger.KV(xlog.TRACE, "reason", "not_found", "gpg", path)
			return false
		}
		return fi.Mode()&0111 != 0
	}

	if _, err := exec.LookPath(path); err != nil {
		logger.KV(xlog.TRACE, "reason", "not_in_path", "gpg", path)
		return false
	}
	return true
}

// SignDetached produces a binary detached signature over data using the
// configured gpg executable.
func (s *Signer) SignDetached(ctx context.Context, data []byte) ([]byte, error) {
	if !s.IsAvailable() {
		return nil, errors.Errorf("signing backend is not available: %q", s.cfg.GPG)
	}

	args := []string{"--batch", "--yes", "--detach-sign", "--output", "-"}
	if s.cfg.Homedir != "" {
		args = append(args, "--homedir", s.cfg.Homedir)
	}
	if s.cfg.KeyID != "" {
		args = append(args, "--local-user", s.cfg.KeyID)
	}

	cmd := exec.CommandContext(ctx, s.cfg.GPG, args...)
	cmd.Stdin = bytes.NewReader(data)

	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		return nil, errors.WithMessagef(err, "gpg failed: %s", strings.TrimSpace(errOut.String()))
	}
	return out.Bytes(), nil
}
