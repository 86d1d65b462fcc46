package gpg

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// ClearSigner produces OpenPGP clear-signed files with gpg.
type ClearSigner struct {
	binary     string
	homeDir    string
	localUser  string
	digestAlgo string
	env        []string
	runner     Runner
}

// NewClearSigner creates a ClearSigner from cfg. Empty binary and digest
// fall back to the defaults.
// Panics if runner is nil.
func NewClearSigner(cfg htmlsign.SignerConfig, runner Runner) *ClearSigner {
	if runner == nil {
		panic("runner cannot be nil")
	}

	s := &ClearSigner{
		binary:     cfg.Binary,
		homeDir:    cfg.HomeDir,
		localUser:  cfg.LocalUser,
		digestAlgo: cfg.DigestAlgo,
		env:        envList(cfg.Env),
		runner:     runner,
	}
	if s.binary == "" {
		s.binary = htmlsign.DefaultGPGBinary
	}
	if s.digestAlgo == "" {
		s.digestAlgo = htmlsign.DefaultDigestAlgo
	}
	return s
}

// Args returns the gpg arguments that clear-sign prepared into signed.
func (s *ClearSigner) Args(prepared, signed string) []string {
	var args []string
	if s.homeDir != "" {
		args = append(args, "--homedir", s.homeDir)
	}
	if s.localUser != "" {
		args = append(args, "--local-user", s.localUser)
	}
	return append(args,
		"--batch",
		"--yes",
		"--digest-algo", s.digestAlgo,
		"--output", signed,
		"--clearsign", prepared,
	)
}

// Command returns the full invocation for prepared and signed, run from
// the directory holding prepared.
func (s *ClearSigner) Command(prepared, signed string) Command {
	return Command{
		Binary: s.binary,
		Args:   s.Args(prepared, signed),
		Dir:    filepath.Dir(prepared),
		Env:    s.env,
	}
}

// ClearSign writes a clear-signed copy of the file at prepared to signed.
func (s *ClearSigner) ClearSign(ctx context.Context, prepared, signed string) error {
	return s.runner.Run(ctx, s.Command(prepared, signed))
}

// envList flattens env into sorted KEY=VALUE pairs.
func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]string, 0, len(keys))
	for _, k := range keys {
		list = append(list, k+"="+env[k])
	}
	return list
}
