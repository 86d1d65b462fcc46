package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/htmlsign/internal/config"
	"github.com/vvka-141/htmlsign/internal/files/filesystem"
	"github.com/vvka-141/htmlsign/internal/params"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// signingFlags holds the flags shared by sign and sign-all.
type signingFlags struct {
	gpg          string
	homeDir      string
	localUser    string
	digestAlgo   string
	marker       string
	envFiles     []string
	env          []string
	retries      int
	timeout      time.Duration
	noSkipSigned bool
}

// addSigningFlags registers the shared flags on cmd.
func addSigningFlags(cmd *cobra.Command, f *signingFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.gpg, "gpg", htmlsign.DefaultGPGBinary,
		"Signing tool binary (name on PATH or path)")
	flags.StringVar(&f.homeDir, "homedir", "",
		"GnuPG home directory passed as --homedir")
	flags.StringVarP(&f.localUser, "local-user", "u", "",
		"Key used for signing (gpg --local-user)")
	flags.StringVar(&f.digestAlgo, "digest-algo", htmlsign.DefaultDigestAlgo,
		"Digest algorithm passed to gpg")
	flags.StringVar(&f.marker, "marker", htmlsign.DefaultMarker,
		"Text written before the comment close on the first signed line")
	flags.StringArrayVar(&f.envFiles, "env-file", nil,
		"Load environment for the signing tool from a .env file (repeatable)")
	flags.StringArrayVar(&f.env, "env", nil,
		"Environment variable for the signing tool as KEY=VALUE (repeatable)")
	flags.IntVar(&f.retries, "retries", htmlsign.DefaultRetryMaxAttempts,
		"Retries for transient signing tool failures (agent not reachable, lock held)")
	flags.DurationVar(&f.timeout, "timeout", htmlsign.DefaultTimeout,
		"Catastrophic failure protection timeout for the whole run")
	flags.BoolVar(&f.noSkipSigned, "no-skip-signed", false,
		"Sign files that already carry a signature envelope (nests envelopes)")

	_ = cmd.RegisterFlagCompletionFunc("digest-algo", completeDigestAlgos)
}

// loadProjectConfig loads .env from the working directory and htmlsign.yaml
// from dir. Returns nil config if htmlsign.yaml does not exist (not an error).
// A missing .env is fine; an unreadable or malformed one is logged and ignored.
func loadProjectConfig(dir string, logger htmlsign.Logger) (*config.ProjectConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("Ignoring .env: %v", err)
	}

	projectCfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil // Config file not found is not an error
		}
		return nil, fmt.Errorf("failed to load %s: %w: %w", config.ConfigFileName, htmlsign.ErrInvalidConfig, err)
	}
	return projectCfg, nil
}

// buildSignerConfig merges defaults, htmlsign.yaml and flags.
// Flags win over htmlsign.yaml only when set explicitly.
func buildSignerConfig(
	cmd *cobra.Command,
	f *signingFlags,
	projectCfg *config.ProjectConfig,
	fsProvider filesystem.FileSystemProvider,
	logger htmlsign.Logger,
) (htmlsign.SignerConfig, error) {
	cfg := htmlsign.DefaultSignerConfig()
	var projectEnv map[string]string

	if projectCfg != nil {
		setIfNotEmpty(&cfg.Binary, projectCfg.GPG.Binary)
		setIfNotEmpty(&cfg.HomeDir, projectCfg.GPG.HomeDir)
		setIfNotEmpty(&cfg.LocalUser, projectCfg.GPG.LocalUser)
		setIfNotEmpty(&cfg.DigestAlgo, projectCfg.GPG.DigestAlgo)
		setIfNotEmpty(&cfg.Marker, projectCfg.Marker)
		if projectCfg.SkipSigned != nil {
			cfg.SkipSigned = *projectCfg.SkipSigned
		}
		if projectCfg.Retries != nil {
			cfg.Retries = *projectCfg.Retries
		}
		projectEnv = projectCfg.Env
	}

	changed := cmd.Flags().Changed
	if changed("gpg") {
		cfg.Binary = f.gpg
	}
	if changed("homedir") {
		cfg.HomeDir = f.homeDir
	}
	if changed("local-user") {
		cfg.LocalUser = f.localUser
	}
	if changed("digest-algo") {
		cfg.DigestAlgo = f.digestAlgo
	}
	if changed("marker") {
		cfg.Marker = f.marker
	}
	if changed("retries") {
		cfg.Retries = f.retries
	}
	if changed("no-skip-signed") {
		cfg.SkipSigned = !f.noSkipSigned
	}

	fileEnv, err := loadEnvFromFiles(fsProvider, f.envFiles, logger)
	if err != nil {
		return htmlsign.SignerConfig{}, err
	}
	flagEnv, err := params.ParseKeyValuePairs(f.env)
	if err != nil {
		return htmlsign.SignerConfig{}, fmt.Errorf("invalid --env value: %w: %w", htmlsign.ErrInvalidConfig, err)
	}
	if len(flagEnv) > 0 {
		logger.Verbose("--env overrides %d variable(s)", len(flagEnv))
	}
	if env := params.Merge(projectEnv, fileEnv, flagEnv); len(env) > 0 {
		cfg.Env = env
	}

	if err := cfg.Validate(); err != nil {
		return htmlsign.SignerConfig{}, err
	}
	return cfg, nil
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// resolveEffectiveTimeout returns the effective timeout, preferring htmlsign.yaml if flag wasn't set.
func resolveEffectiveTimeout(
	cmd *cobra.Command,
	projectCfg *config.ProjectConfig,
	flagTimeout time.Duration,
) (time.Duration, error) {
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, err := time.ParseDuration(projectCfg.Timeout)
		if err != nil {
			return 0, fmt.Errorf("invalid timeout in %s: %w: %w", config.ConfigFileName, htmlsign.ErrInvalidConfig, err)
		}
		if parsed <= 0 {
			return 0, fmt.Errorf("timeout in %s must be positive, got %s: %w", config.ConfigFileName, projectCfg.Timeout, htmlsign.ErrInvalidConfig)
		}
		return parsed, nil
	}
	if flagTimeout <= 0 {
		return 0, fmt.Errorf("--timeout must be positive: %w", htmlsign.ErrInvalidConfig)
	}
	return flagTimeout, nil
}

// loadEnvFromFiles loads variables from multiple .env files using the provided filesystem.
// Later files override earlier ones.
func loadEnvFromFiles(fsProvider filesystem.FileSystemProvider, envFiles []string, logger htmlsign.Logger) (map[string]string, error) {
	env := make(map[string]string)

	for _, envFile := range envFiles {
		logger.Verbose("Loading signing environment from file: %s", envFile)

		fileContent, err := fsProvider.ReadFile(envFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file '%s': %w: %w\n\nTip: Verify the path or use --env to set variables directly:\n  htmlsign sign-all ./public --env GNUPGHOME=/secure/gnupg", envFile, htmlsign.ErrInvalidConfig, err)
		}

		fileEnv, err := params.ParseEnvFile(fileContent)
		if err != nil {
			return nil, fmt.Errorf("failed to parse env file '%s': %w: %w\n\nTip: Verify the file format (KEY=VALUE)", envFile, htmlsign.ErrInvalidConfig, err)
		}

		for k, v := range fileEnv {
			env[k] = v
		}
		logger.Verbose("Loaded %d variable(s) from file (total: %d)", len(fileEnv), len(env))
	}

	return env, nil
}

// newRunContext returns a context bounded by timeout that is also cancelled
// on Ctrl+C or SIGTERM.
func newRunContext(parent context.Context, timeout time.Duration, what string) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)

	// Handle interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintf(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling %s...\n", what)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
