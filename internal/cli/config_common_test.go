package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/htmlsign/internal/config"
	"github.com/vvka-141/htmlsign/internal/files/filesystem"
	"github.com/vvka-141/htmlsign/internal/logging"
	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

func parsedSigningFlags(t *testing.T, args ...string) (*cobra.Command, *signingFlags) {
	t.Helper()
	f := &signingFlags{}
	cmd := &cobra.Command{Use: "test"}
	addSigningFlags(cmd, f)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, f
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestBuildSignerConfig_Defaults(t *testing.T) {
	cmd, f := parsedSigningFlags(t)

	cfg, err := buildSignerConfig(cmd, f, nil, filesystem.NewMemoryFileSystem("/"), logging.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, htmlsign.DefaultSignerConfig(), cfg)
}

func TestBuildSignerConfig_ProjectConfig(t *testing.T) {
	cmd, f := parsedSigningFlags(t)
	projectCfg := &config.ProjectConfig{
		GPG: config.GPGConfig{
			Binary:     "gpg2",
			HomeDir:    "/secure/gnupg",
			LocalUser:  "ABCDEF01",
			DigestAlgo: "SHA512",
		},
		Marker:     "https://example.com/pgp/",
		SkipSigned: boolPtr(false),
		Retries:    intPtr(7),
		Env:        map[string]string{"LANG": "C"},
	}

	cfg, err := buildSignerConfig(cmd, f, projectCfg, filesystem.NewMemoryFileSystem("/"), logging.NewNullLogger())
	require.NoError(t, err)

	assert.Equal(t, "gpg2", cfg.Binary)
	assert.Equal(t, "/secure/gnupg", cfg.HomeDir)
	assert.Equal(t, "ABCDEF01", cfg.LocalUser)
	assert.Equal(t, "SHA512", cfg.DigestAlgo)
	assert.Equal(t, "https://example.com/pgp/", cfg.Marker)
	assert.False(t, cfg.SkipSigned)
	assert.Equal(t, 7, cfg.Retries)
	assert.Equal(t, map[string]string{"LANG": "C"}, cfg.Env)
}

func TestBuildSignerConfig_FlagsOverrideProjectConfig(t *testing.T) {
	cmd, f := parsedSigningFlags(t,
		"--gpg", "/opt/gpg",
		"-u", "releases@example.com",
		"--retries", "0",
		"--no-skip-signed",
	)
	projectCfg := &config.ProjectConfig{
		GPG:        config.GPGConfig{Binary: "gpg2", LocalUser: "ABCDEF01", HomeDir: "/secure/gnupg"},
		SkipSigned: boolPtr(true),
		Retries:    intPtr(7),
	}

	cfg, err := buildSignerConfig(cmd, f, projectCfg, filesystem.NewMemoryFileSystem("/"), logging.NewNullLogger())
	require.NoError(t, err)

	assert.Equal(t, "/opt/gpg", cfg.Binary)
	assert.Equal(t, "releases@example.com", cfg.LocalUser)
	assert.Equal(t, "/secure/gnupg", cfg.HomeDir, "unset flag must not override htmlsign.yaml")
	assert.Equal(t, 0, cfg.Retries)
	assert.False(t, cfg.SkipSigned)
}

func TestBuildSignerConfig_EnvPrecedence(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	mfs.AddFile("/work/base.env", "GNUPGHOME=/from/file\nGPG_TTY=/dev/pts/1\n")
	mfs.AddFile("/work/override.env", "GPG_TTY=/dev/pts/2\n")

	cmd, f := parsedSigningFlags(t,
		"--env-file", "/work/base.env",
		"--env-file", "/work/override.env",
		"--env", "LANG=en_US.UTF-8",
	)
	projectCfg := &config.ProjectConfig{
		Env: map[string]string{"GNUPGHOME": "/from/yaml", "LANG": "C", "EXTRA": "yes"},
	}

	cfg, err := buildSignerConfig(cmd, f, projectCfg, mfs, logging.NewNullLogger())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"GNUPGHOME": "/from/file",
		"GPG_TTY":   "/dev/pts/2",
		"LANG":      "en_US.UTF-8",
		"EXTRA":     "yes",
	}, cfg.Env)
}

func TestBuildSignerConfig_MissingEnvFile(t *testing.T) {
	cmd, f := parsedSigningFlags(t, "--env-file", "/work/missing.env")

	_, err := buildSignerConfig(cmd, f, nil, filesystem.NewMemoryFileSystem("/work"), logging.NewNullLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, htmlsign.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "missing.env")
}

func TestBuildSignerConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative retries", []string{"--retries=-1"}},
		{"multiline marker", []string{"--marker", "a\nb"}},
		{"empty digest", []string{"--digest-algo", ""}},
		{"bad env pair", []string{"--env", "NOEQUALS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := parsedSigningFlags(t, tt.args...)
			_, err := buildSignerConfig(cmd, f, nil, filesystem.NewMemoryFileSystem("/"), logging.NewNullLogger())
			assert.True(t, errors.Is(err, htmlsign.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestResolveEffectiveTimeout(t *testing.T) {
	t.Run("flag default", func(t *testing.T) {
		cmd, f := parsedSigningFlags(t)
		got, err := resolveEffectiveTimeout(cmd, nil, f.timeout)
		require.NoError(t, err)
		assert.Equal(t, htmlsign.DefaultTimeout, got)
	})

	t.Run("yaml when flag unset", func(t *testing.T) {
		cmd, f := parsedSigningFlags(t)
		got, err := resolveEffectiveTimeout(cmd, &config.ProjectConfig{Timeout: "90s"}, f.timeout)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, got)
	})

	t.Run("flag wins over yaml", func(t *testing.T) {
		cmd, f := parsedSigningFlags(t, "--timeout", "2m")
		got, err := resolveEffectiveTimeout(cmd, &config.ProjectConfig{Timeout: "90s"}, f.timeout)
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, got)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cmd, f := parsedSigningFlags(t)
		_, err := resolveEffectiveTimeout(cmd, &config.ProjectConfig{Timeout: "soon"}, f.timeout)
		assert.True(t, errors.Is(err, htmlsign.ErrInvalidConfig))
	})

	t.Run("non-positive yaml", func(t *testing.T) {
		for _, timeout := range []string{"0s", "-5m"} {
			cmd, f := parsedSigningFlags(t)
			_, err := resolveEffectiveTimeout(cmd, &config.ProjectConfig{Timeout: timeout}, f.timeout)
			assert.True(t, errors.Is(err, htmlsign.ErrInvalidConfig), "timeout %q", timeout)
		}
	})

	t.Run("non-positive flag", func(t *testing.T) {
		cmd, f := parsedSigningFlags(t, "--timeout", "0s")
		_, err := resolveEffectiveTimeout(cmd, nil, f.timeout)
		assert.True(t, errors.Is(err, htmlsign.ErrInvalidConfig))
	})
}

// chdir changes the working directory for the duration of the test
// (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	chdir(t, t.TempDir())
	var logs bytes.Buffer
	cfg, err := loadProjectConfig(t.TempDir(), logging.NewConsoleLoggerWithWriter(&logs, true))
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Empty(t, logs.String(), "a missing .env is not worth a message")
}

func TestLoadProjectConfig_MalformedDotEnv(t *testing.T) {
	wd := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte("GNUPGHOME=\"/unterminated\n"), 0o600))
	chdir(t, wd)

	var logs bytes.Buffer
	cfg, err := loadProjectConfig(t.TempDir(), logging.NewConsoleLoggerWithWriter(&logs, false))
	require.NoError(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, logs.String(), "Ignoring .env")
}
