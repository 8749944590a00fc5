package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var configEnvVars = []string{
	"REPORT_AUTHOR_MODE", "REPORT_AUTHOR_HOST", "REPORT_AUTHOR_PORT", "REPORT_AUTHOR_DRAFTS",
	"REPORT_AUTHOR_OUTPUT", "REPORT_AUTHOR_PUBLISH", "REPORT_AUTHOR_PREFIX", "REPORT_AUTHOR_LOGO",
	"REPORT_AUTHOR_LOGOWIDTH", "REPORT_AUTHOR_AUTOSAVE", "REPORT_AUTHOR_LOGLEVEL", "REPORT_AUTHOR_LOGFILE",
}

// isolate clears configuration variables for the duration of the test
func isolate(t *testing.T) string {
	t.Helper()
	for _, name := range configEnvVars {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return t.TempDir()
}

func dirArgs(dir string, extra ...string) []string {
	return append([]string{
		"--drafts=" + filepath.Join(dir, "drafts"),
		"--output=" + filepath.Join(dir, "out"),
	}, extra...)
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("mcp-report-author", dirArgs(dir))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Mode != "stdio" {
		t.Errorf("Load() Mode = %v, want stdio", cfg.Mode)
	}
	if cfg.CodePrefix != DefaultCodePrefix {
		t.Errorf("Load() CodePrefix = %v, want %v", cfg.CodePrefix, DefaultCodePrefix)
	}
	if cfg.LogoWidthCM != DefaultLogoWidthCM {
		t.Errorf("Load() LogoWidthCM = %v, want %v", cfg.LogoWidthCM, DefaultLogoWidthCM)
	}
	if !cfg.Autosave {
		t.Error("Load() Autosave = false, want true")
	}
	if cfg.DraftDirectory != filepath.Join(dir, "drafts") {
		t.Errorf("Load() DraftDirectory = %v", cfg.DraftDirectory)
	}
	if _, err := os.Stat(cfg.OutputDirectory); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestLoad_Flags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "server mode with custom host and port",
			args: []string{"--mode=server", "--host=0.0.0.0", "--port=9090"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Address() != "0.0.0.0:9090" || !cfg.IsServerMode() {
					t.Errorf("got %s in mode %s", cfg.Address(), cfg.Mode)
				}
			},
		},
		{
			name: "prefix and logo width",
			args: []string{"--prefix=ACME", "--logowidth=5"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.CodePrefix != "ACME" || cfg.LogoWidthCM != 5 {
					t.Errorf("got prefix %q width %v", cfg.CodePrefix, cfg.LogoWidthCM)
				}
			},
		},
		{
			name: "autosave disabled",
			args: []string{"--autosave=false"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Autosave {
					t.Error("Autosave = true, want false")
				}
			},
		},
		{
			name: "log level is case insensitive",
			args: []string{"--loglevel=DEBUG"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.IsDebug() {
					t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			cfg, err := Load("mcp-report-author", dirArgs(dir, tt.args...))
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			tt.verify(t, cfg)
		})
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	dir := isolate(t)
	t.Setenv("REPORT_AUTHOR_PREFIX", "ENV")
	t.Setenv("REPORT_AUTHOR_AUTOSAVE", "false")
	t.Setenv("REPORT_AUTHOR_PUBLISH", filepath.Join(dir, "publish"))

	cfg, err := Load("mcp-report-author", dirArgs(dir))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.CodePrefix != "ENV" {
		t.Errorf("CodePrefix = %v, want ENV", cfg.CodePrefix)
	}
	if cfg.Autosave {
		t.Error("Autosave = true, want false")
	}
	if !cfg.PublishEnabled() {
		t.Error("PublishEnabled() = false")
	}
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	dir := isolate(t)
	t.Setenv("REPORT_AUTHOR_PREFIX", "ENV")

	cfg, err := Load("mcp-report-author", dirArgs(dir, "--prefix=FLAG"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.CodePrefix != "FLAG" {
		t.Errorf("CodePrefix = %v, want FLAG", cfg.CodePrefix)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "author.yaml")
	content := "prefix: FILE\nlogowidth: 4.5\ndrafts: " + filepath.Join(dir, "from-file") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("mcp-report-author", []string{"--config=" + path, "--output=" + filepath.Join(dir, "out")})
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.CodePrefix != "FILE" || cfg.LogoWidthCM != 4.5 {
		t.Errorf("got prefix %q width %v", cfg.CodePrefix, cfg.LogoWidthCM)
	}
	if cfg.DraftDirectory != filepath.Join(dir, "from-file") {
		t.Errorf("DraftDirectory = %v", cfg.DraftDirectory)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid mode", args: []string{"--mode=invalid"}},
		{name: "invalid port", args: []string{"--mode=server", "--port=70000"}},
		{name: "invalid log level", args: []string{"--loglevel=verbose"}},
		{name: "logo width out of range", args: []string{"--logowidth=20"}},
		{name: "unknown flag", args: []string{"--colour=red"}},
		{name: "missing config file", args: []string{"--config=/nonexistent/author.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if _, err := Load("mcp-report-author", dirArgs(dir, tt.args...)); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoad_VersionFlag(t *testing.T) {
	for _, arg := range []string{"--version", "-version", "-v"} {
		t.Run(arg, func(t *testing.T) {
			_, err := Load("mcp-report-author", []string{arg})
			if !errors.Is(err, ErrVersionRequested) {
				t.Errorf("Load(%s) error = %v, want ErrVersionRequested", arg, err)
			}
		})
	}
}
