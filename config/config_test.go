package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/lazyseq/errors"
	"github.com/kbukum/lazyseq/version"
)

func TestSettingsApplyDefaults(t *testing.T) {
	s := Settings{Name: "svc"}
	s.ApplyDefaults()
	if s.Environment != "development" {
		t.Errorf("expected 'development', got %q", s.Environment)
	}
	if s.Version != version.Short() {
		t.Errorf("expected build version %q, got %q", version.Short(), s.Version)
	}
	if s.Logging.Level != "info" || s.Logging.Format != "console" {
		t.Errorf("expected logging defaults, got %+v", s.Logging)
	}
	if s.Tracing.SampleRate != 1 {
		t.Errorf("expected sample rate 1, got %v", s.Tracing.SampleRate)
	}
	if s.Metrics.Interval != 15*time.Second {
		t.Errorf("expected 15s interval, got %v", s.Metrics.Interval)
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := func() Settings {
		s := Settings{Name: "svc"}
		s.ApplyDefaults()
		return s
	}
	tests := []struct {
		name   string
		mutate func(*Settings)
		errMsg string
	}{
		{"valid", func(*Settings) {}, ""},
		{"missing name", func(s *Settings) { s.Name = "" }, "name: is required"},
		{"invalid environment", func(s *Settings) { s.Environment = "qa" }, "environment: must be one of"},
		{"invalid log format", func(s *Settings) { s.Logging.Format = "xml" }, "logging.format"},
		{"sample rate too high", func(s *Settings) { s.Tracing.SampleRate = 2 }, "tracing.sample_rate"},
		{"bad endpoint", func(s *Settings) { s.Metrics.Endpoint = "not an address" }, "metrics.endpoint"},
		{"tracing without endpoint", func(s *Settings) { s.Tracing.Enabled = true }, "tracing.endpoint: is required"},
		{"tracing with endpoint", func(s *Settings) {
			s.Tracing.Enabled = true
			s.Tracing.Endpoint = "localhost:4318"
		}, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			err := s.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("expected INVALID_ARGUMENT, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadSettingsWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: ingest
environment: staging
logging:
  level: debug
  format: json
tracing:
  enabled: true
  endpoint: collector:4318
  sample_rate: 0.5
metrics:
  interval: 30s
`)

	s, err := LoadSettings("ingest", WithConfigFile(path), WithEnvPrefix("LAZYSEQ_TEST_YAML"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Environment != "staging" || s.Logging.Level != "debug" {
		t.Errorf("unexpected settings %+v", s)
	}
	if !s.Tracing.Enabled || s.Tracing.Endpoint != "collector:4318" || s.Tracing.SampleRate != 0.5 {
		t.Errorf("unexpected tracing %+v", s.Tracing)
	}
	if s.Metrics.Interval != 30*time.Second {
		t.Errorf("expected 30s interval, got %v", s.Metrics.Interval)
	}
}

func TestLoadSettingsEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: ingest\ntracing:\n  sample_rate: 0.5\n")
	t.Setenv("LAZYSEQ_TEST_ENV_TRACING_SAMPLE_RATE", "0.25")
	t.Setenv("LAZYSEQ_TEST_ENV_LOGGING_LEVEL", "warn")

	s, err := LoadSettings("ingest", WithConfigFile(path), WithEnvPrefix("LAZYSEQ_TEST_ENV"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Tracing.SampleRate != 0.25 {
		t.Errorf("expected env override 0.25, got %v", s.Tracing.SampleRate)
	}
	if s.Logging.Level != "warn" {
		t.Errorf("expected env override warn, got %q", s.Logging.Level)
	}
}

func TestLoadSettingsDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "LAZYSEQ_TEST_DOTENV_ENVIRONMENT=production\n")
	t.Cleanup(func() { os.Unsetenv("LAZYSEQ_TEST_DOTENV_ENVIRONMENT") })

	s, err := LoadSettings("ingest", WithConfigFile(filepath.Join(dir, "missing.yml")), WithEnvFile(envPath), WithEnvPrefix("LAZYSEQ_TEST_DOTENV"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Environment != "production" {
		t.Errorf("expected production from .env, got %q", s.Environment)
	}
	if s.Name != "ingest" {
		t.Errorf("expected name to default to ingest, got %q", s.Name)
	}
}

func TestLoadSettingsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: ingest\ntracing:\n  enabled: true\n")
	_, err := LoadSettings("ingest", WithConfigFile(path), WithEnvPrefix("LAZYSEQ_TEST_INVALID"))
	if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
	}
}

func TestLoadConfigMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: [unterminated\n")
	var s Settings
	if err := LoadConfig("ingest", &s, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var s Settings
	err := LoadConfig("nonexistent", &s, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/my-svc.yml": true,
		"./.env":              true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("my-svc", LoaderConfig{})
	if files.ConfigFile != "./config/my-svc.yml" {
		t.Errorf("expected ./config/my-svc.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected ./.env, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPathsWin(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./config.yml": true}}}
	files := resolver.ResolveFiles("svc", LoaderConfig{ConfigFile: "/etc/svc.yml"})
	if files.ConfigFile != "/etc/svc.yml" {
		t.Errorf("expected explicit path, got %q", files.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("APP")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" || lc.EnvPrefix != "APP" {
		t.Errorf("options not applied: %+v", lc)
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := envPrefix("my-app.v2"); got != "MY_APP_V2" {
		t.Errorf("got %q", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("TRACING_SAMPLE_RATE")
	for _, want := range []string{"tracing_sample_rate", "tracing.sample.rate", "tracing.sample_rate"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected %q in %v", want, got)
		}
	}
	if got := envKeyVariants("NAME"); len(got) != 1 || got[0] != "name" {
		t.Errorf("got %v", got)
	}
}
