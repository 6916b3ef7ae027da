package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	bderror "github.com/msto63/boundary/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{5 * time.Minute}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "5m0s" {
		t.Errorf("MarshalText() = %v, want 5m0s", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.Name != "boundary" {
		t.Errorf("General.Name = %v, want boundary", cfg.General.Name)
	}
	if cfg.Guard.FallbackMessage != "Oops, there is an error!" {
		t.Errorf("Guard.FallbackMessage = %v", cfg.Guard.FallbackMessage)
	}
	if cfg.Guard.RetryLabel != "Try again?" {
		t.Errorf("Guard.RetryLabel = %v", cfg.Guard.RetryLabel)
	}
	if cfg.Reporter.Enabled {
		t.Error("Reporter should be disabled by default")
	}
	if cfg.Reporter.ServiceName != "boundary" {
		t.Errorf("Reporter.ServiceName = %v, want boundary", cfg.Reporter.ServiceName)
	}
	if cfg.Reporter.FlushPeriod.Duration != 5*time.Second {
		t.Errorf("Reporter.FlushPeriod = %v, want 5s", cfg.Reporter.FlushPeriod.Duration)
	}
	if cfg.Journal.Enabled {
		t.Error("Journal should be disabled by default")
	}
	if cfg.Journal.Path != filepath.Join("./data", "faults.db") {
		t.Errorf("Journal.Path = %v", cfg.Journal.Path)
	}
	if cfg.Throttle.Window.Duration != 0 {
		t.Errorf("Throttle.Window = %v, want 0 (disabled)", cfg.Throttle.Window.Duration)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[general]
log_level = "debug"
data_dir = "` + dir + `"

[guard]
fallback_message = "Etwas ist schiefgelaufen"

[reporter]
enabled = true
address = "sink:9120"
flush_period = "250ms"

[throttle]
window = "2s"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Guard.FallbackMessage != "Etwas ist schiefgelaufen" {
		t.Errorf("FallbackMessage = %v", cfg.Guard.FallbackMessage)
	}
	if cfg.Guard.RetryLabel != "Try again?" {
		t.Errorf("RetryLabel default not applied: %v", cfg.Guard.RetryLabel)
	}
	if !cfg.Reporter.Enabled || cfg.Reporter.Address != "sink:9120" {
		t.Errorf("Reporter = %+v", cfg.Reporter)
	}
	if cfg.Reporter.FlushPeriod.Duration != 250*time.Millisecond {
		t.Errorf("FlushPeriod = %v", cfg.Reporter.FlushPeriod.Duration)
	}
	if cfg.Throttle.Window.Duration != 2*time.Second {
		t.Errorf("Throttle.Window = %v", cfg.Throttle.Window.Duration)
	}
	if cfg.Journal.Path != filepath.Join(dir, "faults.db") {
		t.Errorf("Journal.Path = %v", cfg.Journal.Path)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	if !bderror.HasCode(err, bderror.CodeMissingConfig) {
		t.Errorf("missing file: err = %v, want CodeMissingConfig", err)
	}

	broken := filepath.Join(dir, "broken.toml")
	os.WriteFile(broken, []byte("[general\nname="), 0o644)
	_, err = Load(broken)
	if !bderror.HasCode(err, bderror.CodeInvalidConfig) {
		t.Errorf("broken file: err = %v, want CodeInvalidConfig", err)
	}

	negative := filepath.Join(dir, "negative.toml")
	os.WriteFile(negative, []byte("[throttle]\nwindow = \"-1s\"\n"), 0o644)
	_, err = Load(negative)
	if !bderror.HasCode(err, bderror.CodeInvalidConfig) {
		t.Errorf("negative window: err = %v, want CodeInvalidConfig", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.toml")
	os.WriteFile(path, []byte("[general]\nname = \"from-env\"\n"), 0o644)

	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "from-env" {
		t.Errorf("Name = %v, want from-env", cfg.General.Name)
	}
	if cfg.Reporter.ServiceName != "from-env" {
		t.Errorf("Reporter.ServiceName = %v, want from-env", cfg.Reporter.ServiceName)
	}
}

func TestLoadFromEnv_NoFileFallsBackToDefaults(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.General.Name != "boundary" {
		t.Errorf("Name = %v, want boundary", cfg.General.Name)
	}
}
