package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestToUnits(t *testing.T) {
	tests := []struct {
		name    string
		d       time.Duration
		unit    time.Duration
		want    uint8
		wantErr bool
	}{
		{"Seconds", 45 * time.Second, time.Second, 45, false},
		{"Zero", 0, time.Second, 0, false},
		{"Max", 255 * time.Second, time.Second, 255, false},
		{"TooLong", 256 * time.Second, time.Second, 0, true},
		{"NotWhole", 1500 * time.Millisecond, time.Second, 0, true},
		{"TenSeconds", 4 * time.Minute, 10 * time.Second, 24, false},
		{"NotMultiple", 65 * time.Second, 10 * time.Second, 0, true},
		{"Negative", -time.Second, time.Second, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := toUnits("delay", tt.d, tt.unit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %d but got %d", tt.want, got)
			}
		})
	}
}

func TestParamsSetAndShow(t *testing.T) {
	dir := t.TempDir()
	paramsFile := filepath.Join(dir, "parameters.bin")

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&out)
		cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "config.toml")}, args...))
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v failed: %v\n%s", args, err, out.String())
		}
		return out.String()
	}

	out := run("params", "show", paramsFile)
	if !strings.Contains(out, "no record") {
		t.Errorf("expected missing record message but got %q", out)
	}

	out = run("params", "set", paramsFile, "--delay", "10s", "--cruise", "75")
	if want := "delay 10s, flight 4m0s, cruise 75%"; !strings.Contains(out, want) {
		t.Errorf("expected %q in %q", want, out)
	}

	out = run("params", "show", paramsFile)
	if want := "0a 18 4b"; !strings.Contains(out, want) {
		t.Errorf("expected record bytes %q in %q", want, out)
	}
}

func TestParamsSetRejectsCruise(t *testing.T) {
	dir := t.TempDir()

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--config", filepath.Join(dir, "config.toml"),
		"params", "set", filepath.Join(dir, "parameters.bin"), "--cruise", "101",
	})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for cruise above 100")
	}
}
