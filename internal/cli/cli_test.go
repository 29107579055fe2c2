package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shidetake/sinetable/internal/audio"
	"github.com/shidetake/sinetable/internal/config"
	"github.com/shidetake/sinetable/internal/logger"
	"github.com/shidetake/sinetable/internal/table"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out, _, err := executeLogged(t, args...)
	return out, err
}

// executeLogged runs the root command and also returns what was logged.
func executeLogged(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var logs bytes.Buffer
	logger.SetOutput(&logs)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), logs.String(), err
}

// chdir moves into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestNewRootCmd_Flags(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"config", "output", "legacy", "wav", "wav-seconds", "log-level"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected --%s flag to be registered", name)
		}
	}

	found := false
	for _, sub := range root.Commands() {
		if sub.Name() == "inspect" {
			found = true
		}
	}
	if !found {
		t.Error("expected inspect subcommand")
	}
}

func TestRoot_WritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), table.DefaultFileName)

	if _, err := execute(t, "-o", path); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != table.N {
		t.Fatalf("got %d lines; want %d", len(lines), table.N)
	}
	if lines[0] != "0," {
		t.Errorf("line 0 = %q; want %q", lines[0], "0,")
	}
}

func TestRoot_NoArgsWritesDefaultHeaderSilently(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile(table.DefaultFileName, []byte("stale\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, logs, err := executeLogged(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "" {
		t.Errorf("unexpected command output: %q", out)
	}
	if logs != "" {
		t.Errorf("unexpected log output: %q", logs)
	}

	data, err := os.ReadFile(filepath.Join(".", table.DefaultFileName))
	if err != nil {
		t.Fatalf("default header not written: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != table.N {
		t.Fatalf("got %d lines; want %d", len(lines), table.N)
	}
	if !bytes.Equal(data, table.Format(table.Default(), table.StyleCompact)) {
		t.Error("header differs from generator output")
	}
}

func TestRoot_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), table.DefaultFileName)

	if _, err := execute(t, "-o", path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "-o", path); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("two runs produced different files")
	}
}

func TestRoot_LegacyStyle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.h")

	if _, err := execute(t, "-o", path, "--legacy"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "0 ,\n") {
		t.Errorf("legacy output starts with %q", string(data[:8]))
	}
}

func TestRoot_RejectsArguments(t *testing.T) {
	if _, err := execute(t, "unexpected"); err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestRoot_UnwritableOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", table.DefaultFileName)

	_, err := execute(t, "-o", path)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the path", err)
	}
}

func TestRun_WritesPreview(t *testing.T) {
	dir := t.TempDir()
	logger.SetOutput(&bytes.Buffer{})
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })

	cfg := config.DefaultConfig()
	cfg.Output.Path = filepath.Join(dir, table.DefaultFileName)
	cfg.Preview.Path = filepath.Join(dir, "preview.wav")
	cfg.Preview.Seconds = 0.1

	if err := Run(cfg); err != nil {
		t.Fatalf("Run: %v", err)
	}

	wav, err := audio.LoadWAV(cfg.Preview.Path)
	if err != nil {
		t.Fatalf("LoadWAV: %v", err)
	}
	if wav.SampleRate != int(table.Fs) {
		t.Errorf("SampleRate = %d; want %d", wav.SampleRate, int(table.Fs))
	}
	if len(wav.Data) != 2200 {
		t.Errorf("got %d samples; want 2200", len(wav.Data))
	}

	want := table.Default()
	for i, v := range wav.Data {
		if v != want[i%table.N] {
			t.Fatalf("sample %d = %d; want %d", i, v, want[i%table.N])
		}
	}
}

func TestInspect_VerifyGeneratedHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), table.DefaultFileName)
	if err := table.WriteFile(path, table.Default(), table.StyleLegacy); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "inspect", path, "--verify")
	if err != nil {
		t.Fatalf("inspect: %v\n%s", err, out)
	}
	for _, want := range []string{"Samples:     256", "matches generator output"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspect_VerifyDetectsMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounded.h")
	tampered := append(table.Table(nil), table.Default()...)
	tampered[3]++
	if err := table.WriteFile(path, tampered, table.StyleCompact); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := Inspect(&out, path, true)
	if err == nil {
		t.Fatal("expected verification error")
	}
	if !strings.Contains(out.String(), "index 3") {
		t.Errorf("output does not list the mismatch:\n%s", out.String())
	}
}

func TestInspect_WAVPreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.wav")
	data := audio.RenderLoop(table.Default(), 1000)
	if err := audio.WriteWAV(path, data, int(table.Fs), 1, 16); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Inspect(&out, path, true); err != nil {
		t.Fatalf("Inspect: %v\n%s", err, out.String())
	}
}

func TestInspect_MissingFile(t *testing.T) {
	var out bytes.Buffer
	if err := Inspect(&out, filepath.Join(t.TempDir(), "none.h"), false); err == nil {
		t.Fatal("expected error for missing file")
	}
}
