package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/swtk/config"
	"github.com/tsawler/swtk/format"
)

const paper = "# Results\n\nThe IEEE standard is used. We follow IEEE rules here.\n"

func writeInput(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(paper), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWritesDefaultOutput(t *testing.T) {
	input := writeInput(t, "paper.md")
	cli := &CLI{File: input, Verbose: true}
	var stdout, stderr bytes.Buffer
	if err := cli.run(&stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out, err := os.ReadFile(format.DefaultOutput(input))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(out), `class="reportItem"`) {
		t.Error("report has no report widgets")
	}
	if !strings.Contains(stdout.String(), "fingerprint") || !strings.Contains(stdout.String(), "Content:") {
		t.Errorf("summary = %q", stdout.String())
	}
}

func TestRunStdout(t *testing.T) {
	cli := &CLI{File: writeInput(t, "paper.txt"), Output: format.Stdout, Verbose: true}
	var stdout, stderr bytes.Buffer
	if err := cli.run(&stdout, &stderr); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "<!DOCTYPE html>") {
		t.Errorf("stdout does not start with the report: %.40q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "fingerprint") {
		t.Error("summary should go to stderr when the report uses stdout")
	}
}

func TestRunRejectsBeforeParsing(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cli  CLI
		want error
	}{
		{"input extension", CLI{File: filepath.Join(dir, "paper.docx")}, format.ErrUnsupported},
		{"output extension", CLI{File: filepath.Join(dir, "paper.tex"), Output: "paper.pdf"}, format.ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cli.run(&bytes.Buffer{}, &bytes.Buffer{})
			if !errors.Is(err, tt.want) {
				t.Errorf("run() error = %v, want %v", err, tt.want)
			}
		})
	}

	cli := &CLI{File: writeInput(t, "paper.md"), Stylesheet: filepath.Join(dir, "absent.css")}
	err := cli.run(&bytes.Buffer{}, &bytes.Buffer{})
	var missing *config.MissingResourceError
	if !errors.As(err, &missing) || missing.Kind != "stylesheet" {
		t.Errorf("run() error = %v, want missing stylesheet", err)
	}
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "swtk.yaml")
	if err := os.WriteFile(path, []byte("math: inline\nfloats: false\nlog:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cli := &CLI{Config: path, DisplayMath: true, Floats: true, LogLevel: "debug"}
	cfg, err := cli.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Math != "display" || !cfg.Floats || cfg.Log.Level != "debug" {
		t.Errorf("config = %+v", cfg)
	}

	bad := &CLI{LogLevel: "loud"}
	if _, err := bad.loadConfig(); err == nil {
		t.Error("loadConfig() should reject an unknown log level")
	}
}

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous one on cleanup (equivalent to testing.T.Chdir, Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
