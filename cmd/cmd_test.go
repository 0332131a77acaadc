package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// execute runs the root command with args against an empty config dir.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	flagJSON, flagDownload, flagSave, flagPlay = false, "", false, false
	flagLink, flagPlayer, flagTimeout, flagDebug = 0, "", "", false
	flagRelays = nil
	if f := rootCmd.PersistentFlags().Lookup("relay"); f != nil {
		f.Value.(pflag.SliceValue).Replace(nil)
		f.Changed = false
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "linkgrab "+Version {
		t.Errorf("output = %q", out)
	}
}

func TestPlatformsCommand(t *testing.T) {
	out, err := execute(t, "platforms")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "YouTube") || !strings.Contains(lines[0], "youtu.be") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[4], "Twitter") || !strings.Contains(lines[4], "x.com") {
		t.Errorf("last line = %q", lines[4])
	}
}

func TestRelaysCommandOverride(t *testing.T) {
	out, err := execute(t, "relays", "--relay", "https://relay.example/raw?url={url}", "--timeout", "3s")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "1. relay.example") {
		t.Errorf("output missing overridden relay:\n%s", out)
	}
	if !strings.Contains(out, "timeout per attempt: 3s") {
		t.Errorf("output missing timeout:\n%s", out)
	}
}

func TestRelaysCommandDefaultsAfterOverride(t *testing.T) {
	if _, err := execute(t, "relays", "--relay", "https://other.example/raw?url={url}"); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "relays")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "other.example") {
		t.Errorf("--relay from an earlier run leaked into this one:\n%s", out)
	}
	if !strings.Contains(out, "1. api.codetabs.com") {
		t.Errorf("output missing default relays:\n%s", out)
	}
}

func TestResolveUnsupportedJSON(t *testing.T) {
	out, err := execute(t, "--json", "https://vimeo.com/123")
	if !errors.Is(err, errFailed) {
		t.Fatalf("err = %v, want errFailed", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got["status"] != "error" || got["kind"] != "unsupported_platform" {
		t.Errorf("result = %v", got)
	}
}

func TestResolveEmptyURL(t *testing.T) {
	out, err := execute(t, "")
	if !errors.Is(err, errFailed) {
		t.Fatalf("err = %v, want errFailed", err)
	}
	if !strings.Contains(out, "URL is required") {
		t.Errorf("output = %q", out)
	}
}

func TestInvalidTimeoutFlag(t *testing.T) {
	if _, err := execute(t, "version", "--timeout", "never"); err == nil {
		t.Error("expected invalid --timeout to fail")
	}
}
