package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: logrus.WarnLevel, Out: &buf})

	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: logrus.DebugLevel, JSON: true, Out: &buf})

	l.WithField("relay", "api.codetabs.com").Debug("relay attempt failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["relay"] != "api.codetabs.com" {
		t.Errorf("relay field = %v", entry["relay"])
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v, want debug", entry["level"])
	}
}

func TestSetupInstallsStandardLogger(t *testing.T) {
	std := logrus.StandardLogger()
	prevOut, prevFmt, prevLvl := std.Out, std.Formatter, std.Level
	t.Cleanup(func() {
		std.SetOutput(prevOut)
		std.SetFormatter(prevFmt)
		std.SetLevel(prevLvl)
	})

	var buf bytes.Buffer
	Setup(Options{Level: logrus.DebugLevel, Out: &buf})

	logrus.Debug("through the standard logger")
	if !strings.Contains(buf.String(), "through the standard logger") {
		t.Errorf("standard logger not redirected: %q", buf.String())
	}
}
