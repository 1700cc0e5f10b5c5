package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRoutesLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut)

	l.Info("walked %d listings", 3)
	l.Warn("could not match %s", "website")
	l.Error("boom")
	l.Debug("hidden")

	if !strings.Contains(out.String(), "walked 3 listings") {
		t.Errorf("info line missing from stdout: %q", out.String())
	}
	if !strings.Contains(out.String(), "could not match website") {
		t.Errorf("warn line missing from stdout: %q", out.String())
	}
	if strings.Contains(out.String(), "boom") || !strings.Contains(errOut.String(), "boom") {
		t.Errorf("error line should only go to stderr")
	}
	if strings.Contains(out.String(), "hidden") {
		t.Errorf("debug line printed while debug disabled")
	}
	if l.Warnings() != 1 {
		t.Errorf("Warnings: got %d, want 1", l.Warnings())
	}

	l.SetDebug(true)
	l.Debug("shown %s", "now")
	if !strings.Contains(out.String(), "shown now") {
		t.Errorf("debug line missing after SetDebug(true)")
	}
}
