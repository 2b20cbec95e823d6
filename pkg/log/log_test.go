package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestForServiceMemoizes(t *testing.T) {
	a := ForService("api")
	b := ForService("api")
	if a != b {
		t.Error("expected the same logger instance for the same service name")
	}
}

func TestPrefixAndLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(new(bytes.Buffer))

	l := ForService("resolver-test")
	l.Infof("hello %s", "world")
	l.Warnf("watch out")
	l.Errorf("boom")

	out := buf.String()
	for _, want := range []string{
		"INFO [resolver-test>] hello world",
		"WARN [resolver-test>] watch out",
		"ERROR [resolver-test>] boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDebugSuppressedByDefault(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(new(bytes.Buffer))

	l := ForService("debug-test")
	l.Debugf("invisible")
	if strings.Contains(buf.String(), "invisible") {
		t.Error("debug message logged without debug enabled")
	}

	EnableDebugFor("debug-test")
	l.Debugf("visible")
	if !strings.Contains(buf.String(), "DEBUG [debug-test>] visible") {
		t.Errorf("debug message not logged after EnableDebugFor: %s", buf.String())
	}
}

func TestGlobalDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(new(bytes.Buffer))

	SetGlobalDebug(true)
	defer SetGlobalDebug(false)

	if !DebugEnabledFor("any-service") {
		t.Error("global debug should enable debug for every service")
	}
}
