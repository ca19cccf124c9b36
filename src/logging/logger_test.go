package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	t.Cleanup(SetOutput(&buf))
	return &buf
}

func TestInfof_NoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel("info")

	msg := "wrote pDist1_avg.png (100.0% of figures, title=Probability at t=5)"
	Infof(msg)

	out := buf.String()
	if !strings.Contains(out, "(100.0% of figures") {
		t.Fatalf("log output missing expected percent segment: %s", out)
	}
	if strings.Contains(out, "%!o(MISSING)") || strings.Contains(out, "%!f(MISSING)") {
		t.Fatalf("log output still shows fmt artifact: %s", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := captureLog(t)
	defer SetLogLevel("info")

	SetLogLevel("warn")
	Infof("hidden %d", 1)
	Debugf("hidden too")
	Warnf("shown %s", "warn")
	Errorf("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info/debug lines leaked at warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown warn") || !strings.Contains(out, "[ERROR] shown error") {
		t.Fatalf("missing warn/error lines: %s", out)
	}
}

func TestSetLogLevel_Unknown(t *testing.T) {
	defer SetLogLevel("info")
	SetLogLevel("error")
	if SetLogLevel("verbose") {
		t.Fatalf("unknown level should be rejected")
	}
	if GetLogLevel() != LevelError {
		t.Fatalf("level changed on unknown name: %v", GetLogLevel())
	}
}

func TestSetLogLevelFromEnv(t *testing.T) {
	defer SetLogLevel("info")
	t.Setenv(EnvLogLevel, "debug")
	SetLogLevelFromEnv("")
	if GetLogLevel() != LevelDebug {
		t.Fatalf("env level not applied: %v", GetLogLevel())
	}
	SetLogLevelFromEnv("error")
	if GetLogLevel() != LevelError {
		t.Fatalf("explicit level should win over env: %v", GetLogLevel())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, " INFO ": LevelInfo, "warning": LevelWarn, "error": LevelError}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil || !strings.Contains(err.Error(), "loud") {
		t.Fatalf("want error naming the input, got %v", err)
	}
	if LevelWarn.String() != "WARN" || Level(9).String() != "Level(9)" {
		t.Fatalf("String mismatch")
	}
}

func TestTimeTrack(t *testing.T) {
	buf := captureLog(t)
	defer SetLogLevel("info")
	SetLogLevel("debug")
	TimeTrack(time.Now(), "render msd_avg.png")
	if !strings.Contains(buf.String(), "[DEBUG] render msd_avg.png took ") {
		t.Fatalf("TimeTrack output: %s", buf.String())
	}
}
