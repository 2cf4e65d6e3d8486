package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeSilent(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	defer SetLogger(nil)

	for _, level := range []string{"", "silent"} {
		if err := Initialize(level); err != nil {
			t.Fatalf("Initialize(%q) = %v", level, err)
		}
		if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
			t.Errorf("Initialize(%q) should disable logging", level)
		}
	}
}

func TestInitializeLevels(t *testing.T) {
	defer SetLogger(nil)

	tests := []struct {
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
		{"bogus", zapcore.InfoLevel, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if err := Initialize(tt.level); err != nil {
				t.Fatal(err)
			}
			core := GetLogger().Core()
			if !core.Enabled(tt.enabled) {
				t.Errorf("%s should be enabled", tt.enabled)
			}
			if core.Enabled(tt.muted) {
				t.Errorf("%s should be muted", tt.muted)
			}
		})
	}
}

func TestInitializeFromEnv(t *testing.T) {
	defer SetLogger(nil)
	t.Setenv(LogLevelEnvVar, "warn")

	if err := Initialize(""); err != nil {
		t.Fatal(err)
	}
	if !GetLogger().Core().Enabled(zapcore.WarnLevel) || GetLogger().Core().Enabled(zapcore.InfoLevel) {
		t.Error("environment level not applied")
	}
}

func TestHelpersWriteFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogTouch("press", 10, 20)
	LogStoreWrite(8, []byte{1, 2, 3, 4}, nil)
	LogWebSocketMessage("1.2.3.4:5", "recv", 1, []byte(`{"t":"down"}`))

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if got := entries[0].ContextMap()["x"]; got != int64(10) {
		t.Errorf("touch x = %v", got)
	}
	if got := entries[2].ContextMap()["message_type"]; got != "text" {
		t.Errorf("message_type = %v", got)
	}
	if got := entries[2].ContextMap()["content"]; got != `{"t":"down"}` {
		t.Errorf("content = %v", got)
	}
}

func TestHexDumpTruncates(t *testing.T) {
	if got := hexDump(nil); got != "" {
		t.Errorf("hexDump(nil) = %q", got)
	}
	long := make([]byte, 300)
	if got := hexDump(long); len(got) != 512+3 {
		t.Errorf("hexDump length = %d", len(got))
	}
}
