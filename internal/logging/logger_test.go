package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	if err := Initialize("", ""); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger should be a no-op when no level is configured")
	}
}

func TestInitialize_FromEnvWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "confsched.log")
	t.Setenv(LogLevelEnvVar, "info")

	if err := Initialize("", path); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	Info("hello from test")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file = %q, want message", string(data))
	}
}

func TestInitialize_UnknownLevel(t *testing.T) {
	if err := Initialize("chatty", ""); err == nil {
		t.Error("Initialize(chatty) expected error")
	}
}

func TestDomainHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	LogBinding([]string{"g", "g"}, stringer("Help"), stringer("Schedule"))
	LogAction(stringer("Quit"), stringer("Schedule"))
	LogMutation("update", 1, 3, errors.New("boom"))
	LogStore("save", "yaml", "default", nil)

	entries := logs.AllUntimed()
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}
	if entries[0].Message != "Got action" || entries[0].ContextMap()["action"] != "Help" {
		t.Errorf("binding entry = %+v", entries[0])
	}
	if entries[2].Level != zapcore.WarnLevel {
		t.Errorf("rejected mutation level = %v, want warn", entries[2].Level)
	}
	if entries[3].ContextMap()["backend"] != "yaml" {
		t.Errorf("store entry = %+v", entries[3])
	}
}
