package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLogUsableBeforeInit(t *testing.T) {
	if Log == nil {
		t.Fatal("Log should never be nil")
	}
	// Must not panic even though Init has not run.
	Log.Info("connection established")
	Sync()
}

func TestInitSetsLevel(t *testing.T) {
	if err := Init("debug", "development"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !Log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug level to be enabled")
	}

	if err := Init("error", "production"); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if Log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("expected info level to be disabled at error level")
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != zapcore.InfoLevel {
		t.Errorf("expected unknown level to default to info, got %v", got)
	}
}

func TestMaskEmail(t *testing.T) {
	field := MaskEmail("email", "john@email.com")
	if field.String != "j***@email.com" {
		t.Errorf("expected j***@email.com, got %q", field.String)
	}

	field = MaskEmail("email", "not-an-email")
	if field.String != "***" {
		t.Errorf("expected *** for a malformed address, got %q", field.String)
	}
}

func TestMaskPhone(t *testing.T) {
	field := MaskPhone("phone", "+1-555-0101")
	if field.String != "*******0101" {
		t.Errorf("expected *******0101, got %q", field.String)
	}

	field = MaskPhone("phone", "101")
	if field.String != "***" {
		t.Errorf("expected *** for a short number, got %q", field.String)
	}
}
