package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit_Levels(t *testing.T) {
	defer SetLogger(nil)

	if err := Init("development", ""); err != nil {
		t.Fatalf("Expected development init to succeed, got %v", err)
	}
	if err := Init("production", "warn"); err != nil {
		t.Fatalf("Expected production init to succeed, got %v", err)
	}
	if !GetLogger().Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("Expected error level to be enabled")
	}
	if GetLogger().Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("Expected info level to be disabled at warn")
	}
	if err := Init("production", "chatty"); err == nil {
		t.Error("Expected unknown level to be rejected")
	}
}
