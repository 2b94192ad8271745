package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNew_NopWhenQuiet(t *testing.T) {
	logger, err := New(Options{})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("quiet logger should be a no-op")
	}
}

func TestNew_File(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"info level", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logs", "askgemini.log")

			logger, err := New(Options{Verbose: tt.verbose, File: path})
			if err != nil {
				t.Fatalf("New() returned error: %v", err)
			}

			logger.Debug("debug line")
			logger.Info("info line", zap.String("k", "v"))
			Sync(logger)

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("log file not written: %v", err)
			}
			out := string(data)

			if !strings.Contains(out, `"msg":"info line"`) || !strings.Contains(out, `"k":"v"`) {
				t.Errorf("info entry missing from JSON log: %s", out)
			}
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestNew_VerboseStderr(t *testing.T) {
	logger, err := New(Options{Verbose: true})
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Error("verbose logger should enable debug level")
	}
}

func TestSync_Nil(t *testing.T) {
	Sync(nil)
}
