package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger_WritesToLogDir(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")

	log, err := NewLogger(logDir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	log.Info("boot")
	_ = log.Sync()

	data, err := os.ReadFile(filepath.Join(logDir, "watchtower.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("log file is empty")
	}
}
