package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	if err := Init("debug", path, false); err != nil {
		t.Fatalf("Init: %v", err)
	}

	log.Info().Str("ticker", "AAPL").Msg("scan finished")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "scan finished") || !strings.Contains(string(data), "AAPL") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init("chatty", "", false); err == nil {
		t.Error("unknown level must be rejected")
	}
}

func TestNewAccessLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "access.log")
	al := NewAccessLogger(path)
	al.Info().Int("status", 200).Msg("request")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read access log: %v", err)
	}
	if !strings.Contains(string(data), `"type":"access"`) {
		t.Errorf("access log missing type field: %s", data)
	}
}
