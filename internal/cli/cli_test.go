package cli

import (
	"StyleAdvisor/internal/api/analysis"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// unsetEnv clears key for the test so a dotenv file can provide it.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestReadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "face.jpg")
	if err := os.WriteFile(path, []byte("0123456789"), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := readImage(path, 10)
	if err != nil || string(data) != "0123456789" {
		t.Errorf("Expected file contents, got %q, %v", data, err)
	}

	if _, err := readImage(path, 9); err == nil {
		t.Error("Expected error for file over the limit")
	}

	if _, err := readImage(filepath.Join(dir, "missing.jpg"), 10); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, analysis.ErrorResponse{Error: analysis.NoFaceMessage}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"error": "No face detected."`) {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "analyze"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Expected %s subcommand, got %v, %v", name, cmd, err)
		}
	}
}

func TestEnvFileConfiguresLogger(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	unsetEnv(t, "LOG_LEVEL")
	unsetEnv(t, "APP_PORT")

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("LOG_LEVEL=warn\nAPP_PORT=4321\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	oldEnvFile := envFile
	envFile = path
	t.Cleanup(func() { envFile = oldEnvFile })

	if err := rootCmd.PersistentPreRunE(rootCmd, nil); err != nil {
		t.Fatalf("PersistentPreRunE failed: %v", err)
	}

	if got := logger.GetLevel(); got != logrus.WarnLevel {
		t.Errorf("Expected LOG_LEVEL from env file to give warn, got %s", got)
	}
	if appConfig.Port != "4321" {
		t.Errorf("Expected APP_PORT from env file, got %s", appConfig.Port)
	}
}
