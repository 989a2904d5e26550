package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestDir creates a temporary directory holding a liftlogic.yaml that
// writes CSV audits into an "audits" subdirectory with speech disabled.
// Returns the directory path.
func SetupTestDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	auditDir := filepath.Join(tmpDir, "audits")
	require.NoError(t, os.MkdirAll(auditDir, 0o755))

	configContent := fmt.Sprintf(`mode: squat
audit:
  dir: %s
  format: csv
speech:
  enabled: false
log:
  level: debug
`, auditDir)
	WriteTestFile(t, tmpDir, "liftlogic.yaml", configContent)

	return tmpDir
}

// WriteTestFile writes content to base/path, creating parent directories.
func WriteTestFile(t *testing.T, base, path, content string) {
	t.Helper()

	fullPath := filepath.Join(base, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
}
