package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// DefaultUser is the POMAR_USER every test environment starts with
const DefaultUser = "tester"

// TestEnvironment provides an isolated test environment with its own POMAR_HOME.
type TestEnvironment struct {
	PomarHome string
	extraEnv  map[string]string
	tb        testing.TB
}

// NewTestEnvironment creates an isolated test environment with a temp POMAR_HOME.
// The temp directory is automatically cleaned up when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	return &TestEnvironment{
		PomarHome: tb.TempDir(),
		extraEnv:  make(map[string]string),
		tb:        tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out POMAR_* variables and sets:
//   - POMAR_HOME to the temp directory
//   - POMAR_SOUND to false
//   - POMAR_USER to DefaultUser
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))

	// Filter out existing POMAR_* variables and any we're overriding
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := e.extraEnv[key]; strings.HasPrefix(key, "POMAR_") || overridden {
			continue
		}
		env = append(env, kv)
	}

	defaults := map[string]string{
		"POMAR_HOME":  e.PomarHome,
		"POMAR_SOUND": "false",
		"POMAR_USER":  DefaultUser,
	}
	for k, v := range defaults {
		if _, overridden := e.extraEnv[k]; !overridden {
			env = append(env, k+"="+v)
		}
	}

	// Add extra environment variables
	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// DBPath returns the path to the test database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.PomarHome, "state.db")
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// WriteSettings writes name (settings.yaml or settings.json) into POMAR_HOME.
func (e *TestEnvironment) WriteSettings(name, content string) {
	e.tb.Helper()
	if err := os.WriteFile(filepath.Join(e.PomarHome, name), []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write %s: %v", name, err)
	}
}
