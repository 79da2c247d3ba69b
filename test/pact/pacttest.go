//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "users-api"
	ConsumerName = "user-portal"

	StateUsersBaseline = "users baseline"
	StateUserExists    = "user with id 1 exists"
	StateUserMissing   = "no user with id 404"
)

const (
	ExistingUserID int64 = 1
	MissingUserID  int64 = 404

	ExampleEmail     = "pact.user@example.com"
	ExampleBirthDate = "1990-06-15"
	RangeFrom        = "1990-01-01"
	RangeTo          = "1990-12-31"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the user portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleUserPayload provides stable test data for pact interactions.
func ExampleUserPayload() map[string]any {
	return map[string]any{
		"email":       ExampleEmail,
		"firstName":   "Pact",
		"surname":     "User",
		"birthDate":   ExampleBirthDate,
		"address":     "1 Contract Ct",
		"phoneNumber": "+1234567890",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
