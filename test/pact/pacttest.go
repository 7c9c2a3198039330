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
	ProviderName = "food-order-api"
	ConsumerName = "storefront"

	StateDemoStore    = "demo store 1 with menus"
	StateOrderMissing = "demo store 1 without order 999"
)

const (
	DemoStoreID     int64 = 1
	DemoMenuID      int64 = 1
	DemoMenuPrice   int64 = 10000
	MissingOrderID  int64 = 999
	CustomerEmail         = "customer@example.com"
	MemberHeaderKey       = "X-Member-Email"
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

// PactFile returns the canonical pact file path for the storefront consumer.
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

// ExampleCartPayload is a one-line cart for the demo menu at its listed price.
func ExampleCartPayload() map[string]any {
	return map[string]any{
		"totalPrice": DemoMenuPrice,
		"items": []map[string]any{
			{"menuId": DemoMenuID, "quantity": 1},
		},
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
