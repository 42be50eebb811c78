package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "auth_audit.log")

	log, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	log.AuthFailure("alice", "invalid password")
	log.AuthFailure("", "invalid refresh token")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %s", len(lines), data)
	}

	first := lines[0]
	for _, want := range []string{`"username":"alice"`, `"reason":"invalid password"`, `"correlation_id":"`, `"time":`} {
		if !strings.Contains(first, want) {
			t.Fatalf("entry missing %s: %s", want, first)
		}
	}
	if !strings.Contains(lines[1], `"username":""`) {
		t.Fatalf("anonymous entry must keep an empty username: %s", lines[1])
	}
}

func TestOpen_AppendsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "auth_audit.log")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	first.AuthFailure("alice", "unknown user")

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	second.AuthFailure("bob", "inactive user")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read audit file: %v", err)
	}
	if got := strings.Count(string(data), "authentication failure"); got != 2 {
		t.Fatalf("expected both entries preserved, got %d", got)
	}
}

func TestOpen_UnwritablePathDiscards(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the open fail.
	if err := os.Mkdir(filepath.Join(dir, "audit.log"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	log, err := Open(filepath.Join(dir, "audit.log"))
	if err == nil {
		t.Fatalf("expected open error for directory target")
	}
	// Entries are silently discarded; the call must not panic.
	log.AuthFailure("alice", "invalid password")
}
