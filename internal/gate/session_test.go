package gate_test

import (
	"os"
	"path/filepath"
	"testing"

	"lepa/internal/gate"
)

func TestOpenSessionMissingFileStartsUnauthenticated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	session, err := gate.OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if session.Role() != gate.RoleNone {
		t.Fatalf("expected RoleNone, got %v", session.Role())
	}
}

func TestOpenSessionIgnoresCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt record: %v", err)
	}
	session, err := gate.OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if session.Role() != gate.RoleNone {
		t.Fatalf("expected RoleNone for corrupt record, got %v", session.Role())
	}
}

func TestOpenSessionIgnoresUnknownRole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(`{"role":"superuser"}`), 0o600); err != nil {
		t.Fatalf("write record: %v", err)
	}
	session, err := gate.OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if session.Role() != gate.RoleNone {
		t.Fatalf("expected RoleNone for unknown role, got %v", session.Role())
	}
}

func TestSetRolePersistsAndClearRemoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	session, err := gate.OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if err := session.SetRole(gate.RoleAdmin); err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected session file on disk: %v", err)
	}

	if err := session.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected session file removed, got %v", err)
	}
	// Clearing when nothing persists stays quiet.
	if err := session.Clear(); err != nil {
		t.Fatalf("repeat Clear: %v", err)
	}
}

func TestParseRole(t *testing.T) {
	if gate.ParseRole(" Admin ") != gate.RoleAdmin {
		t.Fatal("expected admin")
	}
	if gate.ParseRole("viewer") != gate.RoleViewer {
		t.Fatal("expected viewer")
	}
	if gate.ParseRole("root") != gate.RoleNone {
		t.Fatal("expected none for unknown value")
	}
}
