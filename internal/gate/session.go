package gate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// sessionRecord is the persisted representation of the current role.
type sessionRecord struct {
	Role      string    `json:"role"`
	GrantedAt time.Time `json:"granted_at"`
}

// SessionFile persists the session record as a JSON file. The original
// system split this state across a tab-scoped store and a durable store read
// by different views; here there is exactly one durable scope, so every part
// of the system observes the same role until an explicit logout.
type SessionFile struct {
	path string

	mu   sync.RWMutex
	role Role
}

// OpenSession loads the session record at path, starting unauthenticated if
// the file is absent or unreadable.
func OpenSession(path string) (*SessionFile, error) {
	s := &SessionFile{path: path, role: RoleNone}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session record: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		// A corrupt record is treated as logged out rather than fatal.
		return s, nil
	}
	s.role = ParseRole(record.Role)
	return s, nil
}

// Role returns the currently persisted role.
func (s *SessionFile) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SetRole records a granted role and persists it.
func (s *SessionFile) SetRole(role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.role = role
	return s.save(sessionRecord{Role: string(role), GrantedAt: time.Now().UTC()})
}

// Clear forgets the persisted role, removing the record from disk.
func (s *SessionFile) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.role = RoleNone
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session record: %w", err)
	}
	return nil
}

// save writes the record atomically via temp file.
func (s *SessionFile) save(record sessionRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("finalize session record: %w", err)
	}
	return nil
}
