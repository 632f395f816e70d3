package gate

import (
	"errors"
	"fmt"
	"log/slog"

	"lepa/internal/config"
	"lepa/internal/logging"
)

// ErrInvalidCredentials signals a failed key match. The message is generic on
// purpose: callers surface it verbatim and must not hint at which keys exist
// or how close a guess was. Failures are local-only; nothing is retried and
// nothing locks out.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrSessionActive signals an authorize attempt while a role is already
// established. Roles never switch in place; the session must be cleared
// through Deauthorize first so its side effects (playback stop, selection
// clear) always run between roles.
var ErrSessionActive = errors.New("session already established")

// Stopper releases playback state when a session ends. Deauthorize stops any
// in-progress playback so no selected item outlives the session that chose it.
type Stopper interface {
	Stop()
}

// Gate evaluates submitted secrets against the configured viewer and admin
// keys and owns the persisted session record.
//
// The gate is a client-side convenience only. The stores enforce nothing
// themselves; anyone with direct access to them bypasses this entirely.
type Gate struct {
	viewerKey string
	adminKey  string
	session   *SessionFile
	stoppers  []Stopper
	logger    *slog.Logger
}

// New builds a gate from configured keys, restoring any persisted session.
// The provided stoppers are invoked on Deauthorize.
func New(cfg *config.Config, logger *slog.Logger, stoppers ...Stopper) (*Gate, error) {
	if cfg == nil {
		return nil, errors.New("gate: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	session, err := OpenSession(cfg.SessionPath())
	if err != nil {
		return nil, fmt.Errorf("open session record: %w", err)
	}

	return &Gate{
		viewerKey: cfg.Access.ViewerKey,
		adminKey:  cfg.Access.AdminKey,
		session:   session,
		stoppers:  stoppers,
		logger:    logging.NewComponentLogger(logger, "gate"),
	}, nil
}

// Role returns the currently established role.
func (g *Gate) Role() Role {
	return g.session.Role()
}

// Authorize compares a submitted secret against the configured keys and, on a
// match, persists the granted role. Only an unauthenticated session may
// authorize: an established role returns ErrSessionActive unchanged, so the
// sole path between viewer and admin is Deauthorize followed by Authorize.
// The two keys are distinct by config validation, so the viewer key can never
// grant admin. No match returns ErrInvalidCredentials with no further detail.
func (g *Gate) Authorize(secret string) (Role, error) {
	if current := g.session.Role(); current != RoleNone {
		return current, ErrSessionActive
	}

	var role Role
	switch secret {
	case g.adminKey:
		role = RoleAdmin
	case g.viewerKey:
		role = RoleViewer
	default:
		return RoleNone, ErrInvalidCredentials
	}

	if err := g.session.SetRole(role); err != nil {
		return RoleNone, fmt.Errorf("persist session: %w", err)
	}
	g.logger.Info("session established", logging.String("role", string(role)))
	return role, nil
}

// Deauthorize clears the session record, forces the role back to none, and
// stops any in-progress playback so nothing stays selected for a context
// that is no longer authenticated.
func (g *Gate) Deauthorize() error {
	for _, stopper := range g.stoppers {
		stopper.Stop()
	}
	if err := g.session.Clear(); err != nil {
		return err
	}
	g.logger.Info("session cleared")
	return nil
}
