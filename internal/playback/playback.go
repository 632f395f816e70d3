package playback

import (
	"log/slog"
	"sync"

	"lepa/internal/archive"
	"lepa/internal/logging"
)

// Player holds the single playback slot. Only one recording can be current at
// a time; selecting another stops whatever was playing. The daemon does not
// decode audio itself, it tracks which recording a surface should be playing.
type Player struct {
	mu      sync.Mutex
	current *archive.Recording
	playing bool
	logger  *slog.Logger
}

// NewPlayer builds an empty playback slot.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Player{logger: logging.NewComponentLogger(logger, "playback")}
}

// Select makes a recording current. Re-selecting the current recording
// toggles pause/resume; selecting a different one replaces it and starts
// playing. The playing state after the call is returned.
func (p *Player) Select(recording archive.Recording) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil && p.current.ID == recording.ID {
		p.playing = !p.playing
		return p.playing
	}

	p.current = &recording
	p.playing = true
	p.logger.Debug("playback switched",
		logging.String(logging.FieldRecordID, recording.ID),
		logging.String("title", recording.Title))
	return true
}

// Toggle pauses or resumes the current recording. Returns false when nothing
// is selected.
func (p *Player) Toggle() (bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return false, false
	}
	p.playing = !p.playing
	return p.playing, true
}

// Stop halts playback and clears the current selection. Also invoked by the
// access gate on deauthorize so no selection outlives its session.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.logger.Debug("playback stopped", logging.String(logging.FieldRecordID, p.current.ID))
	}
	p.current = nil
	p.playing = false
}

// Drop clears the slot when the given recording is current, used after that
// recording is deleted from the archive.
func (p *Player) Drop(recordingID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil && p.current.ID == recordingID {
		p.current = nil
		p.playing = false
	}
}

// Current returns the selected recording, if any, and whether it is playing.
func (p *Player) Current() (archive.Recording, bool, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return archive.Recording{}, false, false
	}
	return *p.current, p.playing, true
}
