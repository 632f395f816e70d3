package playback_test

import (
	"testing"

	"lepa/internal/archive"
	"lepa/internal/playback"
)

func TestSelectIsExclusive(t *testing.T) {
	player := playback.NewPlayer(nil)

	first := archive.Recording{ID: "a", Title: "Igal Igal"}
	second := archive.Recording{ID: "b", Title: "Lullaby"}

	if playing := player.Select(first); !playing {
		t.Fatal("expected first selection to play")
	}
	if playing := player.Select(second); !playing {
		t.Fatal("expected switch to play")
	}

	current, playing, ok := player.Current()
	if !ok || current.ID != "b" || !playing {
		t.Fatalf("unexpected slot state: %+v playing=%v ok=%v", current, playing, ok)
	}
}

func TestReselectTogglesPause(t *testing.T) {
	player := playback.NewPlayer(nil)
	recording := archive.Recording{ID: "a"}

	player.Select(recording)
	if playing := player.Select(recording); playing {
		t.Fatal("expected re-select to pause")
	}
	if playing := player.Select(recording); !playing {
		t.Fatal("expected second re-select to resume")
	}
}

func TestToggleWithoutSelection(t *testing.T) {
	player := playback.NewPlayer(nil)
	if _, ok := player.Toggle(); ok {
		t.Fatal("expected toggle to report no selection")
	}
}

func TestStopClearsSlot(t *testing.T) {
	player := playback.NewPlayer(nil)
	player.Select(archive.Recording{ID: "a"})
	player.Stop()

	if _, _, ok := player.Current(); ok {
		t.Fatal("expected empty slot after stop")
	}
}

func TestDropOnlyClearsMatchingRecording(t *testing.T) {
	player := playback.NewPlayer(nil)
	player.Select(archive.Recording{ID: "a"})

	player.Drop("b")
	if _, _, ok := player.Current(); !ok {
		t.Fatal("expected unrelated drop to keep selection")
	}

	player.Drop("a")
	if _, _, ok := player.Current(); ok {
		t.Fatal("expected matching drop to clear selection")
	}
}
