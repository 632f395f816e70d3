package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lepa/internal/daemon"
	"lepa/internal/testsupport"
)

type cliEnv struct {
	t          *testing.T
	configPath string
	server     string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close daemon: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := d.Start(ctx); err != nil {
		t.Fatalf("start daemon: %v", err)
	}

	configPath := filepath.Join(t.TempDir(), "lepa.toml")
	contents := fmt.Sprintf(`[paths]
data_dir = %q
blob_dir = %q
log_dir = %q
api_bind = %q

[access]
viewer_key = %q
admin_key = %q
`,
		cfg.Paths.DataDir, cfg.Paths.BlobDir, cfg.Paths.LogDir, d.Addr(),
		testsupport.ViewerKey, testsupport.AdminKey)
	if err := os.WriteFile(configPath, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliEnv{t: t, configPath: configPath, server: d.Addr()}
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()

	full := append([]string{"--config", e.configPath, "--server", e.server}, args...)
	cmd := newRootCommand()
	cmd.SetArgs(full)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("lepa %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestLoginRequiredBeforeListing(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run("recordings", "list"); err == nil {
		t.Fatal("expected listing to fail before login")
	}

	out := env.mustRun("login", testsupport.ViewerKey)
	if !strings.Contains(out, "viewer") {
		t.Fatalf("unexpected login output: %s", out)
	}

	out = env.mustRun("recordings", "list")
	if !strings.Contains(out, "No recordings found") {
		t.Fatalf("unexpected list output: %s", out)
	}
}

func TestLoginRejectsUnknownKey(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run("login", "not-a-key"); err == nil {
		t.Fatal("expected login with unknown key to fail")
	}
}

func TestRecordingLifecycleThroughCLI(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", testsupport.AdminKey)

	out := env.mustRun("recordings", "add",
		"--title", "Igal Igal",
		"--performer", "Semporna Heritage Group",
		"--genre", "Dance")
	if !strings.Contains(out, "Recording added") {
		t.Fatalf("unexpected add output: %s", out)
	}

	out = env.mustRun("recordings", "list", "--search", "dance")
	if !strings.Contains(out, "Igal Igal") {
		t.Fatalf("search missed the recording: %s", out)
	}
	out = env.mustRun("recordings", "list", "--search", "nosuchthing")
	if !strings.Contains(out, "No recordings found") {
		t.Fatalf("expected empty search result: %s", out)
	}
}

func TestRecordingAddUploadsAudio(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", testsupport.AdminKey)

	audioPath := filepath.Join(t.TempDir(), "igal igal.mp3")
	if err := os.WriteFile(audioPath, []byte("audio-bytes"), 0o644); err != nil {
		t.Fatalf("write audio fixture: %v", err)
	}

	env.mustRun("recordings", "add", "--title", "Igal Igal", "--audio", audioPath)

	out := env.mustRun("recordings", "list", "--json")
	if !strings.Contains(out, "/blobs/music/") || !strings.Contains(out, "igal-igal.mp3") {
		t.Fatalf("expected uploaded audio URL in listing: %s", out)
	}
}

func TestStoryLifecycleThroughCLI(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", testsupport.AdminKey)

	env.mustRun("stories", "add",
		"--title", "The Lepa Festival",
		"--author", "Dayang Mariam",
		"--excerpt", "Boats gather at Semporna.")

	out := env.mustRun("stories", "list")
	if !strings.Contains(out, "The Lepa Festival") {
		t.Fatalf("story missing from list: %s", out)
	}

	out = env.mustRun("stories", "list", "--json")
	var id string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, `"id": "`) {
			id = strings.TrimSuffix(strings.TrimPrefix(line, `"id": "`), `",`)
			break
		}
	}
	if id == "" {
		t.Fatalf("could not extract story id from: %s", out)
	}

	env.mustRun("stories", "remove", id)
	out = env.mustRun("stories", "list")
	if !strings.Contains(out, "No stories found") {
		t.Fatalf("expected empty story list: %s", out)
	}
}

func TestPlaybackCommands(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", testsupport.AdminKey)
	env.mustRun("recordings", "add", "--title", "Leleng", "--performer", "Binti Asmah")

	out := env.mustRun("recordings", "list", "--json")
	var id string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, `"id": "`) {
			id = strings.TrimSuffix(strings.TrimPrefix(line, `"id": "`), `",`)
			break
		}
	}
	if id == "" {
		t.Fatalf("could not extract recording id from: %s", out)
	}

	out = env.mustRun("play", id)
	if !strings.Contains(out, "playing") {
		t.Fatalf("unexpected play output: %s", out)
	}
	out = env.mustRun("pause")
	if !strings.Contains(out, "paused") {
		t.Fatalf("unexpected pause output: %s", out)
	}
	out = env.mustRun("stop")
	if !strings.Contains(out, "Playback stopped") {
		t.Fatalf("unexpected stop output: %s", out)
	}
}

func TestStatusCommand(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", testsupport.ViewerKey)

	out := env.mustRun("status")
	if !strings.Contains(out, "Running") || !strings.Contains(out, "yes") {
		t.Fatalf("unexpected status output: %s", out)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	cmd := newRootCommand()
	cmd.SetArgs([]string{"config", "init", "--path", target})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config init: %v\n%s", err, out.String())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample config: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatalf("sample config missing sections: %s", data)
	}
}
