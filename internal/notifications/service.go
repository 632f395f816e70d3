package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lepa/internal/config"
)

const userAgent = "Lepa/0.1.0"

// Service defines the notification surface exposed to archive components.
type Service interface {
	NotifyRecordingAdded(ctx context.Context, title, performer string) error
	NotifyRecordingRemoved(ctx context.Context, title string) error
	NotifyStoryAdded(ctx context.Context, title, author string) error
	NotifyStoryRemoved(ctx context.Context, title string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:   topic,
		client:     &http.Client{Timeout: timeout},
		recordings: cfg.Notifications.Recordings,
		stories:    cfg.Notifications.Stories,
		errors:     cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint   string
	client     *http.Client
	recordings bool
	stories    bool
	errors     bool
}

func (n *ntfyService) NotifyRecordingAdded(ctx context.Context, title, performer string) error {
	if !n.recordings {
		return nil
	}
	title = strings.TrimSpace(title)
	message := fmt.Sprintf("Recording added: %s", title)
	if performer = strings.TrimSpace(performer); performer != "" {
		message = fmt.Sprintf("Recording added: %s (%s)", title, performer)
	}
	data := payload{
		title:   "Lepa - Recording Added",
		message: message,
		tags:    []string{"lepa", "recording", "added"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRecordingRemoved(ctx context.Context, title string) error {
	if !n.recordings {
		return nil
	}
	data := payload{
		title:   "Lepa - Recording Removed",
		message: fmt.Sprintf("Recording removed: %s", strings.TrimSpace(title)),
		tags:    []string{"lepa", "recording", "removed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyStoryAdded(ctx context.Context, title, author string) error {
	if !n.stories {
		return nil
	}
	title = strings.TrimSpace(title)
	message := fmt.Sprintf("Story published: %s", title)
	if author = strings.TrimSpace(author); author != "" {
		message = fmt.Sprintf("Story published: %s by %s", title, author)
	}
	data := payload{
		title:   "Lepa - Story Published",
		message: message,
		tags:    []string{"lepa", "story", "added"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyStoryRemoved(ctx context.Context, title string) error {
	if !n.stories {
		return nil
	}
	data := payload{
		title:   "Lepa - Story Removed",
		message: fmt.Sprintf("Story removed: %s", strings.TrimSpace(title)),
		tags:    []string{"lepa", "story", "removed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errors {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Lepa - Error",
		message:  builder.String(),
		tags:     []string{"lepa", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Lepa - Test",
		message:  "Notification system test",
		tags:     []string{"lepa", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyRecordingAdded(context.Context, string, string) error { return nil }
func (noopService) NotifyRecordingRemoved(context.Context, string) error       { return nil }
func (noopService) NotifyStoryAdded(context.Context, string, string) error     { return nil }
func (noopService) NotifyStoryRemoved(context.Context, string) error           { return nil }
func (noopService) NotifyError(context.Context, error, string) error           { return nil }
func (noopService) TestNotification(context.Context) error                     { return nil }
