package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"slate/internal/config"
)

const userAgent = "Slate/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	NotifyExportStarted(ctx context.Context, count int) error
	NotifyShotDelivered(ctx context.Context, shotLabel string, frames int) error
	NotifyShotFailed(ctx context.Context, shotLabel, reason string) error
	NotifyExportCompleted(ctx context.Context, delivered, failed int, duration time.Duration) error
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

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyExportStarted(ctx context.Context, count int) error {
	data := payload{
		title:   "Slate - Export Started",
		message: fmt.Sprintf("Started exporting %d shots", count),
		tags:    []string{"slate", "export", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyShotDelivered(ctx context.Context, shotLabel string, frames int) error {
	shotLabel = strings.TrimSpace(shotLabel)
	data := payload{
		title:   "Slate - Shot Delivered",
		message: fmt.Sprintf("Delivered %s (%d frames)", shotLabel, frames),
		tags:    []string{"slate", "shot", "delivered"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyShotFailed(ctx context.Context, shotLabel, reason string) error {
	shotLabel = strings.TrimSpace(shotLabel)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unknown"
	}
	data := payload{
		title:    "Slate - Shot Failed",
		message:  fmt.Sprintf("Failed to deliver %s: %s", shotLabel, reason),
		tags:     []string{"slate", "shot", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExportCompleted(ctx context.Context, delivered, failed int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title string
	var message string
	if failed == 0 {
		title = "Slate - Export Complete"
		message = fmt.Sprintf("Export complete: %d shots delivered in %s", delivered, durationText)
	} else {
		title = "Slate - Export Complete (with errors)"
		message = fmt.Sprintf("Export complete: %d delivered, %d failed in %s", delivered, failed, durationText)
	}

	data := payload{
		title:    title,
		message:  message,
		tags:     []string{"slate", "export", "completed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
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
		title:    "Slate - Error",
		message:  builder.String(),
		tags:     []string{"slate", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Slate - Test",
		message:  "Notification system test",
		tags:     []string{"slate", "test"},
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

func (noopService) NotifyExportStarted(context.Context, int) error                       { return nil }
func (noopService) NotifyShotDelivered(context.Context, string, int) error               { return nil }
func (noopService) NotifyShotFailed(context.Context, string, string) error               { return nil }
func (noopService) NotifyExportCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) NotifyError(context.Context, error, string) error                     { return nil }
func (noopService) TestNotification(context.Context) error                               { return nil }
