// Package notify owns the single outgoing notification per payload: it maps a
// decode outcome to exactly one presented notification.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/imasse-dev/browser-ios/internal/domain"
	"github.com/imasse-dev/browser-ios/internal/logger"
)

// Presenter turns one decode outcome into one presented notification. It owns
// the content buffer and a one-shot gate: present runs at most once, and Show
// guarantees it runs at least once. One Presenter serves one payload.
type Presenter struct {
	sink Sink
	mode domain.NotifyMode
	log  *logger.Logger

	content   *domain.NotificationContent
	delivered atomic.Bool
}

func NewPresenter(sink Sink, mode domain.NotifyMode, log *logger.Logger) *Presenter {
	return &Presenter{
		sink:    sink,
		mode:    mode,
		log:     log.WithComponent("presenter"),
		content: &domain.NotificationContent{},
	}
}

// Delivered reports whether the one permitted hand-off has happened.
func (p *Presenter) Delivered() bool {
	return p.delivered.Load()
}

// Show maps a decode outcome to a presented notification. Exactly one of
// event/decodeErr matters: an error always wins and routes to the fallback.
// If no dispatch rule presents, the post-check fallback fires, so every call
// ends with Delivered() == true.
func (p *Presenter) Show(ctx context.Context, event domain.PushEvent, decodeErr error) {
	if decodeErr != nil {
		kind := domain.ClassifyDecodeError(decodeErr)
		p.log.Warn("decode failed",
			slog.String("kind", string(kind)),
			slog.String("error", decodeErr.Error()))
		p.fallback(ctx, fmt.Sprintf("%s: %v", kind, decodeErr))
		return
	}

	var declined string
	switch e := event.(type) {
	case domain.CommandReceived:
		declined = p.showTab(ctx, e)
	case domain.DeviceConnected:
		p.present(ctx, titleDeviceConnected, fmt.Sprintf(bodyDeviceConnected, e.DeviceName), nil)
	case domain.DeviceDisconnected:
		if e.DeviceName != nil {
			p.present(ctx, titleDeviceDisconnected, fmt.Sprintf(bodyDeviceDisconnected, *e.DeviceName), nil)
		} else {
			p.present(ctx, titleDeviceDisconnected, bodyUnknownDeviceGone, nil)
		}
	case domain.ThisDeviceDisconnected:
		p.present(ctx, titleThisDeviceGone, bodyThisDeviceGone, nil)
	case domain.AccountVerified:
		body := bodyAccountVerified
		if p.mode == domain.ModeDiagnostic {
			body = bodyAccountVerifiedDebug
		}
		p.present(ctx, titleAccountVerified, body, nil)
	case domain.Unrecognized:
		declined = e.Description
	case nil:
		declined = "no event decoded"
	}

	// Post-check: a rule above may have declined (malformed tab command,
	// unrecognized event). The payload still owes the user one notification.
	if !p.delivered.Load() {
		if declined == "" {
			declined = "nothing to present"
		}
		p.fallback(ctx, declined)
	}
}

// showTab validates and presents a tab-arrival command. It returns a
// non-empty decline reason instead of presenting when the command is not a
// well-formed web page, leaving the post-check fallback to fire.
func (p *Presenter) showTab(ctx context.Context, e domain.CommandReceived) string {
	rawURL := e.Tab["url"]
	title := e.Tab["title"]
	if rawURL == "" || title == "" {
		return "invalid tab command: missing url or title"
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Sprintf("invalid tab command: not a web page url: %q", rawURL)
	}

	var deviceName *string
	if n := e.Tab["deviceName"]; n != "" {
		deviceName = &n
	}
	display := displayURL(u)
	attachment := domain.TabAttachment{
		Title:      title,
		URL:        u.String(),
		DisplayURL: display,
		DeviceName: deviceName,
	}
	p.present(ctx, titleTabArrived, display, []domain.TabAttachment{attachment})
	return ""
}

func (p *Presenter) fallback(ctx context.Context, reason string) {
	body := bodyFallbackProduction
	if p.mode == domain.ModeDiagnostic {
		body = reason
	}
	p.present(ctx, titleFallback, body, nil)
}

// present is the single choke point: the only place delivered flips true and
// the only call site of the sink. A second call is a no-op.
func (p *Presenter) present(ctx context.Context, title, body string, attachments []domain.TabAttachment) {
	if !p.delivered.CompareAndSwap(false, true) {
		return
	}
	p.content.Title = title
	p.content.Body = body
	p.content.Attachments = attachments
	if err := p.sink.Deliver(ctx, p.content); err != nil {
		p.log.Warn("notification hand-off failed", slog.String("error", err.Error()))
	}
}

// displayURL is the user-facing form of a web page URL: scheme stripped,
// leading www. dropped, bare trailing slash trimmed.
func displayURL(u *url.URL) string {
	host := strings.TrimPrefix(u.Host, "www.")
	path := u.Path
	if path == "/" {
		path = ""
	}
	return host + path
}
