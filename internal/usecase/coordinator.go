// Package usecase orchestrates one payload's decode -> dispatch -> present
// pipeline under a hard deadline.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imasse-dev/browser-ios/internal/decoder"
	"github.com/imasse-dev/browser-ios/internal/domain"
	"github.com/imasse-dev/browser-ios/internal/logger"
	"github.com/imasse-dev/browser-ios/internal/notify"
	"github.com/imasse-dev/browser-ios/internal/profile"
)

// Coordinator runs one decode attempt per payload, races it against the
// deadline, and guarantees exactly one presentation per payload.
type Coordinator struct {
	decoder     decoder.Decoder
	openProfile func() (profile.Profile, error)
	sink        notify.Sink
	mode        domain.NotifyMode
	deadline    time.Duration
	log         *logger.Logger
}

func New(
	dec decoder.Decoder,
	openProfile func() (profile.Profile, error),
	sink notify.Sink,
	mode domain.NotifyMode,
	deadline time.Duration,
	log *logger.Logger,
) *Coordinator {
	return &Coordinator{
		decoder:     dec,
		openProfile: openProfile,
		sink:        sink,
		mode:        mode,
		deadline:    deadline,
		log:         log.WithComponent("delivery"),
	}
}

type decodeResult struct {
	event domain.PushEvent
	err   error
}

// Handle processes one payload end to end. Cancelling ctx is the host's
// "time will expire" signal and is treated the same as the deadline elapsing.
// Whatever happens, the presenter fires exactly once and the profile is shut
// down before Handle returns.
func (c *Coordinator) Handle(ctx context.Context, payload map[string]string) {
	presenter := notify.NewPresenter(c.sink, c.mode, c.log)

	// Presentation must still happen after the deadline fires, so it runs on
	// a context detached from the expiry signal.
	presentCtx := context.WithoutCancel(ctx)

	prof, err := c.openProfile()
	if err != nil {
		c.log.Warn("profile unavailable, skipping decode", slog.String("error", err.Error()))
		presenter.Show(presentCtx, nil, fmt.Errorf("%w: %v", domain.ErrNoProfile, err))
		return
	}
	defer func() {
		if err := prof.Shutdown(); err != nil {
			c.log.Warn("profile shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.deadline)
	defer cancel()

	// Buffered so the losing side of the race never blocks or leaks.
	results := make(chan decodeResult, 1)
	go func() {
		event, err := c.decoder.Decode(ctx, payload, prof)
		results <- decodeResult{event: event, err: err}
	}()

	var res decodeResult
	select {
	case res = <-results:
	case <-ctx.Done():
		res = decodeResult{err: domain.ErrDecodeTimeout}
	}

	if err := prof.RecordActivity(); err != nil {
		c.log.Warn("record activity failed", slog.String("error", err.Error()))
	}

	presenter.Show(presentCtx, res.event, res.err)
}
