package message

import (
	"context"
	"time"

	"sealbox/internal/domain"
)

// DefaultPollInterval is how often the background poller drains the mailbox.
const DefaultPollInterval = 10 * time.Second

// Poller periodically pulls pending mail. Each tick runs to completion or
// failure before the next fires; cancelling the context stops the loop.
type Poller struct {
	Messages   *Service
	Passphrase string
	Interval   time.Duration
	OnMail     func([]domain.MailEntry)
	OnError    func(error)
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		entries, err := p.Messages.Pull(ctx, p.Passphrase)
		if err != nil {
			if ctx.Err() == nil && p.OnError != nil {
				p.OnError(err)
			}
			continue
		}
		if len(entries) > 0 && p.OnMail != nil {
			p.OnMail(entries)
		}
	}
}
