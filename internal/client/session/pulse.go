package session

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"
)

// PrayerPulse is a local "prayers around the world" counter. It is not
// synced with the server.
type PrayerPulse struct {
	count atomic.Int64
	done  chan struct{}
}

// Defaults used by the CLI.
const (
	PulseStart    = 140283
	PulseInterval = 5 * time.Second
)

// StartPrayerPulse adds between 0 and 2 to the counter every interval until
// ctx is done.
func StartPrayerPulse(ctx context.Context, start int64, interval time.Duration) *PrayerPulse {
	p := &PrayerPulse{done: make(chan struct{})}
	p.count.Store(start)

	go func() {
		defer close(p.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.count.Add(rand.Int64N(3))
			case <-ctx.Done():
				return
			}
		}
	}()
	return p
}

func (p *PrayerPulse) Count() int64 { return p.count.Load() }

// Done is closed once the pulse has stopped.
func (p *PrayerPulse) Done() <-chan struct{} { return p.done }
