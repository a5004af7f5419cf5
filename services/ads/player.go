package ads

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTick is how often a playing ad re-reads the clock.
const DefaultTick = 250 * time.Millisecond

// player drives a VideoAd from a clock ticker until the ad closes or the player is stopped.
type player struct {
	clock   clockwork.Clock
	started time.Time
	ticker  clockwork.Ticker

	mu sync.Mutex
	ad *VideoAd

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func startPlayer(clock clockwork.Clock, ad *VideoAd, tick time.Duration) *player {
	if tick <= 0 {
		tick = DefaultTick
	}
	p := &player{
		clock:   clock,
		started: clock.Now(),
		ticker:  clock.NewTicker(tick),
		ad:      ad,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *player) run() {
	defer close(p.done)
	defer p.ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-p.ticker.Chan():
			p.mu.Lock()
			phase := p.ad.Advance(p.clock.Since(p.started))
			p.mu.Unlock()
			if phase == VideoClosed {
				return
			}
		}
	}
}

func (p *player) state() VideoAdState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ad.State()
}

func (p *player) skip() error {
	p.mu.Lock()
	// Catch up first so a skip right at the threshold is honoured between ticks.
	p.ad.Advance(p.clock.Since(p.started))
	err := p.ad.Skip()
	p.mu.Unlock()
	if err == nil {
		p.halt()
	}
	return err
}

func (p *player) close(reason CloseReason) {
	p.mu.Lock()
	p.ad.Close(reason)
	p.mu.Unlock()
	p.halt()
}

// halt stops the ticker goroutine and waits for it to exit.
func (p *player) halt() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}
