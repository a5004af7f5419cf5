package ads

import (
	"math/rand"
	"sync"
	"time"
)

const (
	DefaultProbability = 0.3
	DefaultOfferDelay  = 5 * time.Second
)

// Trigger decides whether a session is offered a video ad. The random source is
// injected so the decision can be reproduced.
type Trigger struct {
	Probability float64
	Delay       time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewTrigger(probability float64, delay time.Duration, rnd *rand.Rand) *Trigger {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if delay < 0 {
		delay = DefaultOfferDelay
	}
	return &Trigger{Probability: probability, Delay: delay, rnd: rnd}
}

// Roll reports whether this roll wins an ad.
func (t *Trigger) Roll() bool {
	if t.Probability <= 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rnd.Float64() < t.Probability
}
