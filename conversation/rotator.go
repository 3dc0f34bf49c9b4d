package conversation

import (
	"sync"
	"time"
)

// DefaultRotationInterval is how long each suggested prompt stays current.
const DefaultRotationInterval = 4 * time.Second

// DefaultPrompts are the suggested questions cycled through the input
// placeholder.
var DefaultPrompts = []string{
	"Can a landlord evict a tenant without a court order?",
	"What is the economic loss doctrine in Utah contract law?",
	"What is the difference between Chapter 7 and Chapter 13 bankruptcy?",
}

// PromptRotator cycles a fixed list of suggested prompts on a timer.
// It is independent of any Conversation; the UI reads Current to fill the
// input placeholder. All methods are safe for concurrent use.
type PromptRotator struct {
	prompts  []string
	interval time.Duration

	mu      sync.Mutex
	index   int
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewPromptRotator creates a rotator. Nil prompts fall back to
// DefaultPrompts; a non-positive interval falls back to
// DefaultRotationInterval.
func NewPromptRotator(prompts []string, interval time.Duration) *PromptRotator {
	if len(prompts) == 0 {
		prompts = DefaultPrompts
	}
	if interval <= 0 {
		interval = DefaultRotationInterval
	}
	return &PromptRotator{prompts: prompts, interval: interval}
}

// Current returns the prompt under the cursor.
func (r *PromptRotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompts[r.index]
}

// Start begins rotation. Calling Start on a running rotator is a no-op.
func (r *PromptRotator) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stopCh = make(chan struct{})
	r.doneCh = make(chan struct{})
	go r.run(r.stopCh, r.doneCh)
}

// Stop halts rotation and waits for the rotation goroutine to exit, so the
// cursor never moves after Stop returns. Stopping a stopped rotator is a
// no-op; the rotator can be started again afterwards.
func (r *PromptRotator) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	stopCh, doneCh := r.stopCh, r.doneCh
	r.mu.Unlock()

	close(stopCh)
	<-doneCh
}

func (r *PromptRotator) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			r.mu.Lock()
			r.index = (r.index + 1) % len(r.prompts)
			r.mu.Unlock()
		}
	}
}
