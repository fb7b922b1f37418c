package client

import (
	"sync"
	"time"
)

// DefaultPollInterval is the default auto-refresh interval
const DefaultPollInterval = 30 * time.Second

// Poller invokes a callback on a fixed interval. The first run belongs
// to the caller; the poller only handles subsequent ticks.
type Poller struct {
	mu       sync.Mutex
	interval time.Duration
	callback func()
	stop     chan struct{}
	running  bool
}

// NewPoller creates a poller for callback. A non-positive interval
// picks the default.
func NewPoller(interval time.Duration, callback func()) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		interval: interval,
		callback: callback,
	}
}

// Start begins ticking. A no-op if already running.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	p.running = true
	p.stop = make(chan struct{})

	go p.run(p.stop)
}

// Stop halts ticking. Safe to call when not running.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	p.running = false
	close(p.stop)
}

// Restart tears down the current ticker and starts a fresh one,
// optionally with a new callback. Used when the polled dependencies
// change.
func (p *Poller) Restart(callback func()) {
	p.Stop()

	p.mu.Lock()
	if callback != nil {
		p.callback = callback
	}
	p.mu.Unlock()

	p.Start()
}

func (p *Poller) run(stop chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.mu.Lock()
			callback := p.callback
			p.mu.Unlock()
			callback()
		case <-stop:
			return
		}
	}
}
