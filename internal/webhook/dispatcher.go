// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// Config holds dispatcher configuration.
type Config struct {
	URL     string // endpoint; empty disables the dispatcher
	Secret  string // HMAC key for X-Webhook-Signature
	Workers int

	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// Client overrides the default HTTP client.
	Client *http.Client
}

// DefaultConfig returns default dispatcher configuration for url.
func DefaultConfig(url, secret string) Config {
	return Config{
		URL:            url,
		Secret:         secret,
		Workers:        2,
		MaxAttempts:    MaxAttempts,
		InitialBackoff: InitialBackoff,
		MaxBackoff:     MaxBackoff,
	}
}

const queueSize = 100

// delivery is one queued event.
type delivery struct {
	event   string
	id      string
	payload []byte
}

// Dispatcher delivers events to a single endpoint. A nil *Dispatcher is
// valid and drops every event.
type Dispatcher struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
	queue  chan delivery
	done   chan struct{}
	wg     sync.WaitGroup

	mu      sync.Mutex
	running bool
}

// NewDispatcher creates a new webhook dispatcher. It returns nil when no
// URL is configured.
func NewDispatcher(cfg Config, logger *slog.Logger) *Dispatcher {
	if cfg.URL == "" {
		return nil
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = MaxBackoff
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := cfg.Client
	if client == nil {
		client = httpClient
	}

	return &Dispatcher{
		cfg:    cfg,
		client: client,
		logger: logger,
		queue:  make(chan delivery, queueSize),
		done:   make(chan struct{}),
	}
}

// Start launches the delivery workers.
func (d *Dispatcher) Start() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true

	d.logger.Info("starting webhook dispatcher", "workers", d.cfg.Workers)
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop signals the workers and waits for them. Queued deliveries that have
// not started are dropped.
func (d *Dispatcher) Stop() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	close(d.done)
	d.wg.Wait()
	d.logger.Info("webhook dispatcher stopped")
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-d.done
		cancel()
	}()

	for {
		select {
		case <-d.done:
			return
		case dl := <-d.queue:
			d.logger.Debug("webhook worker processing delivery", "worker_id", id, "event", dl.event, "delivery_id", dl.id)
			d.deliver(ctx, dl)
		}
	}
}

// Dispatch queues an event. It never blocks and reports whether the event
// was queued.
func (d *Dispatcher) Dispatch(eventType string, data any) bool {
	if d == nil {
		return false
	}

	ev := NewEvent(eventType, data)
	payload, err := json.Marshal(ev)
	if err != nil {
		d.logger.Error("failed to marshal webhook payload", "event", eventType, "error", err)
		return false
	}

	select {
	case d.queue <- delivery{event: eventType, id: ev.ID, payload: payload}:
		return true
	default:
		d.logger.Warn("webhook queue full, dropping event", "event", eventType, "delivery_id", ev.ID)
		return false
	}
}

// GenerateSignature returns the hex HMAC-SHA256 of payload.
func GenerateSignature(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature produced by GenerateSignature.
func VerifySignature(payload []byte, signature, secret string) bool {
	return hmac.Equal([]byte(signature), []byte(GenerateSignature(payload, secret)))
}
