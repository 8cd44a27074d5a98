// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Delivery configuration defaults.
const (
	MaxAttempts    = 5
	InitialBackoff = 30 * time.Second
	MaxBackoff     = 30 * time.Minute
	RequestTimeout = 15 * time.Second
	UserAgent      = "speakercms-webhook/1.0"

	maxResponseLen = 10 * 1024
)

var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	},
}

// result describes one delivery attempt.
type result struct {
	statusCode int
	err        error
	retry      bool
}

// deliver posts dl until it succeeds, fails permanently, runs out of
// attempts or the dispatcher stops.
func (d *Dispatcher) deliver(ctx context.Context, dl delivery) {
	for attempt := 1; ; attempt++ {
		res := d.attempt(ctx, dl)
		if res.err == nil {
			d.logger.Info("webhook delivered", "event", dl.event, "delivery_id", dl.id,
				"status", res.statusCode, "attempt", attempt)
			return
		}

		if !res.retry || attempt >= d.cfg.MaxAttempts {
			d.logger.Error("webhook delivery failed", "event", dl.event, "delivery_id", dl.id,
				"status", res.statusCode, "attempt", attempt, "error", res.err)
			return
		}

		wait := backoff(d.cfg.InitialBackoff, d.cfg.MaxBackoff, attempt)
		d.logger.Warn("webhook delivery will be retried", "event", dl.event, "delivery_id", dl.id,
			"attempt", attempt, "retry_in", wait, "error", res.err)

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

func (d *Dispatcher) attempt(ctx context.Context, dl delivery) result {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.URL, bytes.NewReader(dl.payload))
	if err != nil {
		return result{err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Webhook-Event", dl.event)
	req.Header.Set("X-Webhook-Delivery-ID", dl.id)
	if d.cfg.Secret != "" {
		req.Header.Set("X-Webhook-Signature", GenerateSignature(dl.payload, d.cfg.Secret))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return result{err: fmt.Errorf("request failed: %w", err), retry: ctx.Err() == nil}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseLen))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return result{statusCode: resp.StatusCode}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Client errors are permanent except timeouts and throttling.
		return result{
			statusCode: resp.StatusCode,
			err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			retry:      resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusTooManyRequests,
		}
	default:
		return result{
			statusCode: resp.StatusCode,
			err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			retry:      true,
		}
	}
}

// backoff doubles initial for every attempt after the first, capped at limit.
func backoff(initial, limit time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	wait := initial
	for i := 1; i < attempt; i++ {
		wait *= 2
		if wait >= limit {
			return limit
		}
	}
	if wait > limit {
		return limit
	}
	return wait
}
