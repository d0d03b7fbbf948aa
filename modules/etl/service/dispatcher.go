package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/seeg/recruiting-platform/internal/config"
	"github.com/seeg/recruiting-platform/internal/platform/logger"
	"github.com/seeg/recruiting-platform/internal/platform/webhook"
	"github.com/seeg/recruiting-platform/modules/etl/ports"
)

const (
	dispatchMaxAttempts  = 3
	dispatchInitialDelay = 250 * time.Millisecond
	dispatchMaxDelay     = 4 * time.Second
	dispatchTimeout      = 5 * time.Second
	queueCapacity        = 256
)

// Dispatcher is a bounded-retry internal HTTP client that hands a committed
// application id to the projection webhook endpoint without ever blocking
// the caller.
type Dispatcher struct {
	jobs      chan string
	client    *http.Client
	cfg       config.WebhookConfig
	logger    *logger.Logger
	reconcile ports.ReconciliationRepository
}

// NewDispatcher creates a Dispatcher and starts its worker pool, sized by
// GOMAXPROCS capped at a small constant.
func NewDispatcher(cfg config.WebhookConfig, reconcile ports.ReconciliationRepository, log *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		jobs:      make(chan string, queueCapacity),
		client:    &http.Client{Timeout: dispatchTimeout},
		cfg:       cfg,
		logger:    log,
		reconcile: reconcile,
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > 4 {
		workers = 4
	}
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

var _ ports.Dispatcher = (*Dispatcher)(nil)

// Enqueue hands applicationID to the worker pool. It never blocks: if the
// queue is full the entry goes straight to the reconciliation log instead
// of stalling the request goroutine.
func (d *Dispatcher) Enqueue(applicationID string) {
	select {
	case d.jobs <- applicationID:
	default:
		if err := d.reconcile.Create(context.Background(), applicationID, "dispatch queue full"); err != nil {
			d.logger.WithError("DISPATCH_QUEUE_FULL").Error("failed to record reconciliation entry",
				zap.String("application_id", applicationID), zap.Error(err))
		}
	}
}

func (d *Dispatcher) worker() {
	for applicationID := range d.jobs {
		d.dispatch(applicationID)
	}
}

// dispatch runs the bounded-retry send for one application. It uses a
// detached context carrying only the id and a scoped logger — never the
// originating request's lifetime.
func (d *Dispatcher) dispatch(applicationID string) {
	log := d.logger.WithAction("dispatch_application_submitted")
	ctx, cancel := context.WithTimeout(context.Background(), dispatchMaxAttempts*dispatchTimeout)
	defer cancel()

	delay := dispatchInitialDelay
	var lastErr error
	for attempt := 1; attempt <= dispatchMaxAttempts; attempt++ {
		if err := d.post(ctx, applicationID); err != nil {
			lastErr = err
			log.Warn("webhook attempt failed",
				zap.String("application_id", applicationID), zap.Int("attempt", attempt), zap.Error(err))
			if attempt < dispatchMaxAttempts {
				time.Sleep(delay)
				delay *= 2
				if delay > dispatchMaxDelay {
					delay = dispatchMaxDelay
				}
			}
			continue
		}
		return
	}

	if err := d.reconcile.Create(context.Background(), applicationID, lastErr.Error()); err != nil {
		log.Error("failed to record reconciliation entry after exhausting retries",
			zap.String("application_id", applicationID), zap.Error(err))
	}
}

func (d *Dispatcher) post(ctx context.Context, applicationID string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"application_id": applicationID,
		"event":          "application.submitted",
		"ts":             time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	url := d.cfg.APIBaseURL + "/api/v1/webhooks/application-submitted"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.HeaderName, d.cfg.Secret)

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
