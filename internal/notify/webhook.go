// Package notify forwards newly created hazard reports to an external
// workflow endpoint.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yukikurage/ocean-hazard-api/internal/models"
	"golang.org/x/sync/errgroup"
)

// maxInFlight bounds concurrent deliveries. Reports beyond it are dropped.
const maxInFlight = 32

// WebhookNotifier POSTs each new report as JSON. Delivery is fire and
// forget: failures are logged and never reach the caller.
type WebhookNotifier struct {
	url     string
	client  *http.Client
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	group  errgroup.Group
}

// NewWebhookNotifier creates a notifier for url. A zero timeout defaults to
// five seconds.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	n := &WebhookNotifier{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}
	n.group.SetLimit(maxInFlight)
	return n
}

// NotifyReportCreated schedules delivery of report and returns immediately.
func (n *WebhookNotifier) NotifyReportCreated(report models.HazardReport) {
	if n.ctx.Err() != nil {
		return
	}
	started := n.group.TryGo(func() error {
		if err := n.deliver(report); err != nil {
			log.Warn().Err(err).Str("report_id", report.ID).Msg("Webhook delivery failed")
		}
		return nil
	})
	if !started {
		log.Warn().Str("report_id", report.ID).Msg("Webhook backlog full, dropping notification")
	}
}

func (n *WebhookNotifier) deliver(report models.HazardReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	ctx, cancel := context.WithTimeout(n.ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	log.Debug().Str("report_id", report.ID).Int("status", resp.StatusCode).Msg("Webhook delivered")
	return nil
}

// Close waits for in-flight deliveries until ctx is done, then aborts the
// remaining ones.
func (n *WebhookNotifier) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		_ = n.group.Wait()
		close(done)
	}()

	defer n.client.CloseIdleConnections()

	select {
	case <-done:
		n.cancel()
		return nil
	case <-ctx.Done():
		n.cancel()
		<-done
		return ctx.Err()
	}
}
