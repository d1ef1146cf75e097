package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/service"

	"github.com/pkg/errors"
)

const localPublishTimeout = 30 * time.Second

// localHTTPPublisher posts queue events to a local HTTP endpoint using the
// same push envelope Google Pub/Sub delivers, so a development subscriber
// handles both transports identically.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// pushEnvelope is the wire format of a Pub/Sub push delivery.
type pushEnvelope struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewLocalHTTPPublisher creates a publisher for local development.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localPublishTimeout},
		logger:     logger,
	}
}

func (p *localHTTPPublisher) PublishQueueEvent(ctx context.Context, event *service.QueueEvent) error {
	body, err := buildPushEnvelope(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("subscriber returned non-success status: %d", resp.StatusCode)
	}

	p.logger.Debug("queue event published",
		slog.String("endpoint", p.endpoint),
		slog.String("event_id", event.EventID),
		slog.String("action", event.Action),
	)

	return nil
}

// Close is a no-op; the HTTP client holds no resources worth releasing.
func (p *localHTTPPublisher) Close() error {
	return nil
}

func buildPushEnvelope(event *service.QueueEvent) ([]byte, error) {
	eventData, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var envelope pushEnvelope
	envelope.Subscription = "projects/local/subscriptions/queue-events-sub"
	envelope.Message.Data = base64.StdEncoding.EncodeToString(eventData)
	envelope.Message.MessageID = event.EventID
	envelope.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)
	envelope.Message.Attributes = eventAttributes(event)

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return body, nil
}

// eventAttributes builds the message attributes used for subscriber-side
// filtering and tracing.
func eventAttributes(event *service.QueueEvent) map[string]string {
	attributes := map[string]string{
		"event_id": event.EventID,
		"hub_id":   event.HubID.String(),
		"action":   event.Action,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}
