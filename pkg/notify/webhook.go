package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// HTTPClient permite mockar o cliente HTTP nos testes.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// WebhookSink publica a mensagem em um webhook de chat.
type WebhookSink struct {
	Resolver URLResolver
	Client   HTTPClient
}

// NewWebhookSink usa um http.Client com o timeout informado.
func NewWebhookSink(resolver URLResolver, timeout time.Duration) *WebhookSink {
	return &WebhookSink{
		Resolver: resolver,
		Client:   &http.Client{Timeout: timeout},
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

func (w *WebhookSink) Notify(ctx context.Context, msg OrderMessage) error {
	url, err := w.Resolver.ResolveURL(ctx)
	if err != nil {
		return err
	}
	if IsPlaceholder(url) {
		log.Ctx(ctx).Debug().Str("order_id", msg.OrderID).Msg("webhook not configured, notification skipped")
		return nil
	}

	body, err := json.Marshal(webhookPayload{Content: msg.Text()})
	if err != nil {
		return fmt.Errorf("notify: encode webhook body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "bar-order-service/1.0")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("notify: webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify: webhook returned %d: %s", resp.StatusCode, string(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
