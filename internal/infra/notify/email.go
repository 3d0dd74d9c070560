package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/BruksfildServices01/semijoias-crm/internal/domain/campaign"
)

// HTTPEmailSender posta {from, to, subject, html} no relay de email.
type HTTPEmailSender struct {
	url    string
	apiKey string
	from   string
	client *http.Client
}

func NewHTTPEmailSender(url, apiKey, from string) *HTTPEmailSender {
	return &HTTPEmailSender{
		url:    url,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type emailPayload struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (s *HTTPEmailSender) SendEmail(ctx context.Context, msg campaign.EmailMessage) error {
	body, err := json.Marshal(emailPayload{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email relay: status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
