package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stockguard-io/stockguard/pkg/model"
)

// SlackNotifier sends notifications to a Slack webhook.
type SlackNotifier struct {
	webhookURL string
	channel    string
	client     *http.Client
}

// NewSlackNotifier creates a Slack webhook notifier.
func NewSlackNotifier(webhookURL, channel string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		channel:    channel,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (s *SlackNotifier) Name() string { return "slack" }

func (s *SlackNotifier) Send(ctx context.Context, n Notification) error {
	color := "#36a64f" // green
	switch n.Category {
	case model.AlertStockZero:
		color = "#cc0000" // dark red
	case model.AlertStockLow:
		color = "#ff9900" // orange
	case model.AlertExpirySoon:
		color = "#ffcc00" // yellow
	}

	fields := []slackField{
		{Title: "Product", Value: n.Code, Short: true},
		{Title: "Category", Value: string(n.Category), Short: true},
		{Title: "Stock", Value: fmt.Sprintf("%d", n.Stock), Short: true},
	}
	if n.ExpiryDate != nil {
		fields = append(fields, slackField{Title: "Expiry", Value: n.ExpiryDate.String(), Short: true})
	}
	if n.DaysUntilExpiry != nil {
		fields = append(fields, slackField{Title: "Days Left", Value: fmt.Sprintf("%d", *n.DaysUntilExpiry), Short: true})
	}

	payload := slackPayload{
		Channel: s.channel,
		Attachments: []slackAttachment{
			{
				Color:  color,
				Title:  fmt.Sprintf("Stockguard: %s", n.Message),
				Fields: fields,
				Footer: "stockguard",
				Ts:     time.Now().Unix(),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send slack notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}
	return nil
}

type slackPayload struct {
	Channel     string            `json:"channel,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
	Ts     int64        `json:"ts"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}
