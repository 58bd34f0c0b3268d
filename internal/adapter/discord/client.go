// Package discord delivers messages through the Discord REST API. It is the
// relay's primary delivery client; it performs no chunking, so callers must
// fit text inside the platform limit before sending.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"

	"github.com/couchcryptid/nws-alert-relay/internal/dispatch"
)

const defaultBaseURL = "https://discord.com/api/v10"

// maxContentLen is Discord's hard limit on message content.
const maxContentLen = 2000

// Client posts messages to Discord channels with a bot token.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Discord REST client.
func NewClient(token string, logger *slog.Logger) *Client {
	return &Client{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Send delivers one message to a channel. Text over the platform limit is
// rejected outright; the batcher splits content before it gets here.
func (c *Client) Send(ctx context.Context, destination, text string, att *dispatch.Attachment) error {
	if len(text) > maxContentLen {
		return fmt.Errorf("message content is %d chars, limit is %d", len(text), maxContentLen)
	}

	u := fmt.Sprintf("%s/channels/%s/messages", c.baseURL, destination)

	err := retry.Do(
		func() error {
			body, contentType, err := encodeMessage(text, att)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, body)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}
			req.Header.Set("Authorization", "Bot "+c.token)
			req.Header.Set("Content-Type", contentType)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("post message: %w", err)
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
				// Rate limits and server errors are worth another attempt.
				return fmt.Errorf("discord API error: status %d", resp.StatusCode)
			default:
				respBody, _ := io.ReadAll(resp.Body)
				return retry.Unrecoverable(fmt.Errorf("discord API error: status %d: %s", resp.StatusCode, respBody))
			}
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.MaxJitter(5*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, retryErr error) {
			c.logger.Info("Retrying message delivery", "attempt", n, "channel", destination, "error", retryErr)
		}),
	)
	if err != nil {
		return fmt.Errorf("send to channel %s: %w", destination, err)
	}
	return nil
}

type messagePayload struct {
	Content string `json:"content"`
}

// encodeMessage builds the request body: plain JSON without an attachment,
// multipart with one.
func encodeMessage(text string, att *dispatch.Attachment) (io.Reader, string, error) {
	payload, err := json.Marshal(messagePayload{Content: text})
	if err != nil {
		return nil, "", fmt.Errorf("marshal payload: %w", err)
	}

	if att == nil {
		return bytes.NewReader(payload), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	field, err := w.CreateFormField("payload_json")
	if err != nil {
		return nil, "", fmt.Errorf("create payload field: %w", err)
	}
	if _, err := field.Write(payload); err != nil {
		return nil, "", fmt.Errorf("write payload field: %w", err)
	}

	file, err := w.CreateFormFile("files[0]", att.Name)
	if err != nil {
		return nil, "", fmt.Errorf("create file field: %w", err)
	}
	if _, err := file.Write(att.Body); err != nil {
		return nil, "", fmt.Errorf("write file field: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
