// Package paste отправляет длинные тексты в сервис вставок и возвращает ссылку на них.
package paste

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrDisabled возвращается, если адрес сервиса не настроен.
var ErrDisabled = errors.New("paste: service url is not configured")

const maxPasteSize = 400_000

// Client работает с сервисом вставок в стиле hastebin: POST /documents → {"key": "..."}.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиент. Пустой baseURL отключает отправку.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type documentResponse struct {
	Key string `json:"key"`
}

// Send публикует текст и возвращает ссылку на него.
func (c *Client) Send(ctx context.Context, contents string) (string, error) {
	if c.baseURL == "" {
		return "", ErrDisabled
	}
	if len(contents) > maxPasteSize {
		return "", fmt.Errorf("paste: contents too large (%d bytes)", len(contents))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents", strings.NewReader(contents))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("paste: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("paste: unexpected status %d", resp.StatusCode)
	}

	var doc documentResponse
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("paste: decode response: %w", err)
	}
	if doc.Key == "" {
		return "", errors.New("paste: empty key in response")
	}
	return c.baseURL + "/" + doc.Key, nil
}
