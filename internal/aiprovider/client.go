// Package aiprovider реализует клиент внешнего inference-API подсказки времени.
package aiprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/magabrotheeeer/pickup-order/internal/lib/timeutil"
)

// Client клиент inference-API. Таймаут транспорта — единственное
// ограничение на время ответа; любая ошибка трактуется вызывающим
// кодом как сигнал к откату на детерминированный алгоритм.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент inference-API.
func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type suggestRequest struct {
	DeliveryType string `json:"deliveryType"`
	CurrentTime  string `json:"currentTime"`
}

type suggestResponse struct {
	SuggestedTime string `json:"suggestedTime"`
}

// SuggestTime запрашивает у внешнего API подсказку времени получения заказа.
func (c *Client) SuggestTime(ctx context.Context, deliveryType string, reference time.Time) (string, error) {
	const op = "aiprovider.SuggestTime"

	body := suggestRequest{
		DeliveryType: deliveryType,
		CurrentTime:  reference.UTC().Format(time.RFC3339),
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &buf)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var suggestResp suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&suggestResp); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if suggestResp.SuggestedTime == "" {
		return "", errors.New(op + ": empty suggestion")
	}
	// Ответ провайдера обязан быть временем с точностью до минуты.
	if _, err := timeutil.ParseFlexible(suggestResp.SuggestedTime); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return suggestResp.SuggestedTime, nil
}
