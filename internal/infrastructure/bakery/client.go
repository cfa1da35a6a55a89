package bakery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/jitter"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	storagePath = "/api/storage"
	orderPath   = "/api/order"

	maxResponseBodySize = 1 << 20
	maxRetryBackoff     = 5 * time.Second
)

// Client — HTTP-клиент API пекарни.
// Каждый запрос ограничен таймаутом и при неудаче автоматически повторяется (cfg.MaxAttempts попыток всего).
type Client struct {
	httpClient *http.Client
	cfg        *cfg.BakeryAPICfg
	logger     logger.Logger
}

func NewClient(cfg *cfg.BakeryAPICfg, logger logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cfg:    cfg,
		logger: logger,
	}
}

// FetchProducts запрашивает каталог. Отсутствующее или некорректное поле storage даёт пустой каталог.
func (c *Client) FetchProducts(ctx context.Context) (domain.Catalog, error) {
	const op = "bakery.Client.FetchProducts"

	body, err := c.doWithRetry(ctx, http.MethodGet, storagePath, nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return c.decodeStorage(body), nil
}

// PlaceOrder отправляет заказ. Любой ответ 2xx считается успехом, тело ответа не читается.
func (c *Client) PlaceOrder(ctx context.Context, items []domain.OrderItem) error {
	const op = "bakery.Client.PlaceOrder"

	payload, err := json.Marshal(placeOrderRequest{Items: items})
	if err != nil {
		return e.Wrap(op, err)
	}

	if _, err := c.doWithRetry(ctx, http.MethodPost, orderPath, payload); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// doWithRetry выполняет запрос с повтором и экспоненциальной задержкой с джиттером.
func (c *Client) doWithRetry(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	attempts := max(1, c.cfg.MaxAttempts)

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		body, err := c.do(ctx, method, path, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err

		c.logger.Warnf("bakery api %s %s failed (attempt %d/%d): %s", method, path, attempt+1, attempts, FormatErrorMessage(err))

		if attempt == attempts-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(c.cfg.RetryBackoff, maxRetryBackoff, attempt, jitter.DefaultJitter)
		if err := jitter.Sleep(ctx, sleepTime); err != nil {
			return nil, fmt.Errorf("%w: %w", err, lastErr)
		}
	}

	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reqBody)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, newNetworkError(err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newStatusError(resp.StatusCode, data)
	}

	return data, nil
}

// decodeStorage разбирает ответ каталога. Ошибки разбора не возвращаются, а логируются.
func (c *Client) decodeStorage(body []byte) domain.Catalog {
	var resp storageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warnf("Malformed storage response, using empty catalog: %v", e.Wrap(whereami.WhereAmI(), err))
		return domain.Catalog{}
	}

	if len(resp.Storage) == 0 || string(resp.Storage) == "null" {
		return domain.Catalog{}
	}

	var models []ProductModel
	if err := json.Unmarshal(resp.Storage, &models); err != nil {
		c.logger.Warnf("Malformed storage field, using empty catalog: %v", e.Wrap(whereami.WhereAmI(), err))
		return domain.Catalog{}
	}

	return ToArrDomain(models)
}
