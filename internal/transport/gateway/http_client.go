package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go"
)

const RouteOrders = "/v1/orders"

const (
	defaultRequestTimeout  = 10 * time.Second
	defaultRetryAttempts   = 3
	defaultRetryDelay      = 200 * time.Millisecond
	defaultIdleConnTimeout = 30 * time.Second
)

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// HTTPClient ходит на API платежного шлюза. Запросы авторизуются basic auth парой
// keyID/keySecret, как это делает Razorpay-подобный API.
type HTTPClient struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, keyID, keySecret string) HTTPClient {
	return HTTPClient{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Transport: &http.Transport{IdleConnTimeout: defaultIdleConnTimeout},
		},
	}
}

// CreateOrder создает ордер на стороне шлюза. Сетевые ошибки и 5xx ретраятся до
// defaultRetryAttempts раз; 4xx означает ошибку в самом запросе и не ретраится.
// В случае не-2xx ответа возвращает *StatusCodeError.
func (c HTTPClient) CreateOrder(ctx context.Context, amountMinorUnits int64, currency, receipt string) (*orderResponse, error) {
	payload, marshalErr := json.Marshal(orderRequest{
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  receipt,
	})
	if marshalErr != nil {
		return nil, fmt.Errorf("marshal request: %s", marshalErr.Error())
	}

	var response *orderResponse
	retryErr := retry.Do(
		func() error {
			resp, respErr := c.doCreate(ctx, payload)
			if respErr != nil {
				return respErr
			}
			response = resp
			return nil
		},
		retry.Attempts(defaultRetryAttempts),
		retry.Delay(defaultRetryDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
	if retryErr != nil {
		return nil, retryErr
	}
	return response, nil
}

//nolint:nonamedreturns
func (c HTTPClient) doCreate(ctx context.Context, payload []byte) (response *orderResponse, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+RouteOrders, bytes.NewReader(payload))
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("do request: %w", doErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, NewStatusCodeError(resp.StatusCode)
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("read response: %s", readErr.Error())
	}

	if jsonErr := json.Unmarshal(body, &response); jsonErr != nil {
		return nil, fmt.Errorf("parse response: %s", jsonErr.Error())
	}
	return response, nil
}

// isRetryable решает, имеет ли смысл повторять запрос: сетевые сбои и 5xx - да,
// клиентские ошибки - нет.
func isRetryable(err error) bool {
	var statusErr *StatusCodeError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError
	}
	return true
}
