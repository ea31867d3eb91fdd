package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/fsdevblog/course-points/internal/service"
)

const RoutePay = "/pg/v1/pay"

// Checksum считает подписи PhonePe-подобного шлюза: SHA256 от полезной нагрузки с
// конкатенированным соляным ключом, затем суффикс `###<индекс соли>`.
type Checksum struct {
	saltKey   string
	saltIndex string
}

func NewChecksum(saltKey, saltIndex string) Checksum {
	return Checksum{saltKey: saltKey, saltIndex: saltIndex}
}

// Compute подписывает конкатенацию частей. Для запроса это base64-нагрузка и путь,
// для колбека оплаты - пара "<код ордера>|<id платежа>".
func (c Checksum) Compute(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
	}
	h.Write([]byte(c.saltKey))
	return hex.EncodeToString(h.Sum(nil)) + "###" + c.saltIndex
}

// Verify сравнивает подписи колбека за константное время.
func (c Checksum) Verify(orderCode, paymentID, checksum string) bool {
	expected := c.Compute(orderCode + "|" + paymentID)
	return hmac.Equal([]byte(expected), []byte(checksum))
}

type payPayload struct {
	MerchantID            string        `json:"merchantId"`
	MerchantTransactionID string        `json:"merchantTransactionId"`
	Amount                int64         `json:"amount"`
	PaymentInstrument     payInstrument `json:"paymentInstrument"`
}

type payInstrument struct {
	Type string `json:"type"`
}

type payRequest struct {
	Request string `json:"request"`
}

type payResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Data    struct {
		MerchantTransactionID string `json:"merchantTransactionId"`
	} `json:"data"`
}

// PhonePeClient ходит на API PhonePe-подобного шлюза. Вместо basic auth запрос несет
// заголовок X-VERIFY с контрольной суммой base64-нагрузки.
type PhonePeClient struct {
	baseURL    string
	merchantID string
	checksum   Checksum
	httpClient *http.Client
}

func NewPhonePeClient(baseURL, merchantID string, checksum Checksum) PhonePeClient {
	return PhonePeClient{
		baseURL:    baseURL,
		merchantID: merchantID,
		checksum:   checksum,
		httpClient: &http.Client{
			Transport: &http.Transport{IdleConnTimeout: defaultIdleConnTimeout},
		},
	}
}

// Pay инициирует платеж на merchantTransactionID. Сетевые ошибки и 5xx ретраятся до
// defaultRetryAttempts раз; 4xx не ретраится. В случае не-2xx ответа возвращает
// *StatusCodeError.
func (c PhonePeClient) Pay(ctx context.Context, merchantTransactionID string, amountMinorUnits int64) error {
	payload, marshalErr := json.Marshal(payPayload{
		MerchantID:            c.merchantID,
		MerchantTransactionID: merchantTransactionID,
		Amount:                amountMinorUnits,
		PaymentInstrument:     payInstrument{Type: "PAY_PAGE"},
	})
	if marshalErr != nil {
		return fmt.Errorf("marshal request: %s", marshalErr.Error())
	}
	encoded := base64.StdEncoding.EncodeToString(payload)

	return retry.Do(
		func() error {
			return c.doPay(ctx, encoded)
		},
		retry.Attempts(defaultRetryAttempts),
		retry.Delay(defaultRetryDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
	)
}

//nolint:nonamedreturns
func (c PhonePeClient) doPay(ctx context.Context, encodedPayload string) (err error) {
	reqCtx, cancel := context.WithTimeout(ctx, defaultRequestTimeout)
	defer cancel()

	body, marshalErr := json.Marshal(payRequest{Request: encodedPayload})
	if marshalErr != nil {
		return fmt.Errorf("marshal request: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+RoutePay, bytes.NewReader(body))
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-VERIFY", c.checksum.Compute(encodedPayload, RoutePay))

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %w", doErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return NewStatusCodeError(resp.StatusCode)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return fmt.Errorf("read response: %s", readErr.Error())
	}

	var response payResponse
	if jsonErr := json.Unmarshal(respBody, &response); jsonErr != nil {
		return fmt.Errorf("parse response: %s", jsonErr.Error())
	}
	if !response.Success {
		return fmt.Errorf("pay request rejected with code `%s`", response.Code)
	}
	return nil
}

// PhonePeAdapter реализует service.PaymentGateway поверх PhonePe-подобного шлюза.
// Код ордера (merchantTransactionId) генерируется на нашей стороне, шлюз его принимает.
type PhonePeAdapter struct {
	client     PhonePeClient
	checksum   Checksum
	merchantID string
}

func NewPhonePe(baseURL, merchantID, saltKey, saltIndex string) (*PhonePeAdapter, error) {
	if baseURL == "" || merchantID == "" || saltKey == "" || saltIndex == "" {
		return nil, ErrMissingCredentials
	}
	checksum := NewChecksum(saltKey, saltIndex)
	return &PhonePeAdapter{
		client:     NewPhonePeClient(baseURL, merchantID, checksum),
		checksum:   checksum,
		merchantID: merchantID,
	}, nil
}

func (a *PhonePeAdapter) CreateOrder(ctx context.Context, args service.GatewayOrderArgs) (*service.GatewayOrder, error) {
	orderCode := fmt.Sprintf("mtx_%s", uuid.New())

	if err := a.client.Pay(ctx, orderCode, args.AmountMinorUnits); err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}
	return &service.GatewayOrder{
		OrderCode:        orderCode,
		AmountMinorUnits: args.AmountMinorUnits,
		Currency:         args.Currency,
	}, nil
}

func (a *PhonePeAdapter) VerifySignature(orderCode, paymentID, signature string) bool {
	return a.checksum.Verify(orderCode, paymentID, signature)
}

// KeyID возвращает идентификатор мерчанта: клиентскому чекауту он нужен там же,
// где Razorpay-чекауту нужен key id.
func (a *PhonePeAdapter) KeyID() string {
	return a.merchantID
}
