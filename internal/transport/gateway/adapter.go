// Package gateway реализует интеграцию с внешними платежными шлюзами: создание ордеров
// и проверку подписи колбека оплаты. Поддерживаются два провайдера, Razorpay-подобный
// и PhonePe-подобный, за общим контрактом service.PaymentGateway.
package gateway

import (
	"context"
	"fmt"

	"github.com/fsdevblog/course-points/internal/service"
)

const (
	ProviderRazorpay = "razorpay"
	ProviderPhonePe  = "phonepe"
)

// New выбирает реализацию шлюза по имени провайдера из конфигурации.
// saltIndex используется только PhonePe-провайдером.
func New(provider, baseURL, keyID, keySecret, saltIndex string) (service.PaymentGateway, error) {
	switch provider {
	case "", ProviderRazorpay:
		return NewRazorpay(baseURL, keyID, keySecret)
	case ProviderPhonePe:
		return NewPhonePe(baseURL, keyID, keySecret, saltIndex)
	default:
		return nil, fmt.Errorf("unknown payment gateway provider `%s`", provider)
	}
}

// RazorpayAdapter реализует service.PaymentGateway поверх HTTP клиента Razorpay-подобного шлюза.
type RazorpayAdapter struct {
	client HTTPClient
	signer Signer
	keyID  string
}

// NewRazorpay создает адаптер шлюза. Без полного набора кредов сервис стартовать не должен:
// оплата без проверки подписи недопустима.
func NewRazorpay(baseURL, keyID, keySecret string) (*RazorpayAdapter, error) {
	if baseURL == "" || keyID == "" || keySecret == "" {
		return nil, ErrMissingCredentials
	}
	return &RazorpayAdapter{
		client: NewHTTPClient(baseURL, keyID, keySecret),
		signer: NewSigner(keySecret),
		keyID:  keyID,
	}, nil
}

func (a *RazorpayAdapter) CreateOrder(ctx context.Context, args service.GatewayOrderArgs) (*service.GatewayOrder, error) {
	resp, err := a.client.CreateOrder(ctx, args.AmountMinorUnits, args.Currency, args.Receipt)
	if err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}
	return &service.GatewayOrder{
		OrderCode:        resp.ID,
		AmountMinorUnits: resp.Amount,
		Currency:         resp.Currency,
	}, nil
}

func (a *RazorpayAdapter) VerifySignature(orderCode, paymentID, signature string) bool {
	return a.signer.Verify(orderCode, paymentID, signature)
}

func (a *RazorpayAdapter) KeyID() string {
	return a.keyID
}
