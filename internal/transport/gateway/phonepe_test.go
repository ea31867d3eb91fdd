package gateway

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fsdevblog/course-points/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestChecksum(t *testing.T) {
	checksum := NewChecksum("salt-key", "1")

	signature := checksum.Compute("order_1" + "|" + "pay_1")
	assert.True(t, strings.HasSuffix(signature, "###1"))
	assert.True(t, checksum.Verify("order_1", "pay_1", signature))

	// подпись привязана к конкретной паре ордер/платеж.
	assert.False(t, checksum.Verify("order_2", "pay_1", signature))
	assert.False(t, checksum.Verify("order_1", "pay_2", signature))

	// подпись с другим соляным ключом или индексом не проходит.
	assert.False(t, NewChecksum("other-salt", "1").Verify("order_1", "pay_1", signature))
	assert.False(t, NewChecksum("salt-key", "2").Verify("order_1", "pay_1", signature))
}

type PhonePeClientTestSuite struct {
	suite.Suite
}

func TestPhonePeClientSuite(t *testing.T) {
	suite.Run(t, new(PhonePeClientTestSuite))
}

func (s *PhonePeClientTestSuite) TestPay() {
	checksum := NewChecksum("salt-key", "1")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal(RoutePay, r.URL.Path)

		var req payRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))

		// X-VERIFY должен сходиться с контрольной суммой присланной base64-нагрузки.
		s.Equal(checksum.Compute(req.Request, RoutePay), r.Header.Get("X-VERIFY"))

		raw, decodeErr := base64.StdEncoding.DecodeString(req.Request)
		s.Require().NoError(decodeErr)

		var payload payPayload
		s.Require().NoError(json.Unmarshal(raw, &payload))
		s.Equal("merchant_1", payload.MerchantID)
		s.Equal("mtx_42", payload.MerchantTransactionID)
		s.Equal(int64(39900), payload.Amount)
		s.Equal("PAY_PAGE", payload.PaymentInstrument.Type)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"code":"PAYMENT_INITIATED","data":{"merchantTransactionId":"mtx_42"}}`))
	}))
	defer server.Close()

	client := NewPhonePeClient(server.URL, "merchant_1", checksum)
	s.Require().NoError(client.Pay(s.T().Context(), "mtx_42", 39900))
}

func (s *PhonePeClientTestSuite) TestPay_Rejected() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"code":"BAD_REQUEST"}`))
	}))
	defer server.Close()

	client := NewPhonePeClient(server.URL, "merchant_1", NewChecksum("salt-key", "1"))
	err := client.Pay(s.T().Context(), "mtx_42", 39900)
	s.Require().Error(err)
	s.Contains(err.Error(), "BAD_REQUEST")
}

func (s *PhonePeClientTestSuite) TestPay_NoRetryOnClientError() {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewPhonePeClient(server.URL, "merchant_1", NewChecksum("salt-key", "1"))
	err := client.Pay(s.T().Context(), "mtx_42", 39900)
	s.Require().Error(err)
	s.Equal(int32(1), calls.Load())

	var statusErr *StatusCodeError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusUnauthorized, statusErr.Code)
}

func TestPhonePeAdapter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"code":"PAYMENT_INITIATED","data":{}}`))
	}))
	defer server.Close()

	adapter, err := NewPhonePe(server.URL, "merchant_1", "salt-key", "1")
	require.NoError(t, err)
	assert.Equal(t, "merchant_1", adapter.KeyID())

	order, orderErr := adapter.CreateOrder(t.Context(), service.GatewayOrderArgs{
		AmountMinorUnits: 9900,
		Currency:         "INR",
	})
	require.NoError(t, orderErr)
	assert.True(t, strings.HasPrefix(order.OrderCode, "mtx_"))
	assert.Equal(t, int64(9900), order.AmountMinorUnits)
	assert.Equal(t, "INR", order.Currency)

	signature := adapter.checksum.Compute(order.OrderCode + "|" + "pay_1")
	assert.True(t, adapter.VerifySignature(order.OrderCode, "pay_1", signature))
	assert.False(t, adapter.VerifySignature(order.OrderCode, "pay_1", signature+"00"))
}

func TestNewPhonePe_RequiresCredentials(t *testing.T) {
	for _, args := range [][4]string{
		{"", "merchant_1", "salt-key", "1"},
		{"https://gw.example.com", "", "salt-key", "1"},
		{"https://gw.example.com", "merchant_1", "", "1"},
		{"https://gw.example.com", "merchant_1", "salt-key", ""},
	} {
		_, err := NewPhonePe(args[0], args[1], args[2], args[3])
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
}
