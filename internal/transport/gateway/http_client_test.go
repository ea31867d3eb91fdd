package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) TestCreateOrder() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal(RouteOrders, r.URL.Path)

		// шлюз авторизует по basic auth паре.
		keyID, keySecret, ok := r.BasicAuth()
		s.Require().True(ok) //nolint:testifylint
		s.Equal("rzp_test_4UzYxLFzV0", keyID)
		s.Equal("secret", keySecret)

		var req orderRequest
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&req)) //nolint:testifylint
		s.Equal(int64(39900), req.Amount)
		s.Equal("INR", req.Currency)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		s.NoError(json.NewEncoder(w).Encode(orderResponse{
			ID:       "order_NXhT2gJ9vK",
			Amount:   req.Amount,
			Currency: req.Currency,
			Status:   "created",
		}))
	}))

	client := NewHTTPClient(s.server.URL, "rzp_test_4UzYxLFzV0", "secret")
	resp, err := client.CreateOrder(s.T().Context(), 39900, "INR", "topup_1")
	s.Require().NoError(err)
	s.Equal("order_NXhT2gJ9vK", resp.ID)
	s.Equal(int64(39900), resp.Amount)
	s.Equal("INR", resp.Currency)
}

// Временный 5xx у шлюза ретраится и второй попыткой проходит.
func (s *ClientTestSuite) TestCreateOrder_RetriesOnServerError() {
	var calls atomic.Int32
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		s.NoError(json.NewEncoder(w).Encode(orderResponse{ID: "order_1", Amount: 9900, Currency: "INR"}))
	}))

	client := NewHTTPClient(s.server.URL, "key", "secret")
	resp, err := client.CreateOrder(s.T().Context(), 9900, "INR", "topup_2")
	s.Require().NoError(err)
	s.Equal("order_1", resp.ID)
	s.Equal(int32(2), calls.Load())
}

// 4xx означает ошибку в самом запросе: повторять его бессмысленно.
func (s *ClientTestSuite) TestCreateOrder_NoRetryOnClientError() {
	var calls atomic.Int32
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))

	client := NewHTTPClient(s.server.URL, "key", "wrong-secret")
	resp, err := client.CreateOrder(s.T().Context(), 9900, "INR", "topup_3")
	s.Require().Error(err)

	var statusErr *StatusCodeError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusUnauthorized, statusErr.Code)
	s.Nil(resp)
	s.Equal(int32(1), calls.Load())
}
