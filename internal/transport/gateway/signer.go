package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer считает и проверяет подпись колбека оплаты. Шлюз подписывает строку
// "<код ордера>|<id платежа>" через HMAC-SHA256 секретным ключом, подпись приходит hex-строкой.
type Signer struct {
	secret []byte
}

func NewSigner(secret string) Signer {
	return Signer{secret: []byte(secret)}
}

func (s Signer) Sign(orderCode, paymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(orderCode + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify сравнивает подписи за константное время.
func (s Signer) Verify(orderCode, paymentID, signature string) bool {
	expected := s.Sign(orderCode, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
