package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigner(t *testing.T) {
	signer := NewSigner("secret")

	signature := signer.Sign("order_NXhT2gJ9vK", "pay_29QQoUBi66xm2f")
	assert.True(t, signer.Verify("order_NXhT2gJ9vK", "pay_29QQoUBi66xm2f", signature))

	// подпись привязана к конкретной паре ордер/платеж.
	assert.False(t, signer.Verify("order_other", "pay_29QQoUBi66xm2f", signature))
	assert.False(t, signer.Verify("order_NXhT2gJ9vK", "pay_other", signature))
	assert.False(t, signer.Verify("order_NXhT2gJ9vK", "pay_29QQoUBi66xm2f", signature+"00"))

	// подпись другим ключом не проходит.
	other := NewSigner("other-secret")
	assert.False(t, other.Verify("order_NXhT2gJ9vK", "pay_29QQoUBi66xm2f", signature))
}

func TestAdapter_RequiresCredentials(t *testing.T) {
	_, err := NewRazorpay("", "key", "secret")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewRazorpay("https://gw.example.com", "", "secret")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewRazorpay("https://gw.example.com", "key", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)

	adapter, err := NewRazorpay("https://gw.example.com", "key", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "key", adapter.KeyID())
}

func TestNew_ProviderDispatch(t *testing.T) {
	razorpay, razorpayErr := New("razorpay", "https://gw.example.com", "key", "secret", "")
	assert.NoError(t, razorpayErr)
	assert.IsType(t, &RazorpayAdapter{}, razorpay)

	// пустой провайдер - razorpay по умолчанию.
	fallback, fallbackErr := New("", "https://gw.example.com", "key", "secret", "")
	assert.NoError(t, fallbackErr)
	assert.IsType(t, &RazorpayAdapter{}, fallback)

	phonepe, phonepeErr := New("phonepe", "https://gw.example.com", "merchant_1", "salt-key", "1")
	assert.NoError(t, phonepeErr)
	assert.IsType(t, &PhonePeAdapter{}, phonepe)

	_, unknownErr := New("stripe", "https://gw.example.com", "key", "secret", "")
	assert.Error(t, unknownErr)
}
