package trade

// PaymentMethod is how an invoice or purchase was (or will be) settled.
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodWallet      PaymentMethod = "wallet"
	PaymentMethodDeferred    PaymentMethod = "deferred"
	PaymentMethodStoreCredit PaymentMethod = "store_credit"
)

// IsValid checks if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet, PaymentMethodDeferred, PaymentMethodStoreCredit:
		return true
	}
	return false
}

// IsDeferred reports whether payment is postponed, so nothing is collected
// into a treasury account at creation time.
func (m PaymentMethod) IsDeferred() bool {
	return m == PaymentMethodDeferred
}
