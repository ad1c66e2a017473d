package enums

import "fmt"

// PaymentStatus tracks whether an order has been paid for.
type PaymentStatus string

const (
	PaymentStatusNotPaid PaymentStatus = "NOTPAID"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	_, err := ParsePaymentStatus(string(p))
	return err == nil
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	switch PaymentStatus(value) {
	case PaymentStatusNotPaid, PaymentStatusPaid:
		return PaymentStatus(value), nil
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
