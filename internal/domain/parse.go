package domain

import "fmt"

// The external store and API speak strings; conversion to the closed enums
// happens once, here at the edge.

// ParseStatus converts a stored/requested status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReceived, StatusPrePress, StatusPendingMount, StatusMounted,
		StatusPrinted, StatusPacked, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// ParseProductKind converts a product kind string.
func ParseProductKind(s string) (ProductKind, error) {
	switch ProductKind(s) {
	case ProductCard, ProductFlyer:
		return ProductKind(s), nil
	default:
		return "", fmt.Errorf("unknown product kind %q", s)
	}
}

// ParseCardGroup converts a card finish-group string.
func ParseCardGroup(s string) (CardGroup, error) {
	switch CardGroup(s) {
	case GroupGloss, GroupMatteReserve:
		return CardGroup(s), nil
	default:
		return "", fmt.Errorf("unknown card group %q", s)
	}
}

// ParsePaymentMethod converts a payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayCash, PayTransfer, PayCheck:
		return PaymentMethod(s), nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}
