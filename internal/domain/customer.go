package domain

import "time"

// Customer is a client of the shop. Honorific feeds the {{tratamiento}}
// placeholder in customer-facing messages.
type Customer struct {
	ID        string
	Honorific string
	Name      string
	Phone     string
	CreatedAt time.Time
}
