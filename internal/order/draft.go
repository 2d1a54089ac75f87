package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// State identifies a step of the order conversation.
type State string

const (
	// StateMainMenu is the implicit state of every user without an active draft.
	StateMainMenu State = "main_menu"
	// StatePlatform waits for a platform selection.
	StatePlatform State = "platform"
	// StateService waits for a service selection.
	StateService State = "service"
	// StateQuantity waits for a numeric quantity.
	StateQuantity State = "quantity"
	// StateAccount waits for the target account, ID, or link.
	StateAccount State = "account"
	// StatePayment waits for a payment proof upload.
	StatePayment State = "payment"
)

// Quantity bounds accepted by the flow, inclusive.
const (
	MinQuantity = 50
	MaxQuantity = 20000
)

// Draft is the in-progress order of one user. Fields fill strictly in
// state order; back navigation clears only the field owned by the state
// being left forward of.
type Draft struct {
	UserID   int64
	Platform string
	Service  string
	Quantity int
	Target   string
	Price    decimal.Decimal
	ProofRef string
}

// Order is the immutable snapshot of a completed draft, submitted for review.
type Order struct {
	UserID    int64
	Platform  string
	Service   string
	Quantity  int
	Target    string
	Price     decimal.Decimal
	ProofRef  string
	CreatedAt time.Time
}

func finalize(d Draft) Order {
	return Order{
		UserID:    d.UserID,
		Platform:  d.Platform,
		Service:   d.Service,
		Quantity:  d.Quantity,
		Target:    d.Target,
		Price:     d.Price,
		ProofRef:  d.ProofRef,
		CreatedAt: time.Now().UTC(),
	}
}
