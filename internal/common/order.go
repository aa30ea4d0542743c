package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Order is a resting or in-flight limit order. Once accepted by the
// engine, Price/Qty are immutable except via Replace, and FilledQty is
// monotonically non-decreasing; the engine is the only party that may
// mutate them.
type Order struct {
	ClOrdID   string // opaque client correlator
	OrderID   string // engine-unique identifier
	Symbol    string
	Side      Side
	Price     decimal.Decimal
	Qty       decimal.Decimal
	FilledQty decimal.Decimal
	Status    OrderStatus
}

// OpenQty is the remaining unfilled quantity.
func (order Order) OpenQty() decimal.Decimal {
	return order.Qty.Sub(order.FilledQty)
}

func (order Order) String() string {
	return fmt.Sprintf(
		`ClOrdID: %s
OrderID: %s
Symbol:  %s
Side:    %v
Price:   %s
Qty:     %s (Filled: %s)
Status:  %v`,
		order.ClOrdID,
		order.OrderID,
		order.Symbol,
		order.Side,
		order.Price.String(),
		order.Qty.String(),
		order.FilledQty.String(),
		order.Status,
	)
}
