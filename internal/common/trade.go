package common

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Trade is an immutable record of one fill. Price is always the
// resting side's price; ActiveSide names the aggressor that crossed.
type Trade struct {
	TradeID     string
	BuyOrderID  string
	SellOrderID string
	Qty         decimal.Decimal
	Price       decimal.Decimal
	ActiveSide  Side
}

func (t Trade) String() string {
	return fmt.Sprintf(
		`TradeID:     %s
BuyOrderID:  %s
SellOrderID: %s
Qty:         %s
Price:       %s
ActiveSide:  %v`,
		t.TradeID,
		t.BuyOrderID,
		t.SellOrderID,
		t.Qty.String(),
		t.Price.String(),
		t.ActiveSide,
	)
}
