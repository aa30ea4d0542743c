package engine

import "fenrir/internal/common"

// Observer is the transaction sink contract. All four callbacks are
// invoked synchronously, on the goroutine calling submit/cancel/
// replace, in registration order, before the originating call
// returns. An observer must not call back into the OrderBook: the
// book offers no reentrancy guarantees.
type Observer interface {
	OnTrade(trade common.Trade)
	OnOrderUpdate(order common.Order)
	OnCancelReject(order common.Order, code common.RejectCode)
	OnReplaceReject(order common.Order, code common.RejectCode)
}
