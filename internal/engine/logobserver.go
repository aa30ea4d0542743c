package engine

import (
	"fenrir/internal/common"

	"github.com/rs/zerolog/log"
)

// LogObserver logs every trade and order update at Info level and
// every cancel/replace reject at Warn level.
// It is meant for demo and ops visibility, never for the matching hot
// path: logging happens synchronously on the emitting goroutine, same
// as every other observer.
type LogObserver struct{}

func (LogObserver) OnTrade(trade common.Trade) {
	log.Info().
		Str("tradeID", trade.TradeID).
		Str("buyOrderID", trade.BuyOrderID).
		Str("sellOrderID", trade.SellOrderID).
		Str("price", trade.Price.String()).
		Str("qty", trade.Qty.String()).
		Str("activeSide", trade.ActiveSide.String()).
		Msg("trade")
}

func (LogObserver) OnOrderUpdate(order common.Order) {
	log.Info().
		Str("orderID", order.OrderID).
		Str("symbol", order.Symbol).
		Str("side", order.Side.String()).
		Str("status", order.Status.String()).
		Str("price", order.Price.String()).
		Str("openQty", order.OpenQty().String()).
		Msg("order update")
}

func (LogObserver) OnCancelReject(order common.Order, code common.RejectCode) {
	log.Warn().
		Str("orderID", order.OrderID).
		Str("reason", code.String()).
		Msg("cancel rejected")
}

func (LogObserver) OnReplaceReject(order common.Order, code common.RejectCode) {
	log.Warn().
		Str("orderID", order.OrderID).
		Str("reason", code.String()).
		Msg("replace rejected")
}
