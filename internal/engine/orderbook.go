// Package engine implements the order book: it owns one ordered
// price-level map per side, drives the submit/cancel/replace protocol
// and the price-time-priority matching algorithm, and fans out trade,
// order-update and reject events to subscribed observers.
package engine

import (
	"errors"

	"fenrir/internal/book"
	"fenrir/internal/common"
	"fenrir/internal/epsilon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Programming-error sentinels. These report violations of the
// submit/cancel/replace preconditions: caller bugs, not business
// rejects. They are crash-visible by design — a reject code is the
// wrong signal for "this should never happen".
var (
	ErrNonPositiveQty     = errors.New("engine: order qty must be positive")
	ErrNonPositivePrice   = errors.New("engine: order price must be positive")
	ErrAlreadyFilled      = errors.New("engine: order filled_qty must be less than qty")
	ErrInvalidOrderStatus = errors.New("engine: order status is not eligible for submit")
)

// OrderBook drives price-time-priority matching for a single symbol.
type OrderBook struct {
	symbol     string
	buyLevels  *book.LevelMap
	sellLevels *book.LevelMap
	observers  []Observer
}

// NewOrderBook constructs an empty order book for symbol.
func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol:     symbol,
		buyLevels:  book.NewLevelMap(),
		sellLevels: book.NewLevelMap(),
	}
}

// Symbol returns the instrument this book matches.
func (ob *OrderBook) Symbol() string {
	return ob.symbol
}

// Subscribe registers obs to receive future events. Duplicate
// registrations (same observer identity) are ignored. Registration
// order is preserved and determines fan-out order on every emission.
func (ob *OrderBook) Subscribe(obs Observer) {
	for _, existing := range ob.observers {
		if existing == obs {
			return
		}
	}
	ob.observers = append(ob.observers, obs)
}

// BestBid is the highest resting buy price, if any.
func (ob *OrderBook) BestBid() (decimal.Decimal, bool) {
	return ob.buyLevels.Max()
}

// BestAsk is the lowest resting sell price, if any.
func (ob *OrderBook) BestAsk() (decimal.Decimal, bool) {
	return ob.sellLevels.Min()
}

// InOrderBuyOrders returns resting buy orders descending by price,
// FIFO within each price level.
func (ob *OrderBook) InOrderBuyOrders() []common.Order {
	return flatten(ob.buyLevels.ReverseOrder())
}

// InOrderSellOrders returns resting sell orders ascending by price,
// FIFO within each price level.
func (ob *OrderBook) InOrderSellOrders() []common.Order {
	return flatten(ob.sellLevels.InOrder())
}

func flatten(levels []*book.Level) []common.Order {
	out := make([]common.Order, 0)
	for _, lvl := range levels {
		for _, kv := range lvl.Orders.Traverse() {
			out = append(out, *kv.Value)
		}
	}
	return out
}

// SubmitOrder enters order into the matching loop and, if quantity
// remains open afterward, rests it on its own side at order.Price.
//
// Preconditions (violations panic; these are caller bugs, not
// business rejects): order.Status must be PendingNew, Open, or
// PartiallyFilled — the latter two only arise from Replace
// re-entering a resting order — qty and price must be positive, and
// filled_qty must be less than qty.
func (ob *OrderBook) SubmitOrder(order *common.Order) {
	validateSubmit(order)

	if order.Status == common.PendingNew {
		order.Status = common.Open
		ob.emitOrderUpdate(*order)
	}

	ob.match(order)

	if !epsilon.Zero(order.OpenQty()) {
		level := ob.sideLevels(order.Side).GetOrCreate(order.Price)
		if err := level.Orders.Enqueue(order.OrderID, order); err != nil {
			panic(err)
		}
	}
}

func validateSubmit(order *common.Order) {
	switch order.Status {
	case common.PendingNew, common.Open, common.PartiallyFilled:
	default:
		panic(ErrInvalidOrderStatus)
	}
	if !order.Qty.IsPositive() {
		panic(ErrNonPositiveQty)
	}
	if !order.Price.IsPositive() {
		panic(ErrNonPositivePrice)
	}
	if !epsilon.Lt(order.FilledQty, order.Qty) {
		panic(ErrAlreadyFilled)
	}
}

// match sweeps the opposite side in price-priority order while order
// crosses, filling both the aggressor and each resting order it
// touches and publishing the order-update/order-update/trade triple
// per fill described in the matching algorithm.
func (ob *OrderBook) match(order *common.Order) {
	opp := ob.oppositeLevels(order.Side)

	for !epsilon.Zero(order.OpenQty()) {
		levelPrice, ok := bestOpposingPrice(opp, order.Side)
		if !ok {
			break
		}
		if order.Side == common.Buy && epsilon.Gt(levelPrice, order.Price) {
			break
		}
		if order.Side == common.Sell && epsilon.Lt(levelPrice, order.Price) {
			break
		}

		level, _ := opp.Get(levelPrice)
		for !level.Orders.IsEmpty() && !epsilon.Zero(order.OpenQty()) {
			resting, _ := level.Orders.Peek()

			tradeQty := minDecimal(order.OpenQty(), resting.OpenQty())
			resting.FilledQty = resting.FilledQty.Add(tradeQty)
			order.FilledQty = order.FilledQty.Add(tradeQty)

			trade := buildTrade(order, resting, tradeQty)

			applyFillStatus(resting)
			applyFillStatus(order)

			ob.emitOrderUpdate(*resting)
			ob.emitOrderUpdate(*order)
			ob.emitTrade(trade)

			if epsilon.Zero(resting.OpenQty()) {
				if _, err := level.Orders.Dequeue(); err != nil {
					panic(err)
				}
			}
		}

		if level.Orders.IsEmpty() {
			opp.Delete(levelPrice)
		}
	}
}

func bestOpposingPrice(opp *book.LevelMap, side common.Side) (decimal.Decimal, bool) {
	if side == common.Buy {
		return opp.Min()
	}
	return opp.Max()
}

func buildTrade(aggressor, resting *common.Order, qty decimal.Decimal) common.Trade {
	buyID, sellID := resting.OrderID, aggressor.OrderID
	if aggressor.Side == common.Buy {
		buyID, sellID = aggressor.OrderID, resting.OrderID
	}
	return common.Trade{
		TradeID:     uuid.New().String(),
		BuyOrderID:  buyID,
		SellOrderID: sellID,
		Qty:         qty,
		Price:       resting.Price,
		ActiveSide:  aggressor.Side,
	}
}

func applyFillStatus(order *common.Order) {
	if epsilon.Eq(order.FilledQty, order.Qty) {
		order.Status = common.Filled
	} else {
		order.Status = common.PartiallyFilled
	}
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// CancelOrder locates order by (side, price, order id) in its side
// book. If found, it is removed (dropping the level if it empties),
// marked Canceled, and an order-update is emitted. Otherwise a
// cancel-reject with OrderDoesNotExist is emitted and nothing changes
// — this also covers canceling an order that has already reached a
// terminal state, since terminal orders are never resting.
func (ob *OrderBook) CancelOrder(order *common.Order) {
	levels := ob.sideLevels(order.Side)
	level, ok := levels.Get(order.Price)
	if !ok {
		ob.emitCancelReject(*order, common.OrderDoesNotExist)
		return
	}
	resting, ok := level.Orders.Get(order.OrderID)
	if !ok {
		ob.emitCancelReject(*order, common.OrderDoesNotExist)
		return
	}

	level.Orders.Delete(order.OrderID)
	if level.Orders.IsEmpty() {
		levels.Delete(order.Price)
	}

	resting.Status = common.Canceled
	ob.emitOrderUpdate(*resting)
}

// ReplaceOrder checks the reject preconditions in order, then removes
// order from its level (dropping it if empty), mutates its price/qty
// in place, and resubmits it — a remove-then-resubmit that always
// loses time priority, even when only quantity changes.
func (ob *OrderBook) ReplaceOrder(order *common.Order, newPrice, newQty decimal.Decimal) {
	if epsilon.Eq(newPrice, order.Price) && epsilon.Eq(newQty, order.Qty) {
		ob.emitReplaceReject(*order, common.PriceOrQtyMustBeChanged)
		return
	}
	if epsilon.Lt(newQty, order.FilledQty) {
		ob.emitReplaceReject(*order, common.NewQtyCantBeLessThanFilledQty)
		return
	}

	levels := ob.sideLevels(order.Side)
	level, ok := levels.Get(order.Price)
	if !ok {
		ob.emitReplaceReject(*order, common.OrderDoesNotExist)
		return
	}
	resting, ok := level.Orders.Get(order.OrderID)
	if !ok {
		ob.emitReplaceReject(*order, common.OrderDoesNotExist)
		return
	}

	level.Orders.Delete(order.OrderID)
	if level.Orders.IsEmpty() {
		levels.Delete(order.Price)
	}

	resting.Price = newPrice
	resting.Qty = newQty

	// new_qty == filled_qty exactly is legal: the order is Filled the
	// instant the replace lands, with nothing left to re-enter the
	// matching loop for.
	if epsilon.Eq(newQty, resting.FilledQty) {
		resting.Status = common.Filled
		ob.emitOrderUpdate(*resting)
		return
	}

	ob.SubmitOrder(resting)
}

func (ob *OrderBook) sideLevels(side common.Side) *book.LevelMap {
	if side == common.Buy {
		return ob.buyLevels
	}
	return ob.sellLevels
}

func (ob *OrderBook) oppositeLevels(side common.Side) *book.LevelMap {
	if side == common.Buy {
		return ob.sellLevels
	}
	return ob.buyLevels
}

func (ob *OrderBook) emitTrade(trade common.Trade) {
	for _, obs := range ob.observers {
		obs.OnTrade(trade)
	}
}

func (ob *OrderBook) emitOrderUpdate(order common.Order) {
	for _, obs := range ob.observers {
		obs.OnOrderUpdate(order)
	}
}

func (ob *OrderBook) emitCancelReject(order common.Order, code common.RejectCode) {
	for _, obs := range ob.observers {
		obs.OnCancelReject(order, code)
	}
}

func (ob *OrderBook) emitReplaceReject(order common.Order, code common.RejectCode) {
	for _, obs := range ob.observers {
		obs.OnReplaceReject(order, code)
	}
}
