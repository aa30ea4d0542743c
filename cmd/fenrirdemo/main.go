// Command fenrirdemo replays a small fixture of orders through a
// single-symbol book and logs every trade, order update and reject as
// they are produced.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"fenrir/internal/common"
	"fenrir/internal/engine"
	"fenrir/internal/ingress"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	eng := engine.New("FNR")
	book, _ := eng.Book("FNR")
	book.Subscribe(engine.LogObserver{})

	queue := ingress.NewQueue(book)
	go queue.Run(ctx)
	defer queue.Stop()

	go replay(ctx, queue)

	<-ctx.Done()
	log.Info().Msg("fenrirdemo shutting down")
}

func replay(ctx context.Context, queue *ingress.Queue) {
	for _, order := range fixture() {
		if err := queue.Submit(ctx, order); err != nil {
			log.Error().Err(err).Str("orderID", order.OrderID).Msg("submit failed")
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func fixture() []*common.Order {
	price := func(s string) decimal.Decimal {
		d, err := decimal.NewFromString(s)
		if err != nil {
			panic(err)
		}
		return d
	}
	return []*common.Order{
		{OrderID: "1", ClOrdID: "c1", Symbol: "FNR", Side: common.Buy, Price: price("100.00"), Qty: price("10"), Status: common.PendingNew},
		{OrderID: "2", ClOrdID: "c2", Symbol: "FNR", Side: common.Buy, Price: price("99.50"), Qty: price("5"), Status: common.PendingNew},
		{OrderID: "3", ClOrdID: "c3", Symbol: "FNR", Side: common.Sell, Price: price("101.00"), Qty: price("8"), Status: common.PendingNew},
		{OrderID: "4", ClOrdID: "c4", Symbol: "FNR", Side: common.Sell, Price: price("100.00"), Qty: price("12"), Status: common.PendingNew},
	}
}
