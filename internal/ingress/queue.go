package ingress

import (
	"context"

	"fenrir/internal/common"
	"fenrir/internal/engine"

	"github.com/shopspring/decimal"
	tomb "gopkg.in/tomb.v2"
)

type commandKind int

const (
	submitCommand commandKind = iota
	cancelCommand
	replaceCommand
)

// command is the task type handed through the pool: one matching
// operation plus a channel its caller blocks on until it has been
// applied.
type command struct {
	kind     commandKind
	order    *common.Order
	newPrice decimal.Decimal
	newQty   decimal.Decimal
	done     chan struct{}
}

// Queue is a single-ingress command queue in front of an OrderBook.
// Any number of producer goroutines may call Submit/Cancel/Replace
// concurrently; a single consuming goroutine applies them to book one
// at a time, in the order they were enqueued.
type Queue struct {
	book *engine.OrderBook
	pool workerPool
	t    *tomb.Tomb
}

// NewQueue constructs a Queue in front of book. Call Run in its own
// goroutine to start draining it.
func NewQueue(book *engine.OrderBook) *Queue {
	return &Queue{
		book: book,
		pool: newWorkerPool(),
	}
}

// Run starts the single consuming goroutine and blocks until ctx is
// canceled or Stop is called. Callers invoke it as `go queue.Run(ctx)`.
func (q *Queue) Run(ctx context.Context) {
	t, ctx := tomb.WithContext(ctx)
	q.t = t
	q.pool.setup(t, q.apply)
	<-t.Dead()
}

// Stop signals the consumer to exit and waits for it to finish. It is
// a no-op if Run has not yet been called.
func (q *Queue) Stop() error {
	if q.t == nil {
		return nil
	}
	q.t.Kill(nil)
	return q.t.Wait()
}

func (q *Queue) apply(_ *tomb.Tomb, task any) error {
	cmd := task.(command)
	switch cmd.kind {
	case submitCommand:
		q.book.SubmitOrder(cmd.order)
	case cancelCommand:
		q.book.CancelOrder(cmd.order)
	case replaceCommand:
		q.book.ReplaceOrder(cmd.order, cmd.newPrice, cmd.newQty)
	}
	close(cmd.done)
	return nil
}

// Submit hands order to the consumer and blocks until it has been
// applied to the book.
func (q *Queue) Submit(ctx context.Context, order *common.Order) error {
	return q.enqueue(ctx, command{kind: submitCommand, order: order})
}

// Cancel hands a cancel request for order to the consumer and blocks
// until applied.
func (q *Queue) Cancel(ctx context.Context, order *common.Order) error {
	return q.enqueue(ctx, command{kind: cancelCommand, order: order})
}

// Replace hands a replace request to the consumer and blocks until
// applied.
func (q *Queue) Replace(ctx context.Context, order *common.Order, newPrice, newQty decimal.Decimal) error {
	return q.enqueue(ctx, command{kind: replaceCommand, order: order, newPrice: newPrice, newQty: newQty})
}

func (q *Queue) enqueue(ctx context.Context, cmd command) error {
	cmd.done = make(chan struct{})
	select {
	case q.pool.tasks <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-cmd.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
