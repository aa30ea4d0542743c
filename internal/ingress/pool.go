// Package ingress funnels concurrent submit/cancel/replace requests
// through a single consuming goroutine ahead of the matching core: an
// OrderBook performs no locking of its own, so every producer hands
// its request to this queue instead of calling the book directly.
// It adapts the exchange server's worker-pool pattern — there a pool
// of connection handlers pulling accepted sockets off a channel, here
// a single matching consumer pulling commands off a channel — so the
// fan-in point, not the book, is what concurrent callers actually see
// as safe.
package ingress

import (
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

const taskChanSize = 100

type workerFunction = func(t *tomb.Tomb, task any) error

type workerPool struct {
	tasks chan any // pending commands for the consumer
}

func newWorkerPool() workerPool {
	return workerPool{
		tasks: make(chan any, taskChanSize),
	}
}

// setup runs the single consumer under t, blocking on pool.tasks
// until t is killed. Unlike a pool sized for N>1, there is no worker
// to respawn here, so this is a plain receive loop rather than a
// spin-and-spawn supervisor.
func (pool *workerPool) setup(t *tomb.Tomb, work workerFunction) {
	log.Info().Msg("ingress: worker starting")
	t.Go(func() error {
		for {
			select {
			case <-t.Dying():
				return nil
			case task := <-pool.tasks:
				if err := work(t, task); err != nil {
					log.Error().Err(err).Msg("ingress: worker exiting")
					return err
				}
			}
		}
	})
}
