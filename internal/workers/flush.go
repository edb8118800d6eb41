package workers

import (
	"context"
	"time"

	"github.com/asig/closed-loop/internal/logger"
)

// flushWorker periodically flushes a write-behind store to disk. It stops
// when its context is cancelled, performing one final flush on the way out
// so shutdown never loses buffered writes.
type flushWorker struct {
	ctx      context.Context
	flusher  Flusher
	interval time.Duration
	logger   *logger.Logger
}

// NewFlushWorker builds a worker that calls flusher.Flush every interval
// until ctx is done.
func NewFlushWorker(ctx context.Context, flusher Flusher, interval time.Duration, log *logger.Logger) Worker {
	return &flushWorker{ctx: ctx, flusher: flusher, interval: interval, logger: log}
}

func (w *flushWorker) Run() {
	go w.loop()
}

func (w *flushWorker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info().Dur("interval", w.interval).Msg("flush worker started")

	for {
		select {
		case <-ticker.C:
			w.flush()
		case <-w.ctx.Done():
			w.flush()
			w.logger.Info().Msg("flush worker stopped")
			return
		}
	}
}

func (w *flushWorker) flush() {
	if err := w.flusher.Flush(); err != nil {
		w.logger.Error().Err(err).Msg("error flushing store")
	}
}
