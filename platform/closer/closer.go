package closer

import (
	"context"
	"sync"

	"github.com/facreativefirm/billing-portal/platform/logger"
)

type closeFn func(ctx context.Context) error

type namedCloser struct {
	name string
	fn   closeFn
}

var (
	mu      sync.Mutex
	closers []namedCloser
	log     *logger.Logger
)

func SetLogger(l *logger.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// AddNamed registers a shutdown hook. Hooks run in reverse registration
// order, so dependencies close after their dependents.
func AddNamed(name string, fn closeFn) {
	mu.Lock()
	defer mu.Unlock()
	closers = append(closers, namedCloser{name: name, fn: fn})
}

func CloseAll(ctx context.Context) error {
	mu.Lock()
	toClose := make([]namedCloser, len(closers))
	copy(toClose, closers)
	closers = nil
	mu.Unlock()

	var firstErr error
	for i := len(toClose) - 1; i >= 0; i-- {
		c := toClose[i]
		if err := c.fn(ctx); err != nil {
			if log != nil {
				log.Error(ctx, "failed to close resource",
					logger.String("resource", c.name),
					logger.ErrorF(err),
				)
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if log != nil {
			log.Info(ctx, "resource closed", logger.String("resource", c.name))
		}
	}

	return firstErr
}
