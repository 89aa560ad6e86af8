package pipeline

import (
	"context"
	"fmt"
	"sync"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/bioflavor/tools/pkg/flavorgen/application/service"
)

func NewRunner(logger applogger.Logger) service.PipelineRunner {
	return &runner{
		logger: logger,
		active: make(map[string]*run),
	}
}

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
}

type runner struct {
	logger applogger.Logger

	mutex  sync.Mutex
	active map[string]*run
}

// Run executes f keyed by ref. A run already in flight for the same ref is
// cancelled and drained before f starts; runs for distinct refs do not
// interact.
func (r *runner) Run(ctx context.Context, ref string, f func(ctx context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	current := &run{cancel: cancel, done: make(chan struct{})}
	defer close(current.done)

	r.mutex.Lock()
	previous := r.active[ref]
	r.active[ref] = current
	r.mutex.Unlock()

	defer func() {
		r.mutex.Lock()
		if r.active[ref] == current {
			delete(r.active, ref)
		}
		r.mutex.Unlock()
	}()

	if previous != nil {
		r.logger.Info(fmt.Sprintf("superseding in-flight run for ref \"%v\"", ref))
		previous.cancel()
		<-previous.done
	}

	err := runCtx.Err()
	if err != nil {
		return err
	}
	return f(runCtx)
}
