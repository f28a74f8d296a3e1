package task

import (
	"context"
)

// Loop is an Executor that runs callbacks one by one on the goroutine
// calling Run.
type Loop struct {
	queue chan func()
}

func NewLoop(size int) *Loop {
	return &Loop{queue: make(chan func(), size)}
}

// Execute queues fn. It blocks while the queue is full.
func (l *Loop) Execute(fn func()) {
	l.queue <- fn
}

// Run executes queued callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// RunOnce executes a single callback, waiting for one if needed.
func (l *Loop) RunOnce(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case fn := <-l.queue:
		fn()
		return true
	}
}
