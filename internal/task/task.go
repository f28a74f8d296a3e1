// Package task runs BIP-38 decryption off the caller's goroutine and hands
// the outcome back through a callback executor.
package task

import (
	"fmt"

	"github.com/TheServat/bip38-crack/bip38"
	"github.com/panjf2000/ants/v2"
)

// WorkerPool executes submitted functions in background goroutines.
type WorkerPool interface {
	Submit(func()) error
}

// Executor runs callbacks on the side that wants to observe results.
type Executor interface {
	Execute(func())
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(func())

func (f ExecutorFunc) Execute(fn func()) { f(fn) }

// Handler receives exactly one call per Decode.
type Handler interface {
	OnSuccess(key *bip38.DecryptedKey)
	OnBadPassphrase()
	// OnError is called for anything that is not a wrong passphrase.
	OnError(err error)
}

// NewPool returns an ants pool of the given size.
func NewPool(size int) (*ants.Pool, error) {
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("could not create worker pool: %w", err)
	}
	return p, nil
}

// DecodeTask decrypts keys on a background pool and delivers the outcome
// to a handler via the callback executor.
type DecodeTask struct {
	background WorkerPool
	callback   Executor
	handler    Handler
	opts       []bip38.Option
}

func NewDecodeTask(background WorkerPool, callback Executor, h Handler, opts ...bip38.Option) *DecodeTask {
	return &DecodeTask{
		background: background,
		callback:   callback,
		handler:    h,
		opts:       opts,
	}
}

// Decode queues the decryption and returns immediately. The returned error
// only reports a failure to queue, in which case no handler is called.
func (t *DecodeTask) Decode(key *bip38.EncryptedKey, passphrase string) error {
	err := t.background.Submit(func() {
		d, err := key.Decrypt(passphrase, t.opts...) // takes time
		switch {
		case err == nil:
			t.callback.Execute(func() { t.handler.OnSuccess(d) })
		case bip38.IsBadPassphrase(err):
			t.callback.Execute(t.handler.OnBadPassphrase)
		default:
			t.callback.Execute(func() { t.handler.OnError(err) })
		}
	})
	if err != nil {
		return fmt.Errorf("could not submit decode task: %w", err)
	}
	return nil
}
