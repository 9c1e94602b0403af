// Package memstore keeps the session state owned by a single goroutine.
// Every read and write is a closure sent over a channel and executed one at
// a time, so closures see a consistent state and need no locks.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrClosed is returned once Close has been called.
	ErrClosed = errors.New("store is closed")
	// ErrBusy is returned when a command cannot be enqueued in time.
	ErrBusy = errors.New("timed out while enqueuing command")
)

// DefaultTimeout bounds how long a caller waits to enqueue a command.
const DefaultTimeout = 2 * time.Second

// command envelopes one unit of work for the store goroutine.
type command[S any] struct {
	fn    func(*S) error
	reply chan error
}

// Store owns a value of type S.
type Store[S any] struct {
	commands  chan command[S]
	closed    chan struct{}
	closeOnce sync.Once
	timeout   time.Duration
	state     S
}

// New starts the owning goroutine with initial as the state. A zero
// timeout selects DefaultTimeout.
func New[S any](initial S, timeout time.Duration) *Store[S] {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	s := &Store[S]{
		// A small buffer keeps bursts of bootstrap commands from blocking.
		commands: make(chan command[S], 32),
		closed:   make(chan struct{}),
		timeout:  timeout,
		state:    initial,
	}
	go s.loop()
	return s
}

func (s *Store[S]) loop() {
	for {
		select {
		case cmd := <-s.commands:
			cmd.reply <- s.run(cmd.fn)
		case <-s.closed:
			return
		}
	}
}

// run executes fn, turning a panic into an error so the loop survives.
func (s *Store[S]) run(fn func(*S) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("store command panicked: %v", r)
		}
	}()
	return fn(&s.state)
}

// Do runs fn against the state on the store goroutine and returns its
// error. ctx only bounds the wait to enqueue; a queued command always
// reports its own result. fn must not retain the pointer or anything reachable from it
// beyond the call; copy out what the caller needs.
func (s *Store[S]) Do(ctx context.Context, fn func(*S) error) error {
	// Buffered so the loop never blocks on a caller that gave up.
	reply := make(chan error, 1)
	cmd := command[S]{fn: fn, reply: reply}

	select {
	case <-s.closed:
		return ErrClosed
	default:
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return ErrClosed
	case <-timer.C:
		return ErrBusy
	}

	// Once queued the command will run, so its outcome is reported even if
	// ctx expires meanwhile.
	select {
	case err := <-reply:
		return err
	case <-s.closed:
		return ErrClosed
	}
}

// Close stops the goroutine. Further calls to Do fail with ErrClosed.
func (s *Store[S]) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}
