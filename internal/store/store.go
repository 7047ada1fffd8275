// Package store persists the marketplace document: the four record
// collections kept together and rewritten in full on every change.
//
// Storage is pluggable through Backend. Writers go through Store.Update,
// which serializes the load → modify → save cycle so that concurrent
// submissions cannot overwrite each other.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jobmate/marketplace-service/internal/model"
)

// ─── Backend contracts ───────────────────────────────────────────────────────

// Backend reads and writes the serialized document as a whole.
type Backend interface {
	// Read returns the stored bytes, or ErrNotExist if nothing is stored.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored bytes.
	Write(ctx context.Context, data []byte) error
	// Name identifies the storage location in logs and errors.
	Name() string
}

// Locker is implemented by backends shared between processes. Lock blocks
// until the caller holds exclusive write access or ctx is done, and returns
// the function that releases it.
type Locker interface {
	Lock(ctx context.Context) (func(), error)
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store loads and saves the document through a Backend.
type Store struct {
	backend Backend
	log     *zap.Logger
	mu      sync.Mutex
}

// New returns a Store over backend.
func New(backend Backend, log *zap.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// Location names the backing storage.
func (s *Store) Location() string { return s.backend.Name() }

// Load returns the stored document, or a fresh one with four empty
// collections when nothing has been stored yet.
func (s *Store) Load(ctx context.Context) (*model.Document, error) {
	data, err := s.backend.Read(ctx)
	if errors.Is(err, ErrNotExist) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.backend.Name(), err)
	}
	return Decode(s.backend.Name(), data)
}

// Save overwrites the stored document with doc. doc is normalized in place
// so that it equals what a following Load returns.
func (s *Store) Save(ctx context.Context, doc *model.Document) error {
	doc.Normalize()
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("%w (%s): %w", ErrWrite, s.backend.Name(), err)
	}
	return nil
}

// Update runs fn on the current document and saves the result. The whole
// cycle holds the store's mutex and, for shared backends, the backend lock.
// If fn returns an error nothing is written.
func (s *Store) Update(ctx context.Context, fn func(doc *model.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.backend.(Locker); ok {
		start := time.Now()
		unlock, err := l.Lock(ctx)
		if err != nil {
			return fmt.Errorf("lock %s: %w", s.backend.Name(), err)
		}
		defer unlock()
		if waited := time.Since(start); waited > time.Second {
			s.log.Warn("slow document lock", zap.String("backend", s.backend.Name()), zap.Duration("waited", waited))
		}
	}

	doc, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.Save(ctx, doc)
}

// keepAlive calls renew every interval until the returned stop function is
// called. stop waits for an in-flight renewal to finish. Lease locks use it
// so that a slow update cycle does not outlive its lease.
func keepAlive(interval time.Duration, renew func(ctx context.Context) error) (stop func()) {
	if interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				// A failed renewal is retried on the next tick.
				_ = renew(ctx)
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// waitRetry sleeps for d or until ctx is done.
func waitRetry(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
