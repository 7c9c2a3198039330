// Package txn abstracts the unit of work a service operation runs in.
package txn

import (
	"context"
	"sync"
)

// Manager runs fn atomically. Repositories resolve the active unit of work from ctx.
type Manager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Inline runs fn directly; used with adapters that have no transactional store.
// Releases registered through OnFinish run once the outermost call returns.
type Inline struct{}

func (Inline) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(unitKey{}).(*unit); ok {
		return fn(ctx)
	}
	u := &unit{}
	defer u.finish()
	return fn(context.WithValue(ctx, unitKey{}, u))
}

// OnFinish schedules release for the end of the inline unit of work bound to ctx.
// It reports false, without scheduling anything, when ctx carries none.
func OnFinish(ctx context.Context, release func()) bool {
	u, ok := ctx.Value(unitKey{}).(*unit)
	if !ok || release == nil {
		return false
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.releases = append(u.releases, release)
	return true
}

// OrInline returns m, or Inline when m is nil.
func OrInline(m Manager) Manager {
	if m == nil {
		return Inline{}
	}
	return m
}

type unitKey struct{}

type unit struct {
	mu       sync.Mutex
	releases []func()
}

func (u *unit) finish() {
	u.mu.Lock()
	releases := u.releases
	u.releases = nil
	u.mu.Unlock()
	for i := len(releases) - 1; i >= 0; i-- {
		releases[i]()
	}
}
