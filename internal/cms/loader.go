package cms

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle of the loader's cache.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

const loadKey = "content"

// staleRetry bounds how long stale content is served before the providers are tried again.
const staleRetry = 30 * time.Second

// Loader is a memoized content cache. Concurrent callers during a load share the same
// in-flight call; a ready cache is served until its TTL expires.
type Loader struct {
	providers []Provider
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	status  Status
	content Content
	hasData bool
	err     error
	expires time.Time
}

// LoaderOption customises a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger used for provider failures.
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// NewLoader builds a loader that tries providers in order. Callers usually end the chain
// with Fallback().
func NewLoader(ttl time.Duration, providers []Provider, opts ...LoaderOption) *Loader {
	if ttl <= 0 {
		ttl = time.Minute
	}
	l := &Loader{
		providers: providers,
		ttl:       ttl,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Status returns the current cache state.
func (l *Loader) Status() Status {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status
}

// Err returns the error of the last failed load, if any.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Content returns cached content, loading it when the cache is empty or stale.
func (l *Loader) Content(ctx context.Context) (Content, error) {
	if c, ok := l.cached(); ok {
		return c, nil
	}

	// The shared load must not die with the first caller's request.
	ch := l.group.DoChan(loadKey, func() (any, error) {
		if c, ok := l.cached(); ok {
			return c, nil
		}
		return l.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return Content{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Content{}, res.Err
		}
		return cloneContent(res.Val.(Content)), nil
	}
}

func (l *Loader) cached() (Content, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.status == StatusReady && l.now().Before(l.expires) {
		return cloneContent(l.content), true
	}
	return Content{}, false
}

// Invalidate drops the cached content so the next call reloads it.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.expires = time.Time{}
}

func (l *Loader) load(ctx context.Context) (Content, error) {
	l.mu.Lock()
	l.status = StatusLoading
	l.mu.Unlock()

	var lastErr error
	for i, p := range l.providers {
		c, err := p.LoadContent(ctx)
		if err == nil {
			err = c.normalize()
		}
		if err != nil {
			l.logger.Warn("content provider failed", zap.Int("provider", i), zap.Error(err))
			lastErr = err
			continue
		}
		if c.LoadedAt.IsZero() {
			c.LoadedAt = l.now().UTC()
		}
		l.mu.Lock()
		l.status = StatusReady
		l.content = c
		l.hasData = true
		l.err = nil
		l.expires = l.now().Add(l.ttl)
		l.mu.Unlock()
		l.logger.Debug("content loaded", zap.String("source", c.Source))
		return cloneContent(c), nil
	}

	if lastErr == nil {
		lastErr = ErrNotFound
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = lastErr
	if l.hasData {
		// stale content stays ready until the next retry
		l.status = StatusReady
		l.expires = l.now().Add(min(l.ttl, staleRetry))
		return cloneContent(l.content), nil
	}
	l.status = StatusError
	return Content{}, fmt.Errorf("cms: load content: %w", lastErr)
}
