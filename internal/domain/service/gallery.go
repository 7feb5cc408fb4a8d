package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

// Gallery owns the state the pipeline runs over: the last fetched remote
// list, the include-remote toggle and whether a fetch is still in flight.
type Gallery struct {
	local   []entity.ProjectEntry
	user    string
	fetcher ports.RemoteFetcher
	logger  *zap.Logger

	mu            sync.RWMutex
	remote        []entity.ProjectEntry
	includeRemote bool
	loading       bool
	started       bool
	closed        bool
	cancel        context.CancelFunc
	done          chan struct{}
}

// NewGallery creates a gallery over the local catalog.
// Remote inclusion defaults to on only when user is set.
func NewGallery(local []entity.ProjectEntry, user string, fetcher ports.RemoteFetcher, logger *zap.Logger) *Gallery {
	if logger == nil {
		logger = zap.NewNop()
	}
	done := make(chan struct{})
	close(done)

	return &Gallery{
		local:         Merge(local, nil, false),
		user:          user,
		fetcher:       fetcher,
		logger:        logger,
		includeRemote: user != "",
		done:          done,
	}
}

// Load starts the single background fetch of remote entries.
// Later calls are no-ops.
func (g *Gallery) Load(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started || g.closed {
		return
	}
	g.started = true

	if g.user == "" || g.fetcher == nil {
		return
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.loading = true
	g.done = make(chan struct{})

	go g.fetch(fetchCtx, g.done)
}

func (g *Gallery) fetch(ctx context.Context, done chan struct{}) {
	defer close(done)

	entries := g.fetcher.Fetch(ctx, g.user)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false

	if g.closed || ctx.Err() != nil {
		g.logger.Debug("Discarding remote projects fetched after close",
			zap.Int("count", len(entries)))
		return
	}
	g.remote = entries
}

// Wait blocks until the background fetch has finished or ctx is done
func (g *Gallery) Wait(ctx context.Context) error {
	g.mu.RLock()
	done := g.done
	g.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels an in-flight fetch; its result is never applied
func (g *Gallery) Close() {
	g.mu.Lock()
	g.closed = true
	cancel := g.cancel
	done := g.done
	g.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-done
}

// SetIncludeRemote toggles whether remote entries join the merged catalog
func (g *Gallery) SetIncludeRemote(include bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.includeRemote = include
}

// IncludeRemote reports the current toggle value
func (g *Gallery) IncludeRemote() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.includeRemote
}

// RemoteCount returns the number of remote entries currently held
func (g *Gallery) RemoteCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.remote)
}

// View runs the pipeline with the current state and the given selection
func (g *Gallery) View(sel entity.Selection) entity.GalleryView {
	return g.ViewWith(sel, g.IncludeRemote())
}

// ViewWith runs the pipeline with an explicit include-remote value
func (g *Gallery) ViewWith(sel entity.Selection, includeRemote bool) entity.GalleryView {
	g.mu.RLock()
	remote := g.remote
	loading := g.loading
	g.mu.RUnlock()

	view := Run(g.local, remote, includeRemote, sel)
	view.Loading = loading && includeRemote
	return view
}
