package tenants

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"runtime"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/llmaniac/beacon/pkg/lifecycle"
)

// Container ids name directories on disk; restrict them to a safe
// character set to rule out path traversal.
var safeContainerID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// System defines the public contract for the tenant configuration store.
type System interface {
	Handler() *Handler

	// Find returns the validated configuration for a container id,
	// loading and caching it on first use.
	Find(ctx context.Context, containerID string) (*TenantConfig, error)

	// Start registers a startup hook that warms the cache from disk.
	Start(lc *lifecycle.Coordinator) error
}

type store struct {
	dir      string
	logger   *slog.Logger
	validate *validator.Validate

	mu    sync.RWMutex
	cache map[string]*TenantConfig
}

// New creates a tenant configuration store rooted at dir.
func New(dir string, logger *slog.Logger) System {
	return &store{
		dir:      dir,
		logger:   logger.With("system", "tenants"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cache:    make(map[string]*TenantConfig),
	}
}

func (s *store) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Find loads lazily and caches for the process lifetime. The cache has
// no TTL and no eviction: config data is small and the container-id
// space is operator-controlled, so growth is bounded. Concurrent first
// loads for the same id may duplicate work; last writer wins, which is
// safe because the backing files are immutable while the process runs.
func (s *store) Find(ctx context.Context, containerID string) (*TenantConfig, error) {
	if !safeContainerID.MatchString(containerID) {
		return nil, fmt.Errorf("%w: unsafe container id", ErrNotFound)
	}

	s.mu.RLock()
	cached, ok := s.cache[containerID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	cfg, err := load(s.dir, containerID, s.validate)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[containerID] = cfg
	s.mu.Unlock()

	s.logger.Info("tenant configuration loaded",
		"container_id", containerID,
		"events", len(cfg.Events),
		"allowed_origins", len(cfg.AllowedOrigins),
	)
	return cfg, nil
}

// Start warms the cache by loading every tenant directory concurrently.
// Invalid tenants are logged and skipped; they fail per-request later
// with the same error they would have produced here.
func (s *store) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			s.logger.Warn("tenant directory unreadable, cache starts cold",
				"dir", s.dir, "error", err)
			return
		}

		g, ctx := errgroup.WithContext(lc.Context())
		g.SetLimit(preloadWorkers(len(entries)))

		for _, entry := range entries {
			if !entry.IsDir() || !safeContainerID.MatchString(entry.Name()) {
				continue
			}

			g.Go(func() error {
				if _, err := s.Find(ctx, entry.Name()); err != nil {
					s.logger.Warn("tenant preload failed",
						"container_id", entry.Name(), "error", err)
				}
				return nil
			})
		}

		g.Wait()
		s.logger.Info("tenant preload complete", "tenants", len(s.snapshot()))
	})

	return nil
}

func (s *store) snapshot() map[string]*TenantConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*TenantConfig, len(s.cache))
	for id, cfg := range s.cache {
		out[id] = cfg
	}
	return out
}

func preloadWorkers(tenantCount int) int {
	return max(min(runtime.NumCPU(), tenantCount), 1)
}
