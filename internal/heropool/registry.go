package heropool

import (
	"context"
	"sync"

	"launchpad/internal/logging"
)

// Claimer assigns an id from pool for key and records it as used by owner.
// Claims are idempotent per owner: claiming again returns the same id while it
// is still a pool member.
type Claimer interface {
	Claim(ctx context.Context, pool Pool, key, owner string) (string, error)
}

// Stable assigns without tracking use, so different keys may share an id.
type Stable struct{}

func (Stable) Claim(_ context.Context, pool Pool, key, _ string) (string, error) {
	return Assign(pool, key, nil), nil
}

// Registry is the single in-process owner of the used set.
type Registry struct {
	mu     sync.Mutex
	used   UsedSet
	owners map[string]string
	logger logging.Logger
}

// NewRegistry returns a registry seeded with already claimed ids.
func NewRegistry(claimed ...string) *Registry {
	return &Registry{
		used:   NewUsedSet(claimed...),
		owners: make(map[string]string),
		logger: logging.NewComponentLogger("heropool"),
	}
}

// Claim assigns and records an id atomically relative to other claims.
func (r *Registry) Claim(ctx context.Context, pool Pool, key, owner string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner != "" {
		if id, ok := r.owners[owner]; ok && pool.Contains(id) {
			return id, nil
		}
	}

	id := Assign(pool, key, r.used)
	if r.used.Has(id) {
		r.logger.Warn("Hero pool of %d exhausted, reusing %s for %s", len(pool), id, owner)
	}
	r.used.Add(id)
	if owner != "" {
		r.owners[owner] = id
	}
	return id, nil
}

// Used returns a snapshot of claimed ids.
func (r *Registry) Used() UsedSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.used.Clone()
}
