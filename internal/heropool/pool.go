package heropool

import (
	"errors"
	"strings"
)

// ErrEmptyPool is returned when a pool would contain no usable ids.
var ErrEmptyPool = errors.New("heropool: pool is empty")

// Pool is an ordered list of candidate resource ids.
type Pool []string

// NewPool trims ids, drops blanks and duplicates, and keeps first-seen order.
func NewPool(ids ...string) (Pool, error) {
	seen := make(map[string]struct{}, len(ids))
	pool := make(Pool, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		pool = append(pool, id)
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	return pool, nil
}

// Contains reports whether id is a member of the pool.
func (p Pool) Contains(id string) bool {
	for _, candidate := range p {
		if candidate == id {
			return true
		}
	}
	return false
}

// UsedSet records ids already claimed. It is read-only during Assign.
type UsedSet map[string]struct{}

// NewUsedSet builds a set from ids.
func NewUsedSet(ids ...string) UsedSet {
	set := make(UsedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (u UsedSet) Has(id string) bool {
	_, ok := u[id]
	return ok
}

func (u UsedSet) Add(id string) {
	u[id] = struct{}{}
}

// Clone returns an independent copy.
func (u UsedSet) Clone() UsedSet {
	out := make(UsedSet, len(u))
	for id := range u {
		out[id] = struct{}{}
	}
	return out
}
