package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/haifuri/organize/internal/config"
	"github.com/haifuri/organize/internal/fileops"
)

// Resolution is the outcome of resolving one requested destination.
type Resolution struct {
	Path      string // Final destination (the requested path when Skip is set).
	Skip      bool   // Target is taken and the policy is skip.
	Overwrite bool   // Target is taken and will be replaced.
	Suffixed  bool   // Path is a " - dupN" variant of the request.
}

// CollisionResolver tracks destinations claimed by sources during a run and
// resolves conflicts with files already on disk according to a policy.
// All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	policy   config.CollisionPolicy
	owners   map[string]string // destination → source that claimed it
	counters map[string]int    // requested destination → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver(policy config.CollisionPolicy) *CollisionResolver {
	return &CollisionResolver{
		policy:   policy,
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Policy returns the resolver's collision policy.
func (cr *CollisionResolver) Policy() config.CollisionPolicy { return cr.policy }

// Resolve returns where source should go when requested is the desired
// destination. A destination is taken when another source claimed it earlier
// in the run or when a different file already exists there.
func (cr *CollisionResolver) Resolve(source, requested string) Resolution {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.taken(source, requested) {
		cr.owners[requested] = source
		return Resolution{Path: requested}
	}

	switch cr.policy {
	case config.CollisionOverwrite:
		cr.owners[requested] = source
		return Resolution{Path: requested, Overwrite: true}
	case config.CollisionSuffix:
		dir := filepath.Dir(requested)
		base := filepath.Base(requested)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		counter := cr.counters[requested]
		if counter == 0 {
			counter = 1
		}
		for {
			candidate := filepath.Join(dir, fmt.Sprintf("%s - dup%d%s", stem, counter, ext))
			if !cr.taken(source, candidate) {
				cr.counters[requested] = counter + 1
				cr.owners[candidate] = source
				return Resolution{Path: candidate, Suffixed: true}
			}
			counter++
		}
	default:
		return Resolution{Path: requested, Skip: true}
	}
}

// Release drops source's claim on dest, e.g. after the move failed.
func (cr *CollisionResolver) Release(source, dest string) {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	if cr.owners[dest] == source {
		delete(cr.owners, dest)
	}
}

func (cr *CollisionResolver) taken(source, dest string) bool {
	if owner, ok := cr.owners[dest]; ok {
		return owner != source
	}
	return fileops.Exists(dest) && !fileops.SameFile(source, dest)
}
