package store

import (
	"context"
	"sync"

	"github.com/LovationAdmin/wealth-sync/utils"
)

// DefaultHydration is loaded on sign-in. Assets and debts load on demand
// unless configured otherwise.
var DefaultHydration = []string{"profile", "wallets", "transactions"}

// FetchFunc loads one resource for an owner.
type FetchFunc func(ctx context.Context, ownerID string) error

// Coordinator triggers the initial fetches once per distinct identity. It is
// keyed on the identity value, so repeated notifications for the same user
// are no-ops however often they arrive.
type Coordinator struct {
	set      []string
	fetchers map[string]FetchFunc

	mu      sync.Mutex
	current string
}

func NewCoordinator(set []string, fetchers map[string]FetchFunc) *Coordinator {
	c := &Coordinator{fetchers: fetchers}
	seen := map[string]bool{}
	for _, name := range set {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := fetchers[name]; !ok {
			utils.SafeWarn("[Hydration] unknown resource %q ignored", name)
			continue
		}
		c.set = append(c.set, name)
	}
	return c
}

func (c *Coordinator) Resources() []string {
	return append([]string(nil), c.set...)
}

// OnIdentity hydrates the configured resources for userID and waits for them.
// It reports whether hydration ran. An empty userID clears the key without
// touching any store. Fetch failures stay in the stores' own state.
func (c *Coordinator) OnIdentity(ctx context.Context, userID string) bool {
	c.mu.Lock()
	if userID == "" {
		c.current = ""
		c.mu.Unlock()
		return false
	}
	if userID == c.current {
		c.mu.Unlock()
		return false
	}
	c.current = userID
	c.mu.Unlock()

	utils.SafeInfo("[Hydration] hydrating %v for %s", c.set, utils.MaskID(userID))

	var wg sync.WaitGroup
	for _, name := range c.set {
		wg.Add(1)
		go func(name string, fetch FetchFunc) {
			defer wg.Done()
			if err := fetch(ctx, userID); err != nil {
				utils.SafeWarn("[Hydration] %s failed: %v", name, err)
			}
		}(name, c.fetchers[name])
	}
	wg.Wait()
	return true
}
