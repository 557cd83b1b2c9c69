package sim

import (
	"errors"
	"sync"

	"github.com/rustyeddy/mt4adm/mt4"
)

// Factory hands out the simulated manager interface, honoring the API
// version check the native factory performs.
type Factory struct {
	srv     *Server
	invalid bool
}

func NewFactory(srv *Server) *Factory {
	return &Factory{srv: srv}
}

// NewInvalidFactory builds a factory that fails validation, for
// exercising the adapter's Faulted path.
func NewInvalidFactory() *Factory {
	return &Factory{invalid: true}
}

func (f *Factory) IsValid() bool {
	return !f.invalid && f.srv != nil
}

func (f *Factory) Create(version int) mt4.ManagerInterface {
	if !f.IsValid() || version != mt4.APIVersion {
		return nil
	}
	return f.srv
}

// Bootstrap is a counting stand-in for the platform networking pair.
type Bootstrap struct {
	mu          sync.Mutex
	FailStartup bool
	startups    int
	cleanups    int
}

func (b *Bootstrap) Startup() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailStartup {
		return errors.New("simulated bootstrap failure")
	}
	b.startups++
	return nil
}

func (b *Bootstrap) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cleanups++
}

func (b *Bootstrap) Startups() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.startups
}

func (b *Bootstrap) Cleanups() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cleanups
}
