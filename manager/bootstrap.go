package manager

import "sync"

// The networking substrate is process-wide. Several adapter instances
// may coexist, so acquisition is refcounted: the first acquire runs
// the real startup, the last release runs the real cleanup. All
// instances are expected to share one Bootstrap implementation.
var (
	bootMu    sync.Mutex
	bootCount int
)

func acquireBootstrap(b interface{ Startup() error }) error {
	bootMu.Lock()
	defer bootMu.Unlock()

	if bootCount == 0 {
		if err := b.Startup(); err != nil {
			return err
		}
	}
	bootCount++
	return nil
}

func releaseBootstrap(b interface{ Cleanup() }) {
	bootMu.Lock()
	defer bootMu.Unlock()

	if bootCount == 0 {
		return
	}
	bootCount--
	if bootCount == 0 {
		b.Cleanup()
	}
}
