package manager

// State is the adapter's view of the session lifecycle. States are
// ordered: Authenticated implies Connected implies Initialized.
// Faulted is terminal and means the native interface could not be
// created; every operation fails until the adapter is rebuilt.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateConnected
	StateAuthenticated
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateConnected:
		return "connected"
	case StateAuthenticated:
		return "authenticated"
	case StateFaulted:
		return "faulted"
	}
	return "unknown"
}
