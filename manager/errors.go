package manager

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/mt4adm/mt4"
)

// Adapter-originated failures. The SDK is not consulted for these.
var (
	ErrNotInitialized    = errors.New("manager interface not initialized")
	ErrNotConnected      = errors.New("not connected to server")
	ErrNotAuthenticated  = errors.New("not logged in")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("record not found")
	ErrRawAccessDisabled = errors.New("raw interface access disabled")
)

// SDKError is a non-OK return code from a query or session call,
// carrying the SDK's own description for the code.
type SDKError struct {
	Code int
	Desc string
}

func (e *SDKError) Error() string {
	return fmt.Sprintf("sdk failure (code %d): %s", e.Code, e.Desc)
}

// RejectedError is a non-OK return code from a trade transaction.
type RejectedError struct {
	Code int
	Desc string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transaction rejected (code %d): %s", e.Code, e.Desc)
}

// LastError returns the message recorded by the most recent failing
// operation, or the empty string if nothing has failed yet. Read it
// immediately after the failing call; any later call may overwrite it.
func (m *Manager) LastError() string {
	return m.lastErr
}

// fail records an adapter-originated failure in the last-error slot
// and returns it.
func (m *Manager) fail(err error) error {
	m.lastErr = err.Error()
	return err
}

// sdkFail translates a non-OK SDK code, records it and returns the
// typed error. A lost-connection code also demotes the session.
func (m *Manager) sdkFail(code int) error {
	desc := m.describe(code)
	m.lastErr = desc
	if code == mt4.RetNoConnect {
		m.observeConnectionLoss(desc)
	}
	return &SDKError{Code: code, Desc: desc}
}

// rejected is sdkFail for the trade transaction path.
func (m *Manager) rejected(code int) error {
	desc := m.describe(code)
	m.lastErr = desc
	if code == mt4.RetNoConnect {
		m.observeConnectionLoss(desc)
	}
	return &RejectedError{Code: code, Desc: desc}
}

// recordMiss maps a failed single-record fetch to ErrNotFound while
// keeping the raw code and the SDK's description visible. The SDK
// return code cannot, in general, distinguish a miss from a failure.
func (m *Manager) recordMiss(code int) error {
	desc := m.describe(code)
	m.lastErr = desc
	if code == mt4.RetNoConnect {
		m.observeConnectionLoss(desc)
	}
	return fmt.Errorf("%w (code %d): %s", ErrNotFound, code, desc)
}

func (m *Manager) describe(code int) string {
	if m.api == nil {
		return ErrNotInitialized.Error()
	}
	return m.api.ErrorDescription(code)
}
