// Package manager wraps the MT4 Manager API in a small, resource-safe
// adapter for back-office use: session lifecycle, directory queries,
// margin inspection, online presence and broker-side trade
// transactions.
//
// A Manager is not safe for concurrent use. Operations issued from a
// single caller complete in call order; callers that need concurrency
// must serialize access themselves.
package manager

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/rustyeddy/mt4adm/internal/id"
	"github.com/rustyeddy/mt4adm/journal"
	"github.com/rustyeddy/mt4adm/mt4"
)

// Manager owns exactly one manager interface and releases it exactly
// once, in Close.
type Manager struct {
	factory mt4.ManagerFactory
	boot    mt4.Bootstrap
	booted  bool
	api     mt4.ManagerInterface

	state  State
	server string
	login  int

	lastErr string
	log     *slog.Logger
	jrnl    journal.Journal

	allowRaw bool
}

type Option func(*Manager)

// WithLogger routes the adapter's diagnostics to l. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithJournal records successful transactions and session events in j.
// The journal is best-effort: a journal write failure is logged and
// never fails the operation that triggered it.
func WithJournal(j journal.Journal) Option {
	return func(m *Manager) { m.jrnl = j }
}

// WithBootstrap sets the platform networking substrate acquired for
// the adapter's lifetime. Default: none required.
func WithBootstrap(b mt4.Bootstrap) Option {
	return func(m *Manager) { m.boot = b }
}

// WithRawAccess enables RawInterface. Raw access voids every ownership
// and state guarantee this adapter makes; opt in only for operations
// the adapter does not model.
func WithRawAccess() Option {
	return func(m *Manager) { m.allowRaw = true }
}

// New builds an adapter over the given factory. Construction never
// fails hard: on a bootstrap failure the session stays Uninitialized,
// on a factory failure it is Faulted, and every subsequent operation
// reports the problem through its error return and the last-error
// slot. Check IsValid or State after construction.
func New(factory mt4.ManagerFactory, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		state:   StateUninitialized,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.boot != nil {
		if err := acquireBootstrap(m.boot); err != nil {
			m.lastErr = "platform bootstrap failed: " + err.Error()
			m.log.Error("platform bootstrap failed", "error", err)
			return m
		}
		m.booted = true
	}

	if factory == nil || !factory.IsValid() {
		m.state = StateFaulted
		m.lastErr = ErrNotInitialized.Error()
		m.log.Error("manager factory invalid")
		return m
	}
	m.api = factory.Create(mt4.APIVersion)
	if m.api == nil {
		m.state = StateFaulted
		m.lastErr = ErrNotInitialized.Error()
		m.log.Error("manager interface creation failed", "version", mt4.APIVersion)
		return m
	}

	m.state = StateInitialized
	return m
}

// Close tears the adapter down: live connections are dropped, the
// manager interface is released exactly once and the bootstrap
// refcount is returned. Calling Close while another call is in flight
// is forbidden.
func (m *Manager) Close() error {
	if m.api != nil {
		if m.state >= StateConnected && m.state != StateFaulted {
			// Disconnect may fail; Release still runs.
			m.api.Disconnect()
			m.journalSession("disconnect")
		}
		m.api.Release()
		m.api = nil
	}
	if m.booted {
		releaseBootstrap(m.boot)
		m.booted = false
	}
	m.state = StateUninitialized
	m.login = 0
	m.server = ""
	return nil
}

// IsValid reports whether the underlying manager interface exists.
func (m *Manager) IsValid() bool { return m.api != nil }

// State returns the adapter's lifecycle state.
func (m *Manager) State() State { return m.state }

// Server returns the endpoint label of the current connection.
func (m *Manager) Server() string { return m.server }

// CurrentLogin returns the authenticated manager login, or zero.
func (m *Manager) CurrentLogin() int { return m.login }

// Connect establishes the session to the given server endpoint.
func (m *Manager) Connect(ctx context.Context, server string) error {
	_ = ctx // calls run to SDK completion; no cancellation at this layer
	if m.api == nil {
		return m.fail(ErrNotInitialized)
	}
	if code := m.api.Connect(server); code != mt4.RetOK {
		return m.sdkFail(code)
	}
	m.state = StateConnected
	m.server = server
	m.log.Info("connected", "server", server)
	m.journalSession("connect")
	return nil
}

// Login authenticates the manager account on the connected server.
func (m *Manager) Login(ctx context.Context, login int, password string) error {
	_ = ctx
	if m.api == nil {
		return m.fail(ErrNotInitialized)
	}
	if m.state < StateConnected {
		return m.fail(ErrNotConnected)
	}
	if code := m.api.Login(login, password); code != mt4.RetOK {
		return m.sdkFail(code)
	}
	m.state = StateAuthenticated
	m.login = login
	m.log.Info("logged in", "login", login)
	m.journalSession("login")
	return nil
}

// Disconnect drops the session and clears the login. It is a no-op
// when not connected.
func (m *Manager) Disconnect() {
	if m.api == nil || m.state < StateConnected {
		return
	}
	m.api.Disconnect()
	m.journalSession("disconnect")
	m.state = StateInitialized
	m.login = 0
	m.log.Info("disconnected", "server", m.server)
	m.server = ""
}

// IsConnected reports whether the adapter believes it is connected and
// the SDK confirms it. A denial from the SDK is treated as an observed
// connection loss and demotes the session.
func (m *Manager) IsConnected() bool {
	if m.api == nil || m.state < StateConnected || m.state == StateFaulted {
		return false
	}
	if !m.api.IsConnected() {
		m.observeConnectionLoss("connection to server lost")
		return false
	}
	return true
}

// IsLoggedIn reflects adapter state only; the SDK is not polled.
func (m *Manager) IsLoggedIn() bool { return m.state == StateAuthenticated }

// ServerTime returns the broker server clock in seconds since epoch.
func (m *Manager) ServerTime(ctx context.Context) (int64, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return 0, err
	}
	return m.api.ServerTime(), nil
}

// RawInterface returns the underlying manager interface for advanced
// operations the adapter does not model. It is available only when the
// adapter was built with WithRawAccess. Callers inherit every SDK
// convention, including MemFree for query buffers.
func (m *Manager) RawInterface() (mt4.ManagerInterface, error) {
	if !m.allowRaw {
		return nil, m.fail(ErrRawAccessDisabled)
	}
	if m.api == nil {
		return nil, m.fail(ErrNotInitialized)
	}
	return m.api, nil
}

// requireAuth gates every query and transaction on the session state.
// It never mutates state.
func (m *Manager) requireAuth() error {
	switch {
	case m.api == nil:
		return m.fail(ErrNotInitialized)
	case m.state < StateConnected || m.state == StateFaulted:
		return m.fail(ErrNotConnected)
	case m.state < StateAuthenticated:
		return m.fail(ErrNotAuthenticated)
	}
	return nil
}

func (m *Manager) observeConnectionLoss(desc string) {
	if m.state >= StateConnected && m.state != StateFaulted {
		m.state = StateInitialized
		m.login = 0
		m.log.Warn("connection loss observed", "server", m.server, "cause", desc)
	}
	m.lastErr = desc
}

func (m *Manager) journalSession(event string) {
	if m.jrnl == nil {
		return
	}
	err := m.jrnl.RecordSession(journal.SessionEvent{
		ID:     id.New(),
		Event:  event,
		Server: m.server,
		Login:  m.login,
		Time:   time.Now(),
	})
	if err != nil {
		m.log.Warn("journal session event failed", "event", event, "error", err)
	}
}
