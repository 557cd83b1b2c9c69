// End-to-end scenarios driving the adapter exclusively through its
// public API against the demo simulator.
package blackbox

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rustyeddy/mt4adm/journal"
	"github.com/rustyeddy/mt4adm/manager"
	"github.com/rustyeddy/mt4adm/mt4"
	"github.com/rustyeddy/mt4adm/sim"
)

const (
	server   = "demo.broker:443"
	mgrLogin = 66
	client   = 12345
)

func newAdapter(t *testing.T, opts ...manager.Option) (*manager.Manager, *sim.Server) {
	t.Helper()
	srv := sim.NewDemoServer()
	m := manager.New(sim.NewFactory(srv), opts...)
	t.Cleanup(func() { _ = m.Close() })
	return m, srv
}

func authenticate(t *testing.T, m *manager.Manager) {
	t.Helper()
	ctx := context.Background()
	if err := m.Connect(ctx, server); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := m.Login(ctx, mgrLogin, "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestFreshAdapterIsValidButDisconnected(t *testing.T) {
	m, _ := newAdapter(t)

	if !m.IsValid() {
		t.Fatal("fresh adapter reports invalid")
	}
	if m.IsConnected() {
		t.Fatal("fresh adapter reports connected")
	}
	_, err := m.Accounts(context.Background())
	if !errors.Is(err, manager.ErrNotConnected) {
		t.Fatalf("accounts error = %v, want ErrNotConnected", err)
	}
	if !strings.Contains(err.Error(), "not connected") {
		t.Errorf("error text = %q", err)
	}
}

func TestSessionAndDirectoryQueries(t *testing.T) {
	m, srv := newAdapter(t)
	authenticate(t, m)
	ctx := context.Background()

	if !m.IsConnected() || !m.IsLoggedIn() {
		t.Fatal("session not established")
	}
	now, err := m.ServerTime(ctx)
	if err != nil {
		t.Fatalf("server time: %v", err)
	}
	if now == 0 {
		t.Fatal("server time is zero")
	}

	accounts, err := m.Accounts(ctx)
	if err != nil {
		t.Fatalf("accounts: %v", err)
	}
	found := false
	for _, a := range accounts {
		if a.Login == client {
			found = true
		}
	}
	if !found {
		t.Fatalf("login %d missing from directory (%d accounts)", client, len(accounts))
	}
	if n := srv.Leaks(); n != 0 {
		t.Fatalf("%d leaked buffers", n)
	}
}

func TestTradeLifecycleEndToEnd(t *testing.T) {
	m, srv := newAdapter(t)
	authenticate(t, m)
	ctx := context.Background()

	ticket, err := m.OpenTrade(ctx, manager.OpenRequest{
		Login:   client,
		Symbol:  "EURUSD",
		Command: mt4.OpBuy,
		Lots:    0.10,
		Price:   1.09500,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if ticket == 0 {
		t.Fatal("open accepted but ticket not identified")
	}

	tr, err := m.TradeByTicket(ctx, ticket)
	if err != nil {
		t.Fatalf("trade by ticket: %v", err)
	}
	if tr.Volume != 10 || tr.TypeLabel() != "Buy" || !tr.IsOpen() {
		t.Fatalf("unexpected trade view: %+v", tr)
	}

	if err := m.ModifyTrade(ctx, ticket, 1.09000, 1.10000); err != nil {
		t.Fatalf("modify: %v", err)
	}
	tr, _ = m.TradeByTicket(ctx, ticket)
	if tr.StopLoss != 1.09000 || tr.TakeProfit != 1.10000 {
		t.Fatalf("sl/tp = %v/%v", tr.StopLoss, tr.TakeProfit)
	}

	if err := m.CloseTrade(ctx, ticket, 0); err != nil {
		t.Fatalf("close: %v", err)
	}
	tr, _ = m.TradeByTicket(ctx, ticket)
	if tr.IsOpen() {
		t.Fatal("trade still open after close")
	}

	if n := srv.Leaks(); n != 0 {
		t.Fatalf("%d leaked buffers", n)
	}
}

func TestQueryFailureSurfacesServerDescription(t *testing.T) {
	m, srv := newAdapter(t)
	authenticate(t, m)

	srv.FailNext("TradesRequest", mt4.RetTechProblem)
	trades, err := m.Trades(context.Background())
	if len(trades) != 0 {
		t.Fatalf("got %d trades from a failed query", len(trades))
	}
	var sdkErr *manager.SDKError
	if !errors.As(err, &sdkErr) {
		t.Fatalf("error = %v, want *SDKError", err)
	}
	if !strings.Contains(err.Error(), "Server technical problem") {
		t.Errorf("error text = %q", err)
	}
	if n := srv.Leaks(); n != 0 {
		t.Fatalf("%d leaked buffers", n)
	}
}

func TestJournalRecordsFullSession(t *testing.T) {
	dir := t.TempDir()
	j, err := journal.NewSQLite(filepath.Join(dir, "journal.sqlite"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer j.Close()

	m, _ := newAdapter(t, manager.WithJournal(j))
	authenticate(t, m)
	ctx := context.Background()

	ticket, err := m.OpenTrade(ctx, manager.OpenRequest{
		Login: client, Symbol: "EURUSD", Command: mt4.OpSell, Lots: 0.2,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := m.CloseTrade(ctx, ticket, 0); err != nil {
		t.Fatalf("close: %v", err)
	}
	m.Disconnect()

	history, err := j.ListTransactionsByTicket(ticket)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(history) != 2 || history[0].Kind != "open" || history[1].Kind != "close" {
		t.Fatalf("journaled history = %+v", history)
	}
	if history[0].Command != "Sell" || history[0].Volume != 20 {
		t.Errorf("open record = %+v", history[0])
	}

	events, err := j.ListSessions()
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	var kinds []string
	for _, e := range events {
		kinds = append(kinds, e.Event)
	}
	if strings.Join(kinds, ",") != "connect,login,disconnect" {
		t.Fatalf("session events = %v", kinds)
	}
}

func TestCloseReleasesEverything(t *testing.T) {
	srv := sim.NewDemoServer()
	m := manager.New(sim.NewFactory(srv))
	authenticate(t, m)

	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !srv.Released() {
		t.Fatal("interface not released")
	}
	if srv.IsConnected() {
		t.Fatal("server session not dropped")
	}
	if m.IsValid() {
		t.Fatal("adapter still valid after close")
	}

	// Close is idempotent.
	if err := m.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
