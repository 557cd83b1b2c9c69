package manager

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rustyeddy/mt4adm/mt4"
	"github.com/rustyeddy/mt4adm/sim"
)

func TestOpenTradeRoundTrip(t *testing.T) {
	j := &testJournal{}
	m, srv := newDemoManager(t, WithJournal(j))
	authenticate(t, m)
	ctx := context.Background()

	ticket, err := m.OpenTrade(ctx, OpenRequest{
		Login:   12345,
		Symbol:  "EURUSD",
		Command: mt4.OpBuy,
		Lots:    0.10,
		Price:   1.09500,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if ticket == 0 {
		t.Fatal("ticket is zero")
	}

	tr, err := m.TradeByTicket(ctx, ticket)
	if err != nil {
		t.Fatalf("trade by ticket: %v", err)
	}
	if tr.Symbol != "EURUSD" || tr.TypeLabel() != "Buy" {
		t.Errorf("unexpected view: %+v", tr)
	}
	if tr.Volume != 10 {
		t.Errorf("volume = %d lot-size units, want 10", tr.Volume)
	}
	if !tr.IsOpen() {
		t.Error("freshly opened trade reports closed")
	}
	if tr.OpenPrice != 1.09500 {
		t.Errorf("open price = %v", tr.OpenPrice)
	}

	if err := m.ModifyTrade(ctx, ticket, 1.09000, 1.10000); err != nil {
		t.Fatalf("modify: %v", err)
	}
	tr, _ = m.TradeByTicket(ctx, ticket)
	if tr.StopLoss != 1.09000 || tr.TakeProfit != 1.10000 {
		t.Errorf("sl/tp = %v/%v", tr.StopLoss, tr.TakeProfit)
	}

	// Modify is idempotent for identical arguments.
	if err := m.ModifyTrade(ctx, ticket, 1.09000, 1.10000); err != nil {
		t.Fatalf("second modify: %v", err)
	}
	tr, _ = m.TradeByTicket(ctx, ticket)
	if tr.StopLoss != 1.09000 || tr.TakeProfit != 1.10000 {
		t.Errorf("sl/tp after second modify = %v/%v", tr.StopLoss, tr.TakeProfit)
	}

	if err := m.CloseTrade(ctx, ticket, 0); err != nil {
		t.Fatalf("close: %v", err)
	}
	tr, _ = m.TradeByTicket(ctx, ticket)
	if tr.IsOpen() {
		t.Error("closed trade reports open")
	}
	if tr.CloseTime == 0 {
		t.Error("close time is zero")
	}

	kinds := make([]string, 0, len(j.transactions))
	for _, rec := range j.transactions {
		kinds = append(kinds, rec.Kind)
	}
	if strings.Join(kinds, ",") != "open,modify,modify,close" {
		t.Errorf("journaled kinds = %v", kinds)
	}
	assertNoLeaks(t, srv)
}

func TestOpenTradeVolumeConversion(t *testing.T) {
	m, _ := newDemoManager(t)
	authenticate(t, m)
	ctx := context.Background()

	// floor(v * 100) lot-size units.
	cases := []struct {
		lots float64
		want int
	}{
		{0.10, 10},
		{1.0, 100},
		{0.159, 15},
		{2.555, 255},
	}
	for _, c := range cases {
		ticket, err := m.OpenTrade(ctx, OpenRequest{
			Login: 12345, Symbol: "EURUSD", Command: mt4.OpBuy,
			Lots: c.lots, Price: 1.09500,
		})
		if err != nil {
			t.Fatalf("open %v lots: %v", c.lots, err)
		}
		tr, err := m.TradeByTicket(ctx, ticket)
		if err != nil {
			t.Fatalf("trade by ticket: %v", err)
		}
		if tr.Volume != c.want {
			t.Errorf("lots %v: volume = %d, want %d", c.lots, tr.Volume, c.want)
		}
	}
}

func TestOpenTradeInvalidArguments(t *testing.T) {
	m, _ := newDemoManager(t)
	authenticate(t, m)
	ctx := context.Background()

	// Balance and credit adjustments are not orders.
	for _, cmd := range []mt4.TradeCommand{mt4.OpBalance, mt4.OpCredit} {
		_, err := m.OpenTrade(ctx, OpenRequest{
			Login: 12345, Symbol: "EURUSD", Command: cmd, Lots: 1, Price: 1,
		})
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: error = %v, want ErrInvalidArgument", cmd, err)
		}
	}

	// Volume that overflows the descriptor's integer field.
	_, err := m.OpenTrade(ctx, OpenRequest{
		Login: 12345, Symbol: "EURUSD", Command: mt4.OpBuy,
		Lots: 1e30, Price: 1.09500,
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("overflow error = %v, want ErrInvalidArgument", err)
	}
	if m.LastError() == "" {
		t.Error("last error empty after invalid argument")
	}
}

func TestOpenTradeRejected(t *testing.T) {
	m, srv := newDemoManager(t)
	authenticate(t, m)

	srv.FailNext("TradeTransaction", mt4.RetTradeBadVolume)
	ticket, err := m.OpenTrade(context.Background(), OpenRequest{
		Login: 12345, Symbol: "EURUSD", Command: mt4.OpBuy, Lots: 0.1, Price: 1.095,
	})
	if ticket != 0 {
		t.Fatalf("ticket = %d, want 0", ticket)
	}
	var rej *RejectedError
	if !errors.As(err, &rej) || rej.Code != mt4.RetTradeBadVolume {
		t.Fatalf("error = %v, want RejectedError code %d", err, mt4.RetTradeBadVolume)
	}
	if m.LastError() != "Invalid trade volume" {
		t.Errorf("last error = %q", m.LastError())
	}
}

func TestOpenTradeCommentTruncated(t *testing.T) {
	m, _ := newDemoManager(t)
	authenticate(t, m)
	ctx := context.Background()

	long := strings.Repeat("x", 3*mt4.CommentLength)
	ticket, err := m.OpenTrade(ctx, OpenRequest{
		Login: 12345, Symbol: "EURUSD", Command: mt4.OpBuy,
		Lots: 0.1, Price: 1.095, Comment: long,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	tr, err := m.TradeByTicket(ctx, ticket)
	if err != nil {
		t.Fatalf("trade by ticket: %v", err)
	}
	if len(tr.Comment) != mt4.CommentLength {
		t.Errorf("comment length = %d, want %d", len(tr.Comment), mt4.CommentLength)
	}
}

func TestIdentifyNewOrderTieBreak(t *testing.T) {
	m, srv := newDemoManager(t)
	authenticate(t, m)

	// Two records share the newest open time; the higher ticket wins.
	srv.AddTrade(mt4.TradeRecord{
		Order: 300001, Login: 12345, Symbol: "EURUSD", Cmd: mt4.OpBuy,
		Volume: 10, OpenPrice: 1.1, OpenTime: 1800000000,
	})
	srv.AddTrade(mt4.TradeRecord{
		Order: 300002, Login: 12345, Symbol: "EURUSD", Cmd: mt4.OpBuy,
		Volume: 10, OpenPrice: 1.1, OpenTime: 1800000000,
	})

	if got := m.identifyNewOrder(12345); got != 300002 {
		t.Fatalf("identified ticket %d, want 300002", got)
	}
	assertNoLeaks(t, srv)
}

func TestIdentifyNewOrderEmpty(t *testing.T) {
	srv := sim.NewDemoServer()
	m := New(sim.NewFactory(srv))
	t.Cleanup(func() { _ = m.Close() })
	authenticate(t, m)

	// Login with no trades at all.
	if got := m.identifyNewOrder(66); got != 0 {
		t.Fatalf("identified ticket %d, want 0", got)
	}
}

func TestCloseTradeRejected(t *testing.T) {
	m, _ := newDemoManager(t)
	authenticate(t, m)

	// Ticket 100000 is already closed in the fixture.
	err := m.CloseTrade(context.Background(), 100000, 0)
	var rej *RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("error = %v, want *RejectedError", err)
	}
	if m.LastError() == "" {
		t.Error("last error empty after rejection")
	}
}

func TestTransactionsRequireAuthentication(t *testing.T) {
	m, _ := newDemoManager(t)
	ctx := context.Background()

	if _, err := m.OpenTrade(ctx, OpenRequest{Login: 12345, Symbol: "EURUSD", Command: mt4.OpBuy, Lots: 0.1}); !errors.Is(err, ErrNotConnected) {
		t.Errorf("open error = %v, want ErrNotConnected", err)
	}
	if err := m.CloseTrade(ctx, 1, 0); !errors.Is(err, ErrNotConnected) {
		t.Errorf("close error = %v, want ErrNotConnected", err)
	}
	if err := m.ModifyTrade(ctx, 1, 0, 0); !errors.Is(err, ErrNotConnected) {
		t.Errorf("modify error = %v, want ErrNotConnected", err)
	}
}
