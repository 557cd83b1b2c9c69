package sim

import (
	"testing"

	"github.com/rustyeddy/mt4adm/mt4"
)

func connect(t *testing.T, s *Server) {
	t.Helper()
	if code := s.Connect("demo.broker:443"); code != mt4.RetOK {
		t.Fatalf("connect code %d", code)
	}
	if code := s.Login(66, "pw"); code != mt4.RetOK {
		t.Fatalf("login code %d", code)
	}
}

func TestQueriesRequireConnection(t *testing.T) {
	s := NewDemoServer()

	if _, _, code := s.UsersRequest(); code != mt4.RetNoConnect {
		t.Errorf("users code = %d, want %d", code, mt4.RetNoConnect)
	}
	if _, code := s.UserRecordGet(12345); code != mt4.RetNoConnect {
		t.Errorf("user code = %d, want %d", code, mt4.RetNoConnect)
	}
	if s.ServerTime() != 0 {
		t.Error("server time nonzero while disconnected")
	}
}

func TestAllocationAccounting(t *testing.T) {
	s := NewDemoServer()
	connect(t, s)

	buf, total, code := s.UsersRequest()
	if code != mt4.RetOK || buf == nil {
		t.Fatalf("users request: buf=%v code=%d", buf, code)
	}
	if total != buf.Len() {
		t.Errorf("total %d != len %d", total, buf.Len())
	}
	if s.Allocs() != 1 || s.Frees() != 0 {
		t.Fatalf("allocs/frees = %d/%d", s.Allocs(), s.Frees())
	}

	s.MemFree(buf)
	if s.Frees() != 1 || s.Leaks() != 0 {
		t.Fatalf("frees/leaks = %d/%d", s.Frees(), s.Leaks())
	}

	// A second free of the same buffer is a defect, not a new free.
	s.MemFree(buf)
	if s.DoubleFrees() != 1 || s.Frees() != 1 {
		t.Fatalf("double frees = %d, frees = %d", s.DoubleFrees(), s.Frees())
	}
}

func TestFailNextConsumedOnce(t *testing.T) {
	s := NewDemoServer()
	connect(t, s)

	s.FailNext("TradesRequest", mt4.RetError)
	if _, _, code := s.TradesRequest(); code != mt4.RetError {
		t.Fatalf("injected code = %d, want %d", code, mt4.RetError)
	}
	buf, _, code := s.TradesRequest()
	if code != mt4.RetOK {
		t.Fatalf("second call code = %d, want OK", code)
	}
	s.MemFree(buf)
}

func TestTransactionLifecycle(t *testing.T) {
	s := NewDemoServer()
	connect(t, s)

	open := &mt4.TradeTransInfo{
		Type: mt4.TransBrOrderOpen, Cmd: mt4.OpBuy, OrderBy: 12345,
		Symbol: "EURUSD", Volume: 10, Price: 1.095,
	}
	if code := s.TradeTransaction(open); code != mt4.RetOK {
		t.Fatalf("open code %d", code)
	}

	// The ticket is not reported; find it the way the adapter does.
	buf, total, code := s.TradesGetByLogin(12345, "")
	if code != mt4.RetOK {
		t.Fatalf("trades code %d", code)
	}
	var ticket int
	var newest int64
	for i := 0; i < total; i++ {
		rec := buf.At(i)
		if rec.OpenTime > newest {
			newest = rec.OpenTime
			ticket = rec.Order
		}
	}
	s.MemFree(buf)
	if ticket == 0 {
		t.Fatal("new order not found")
	}

	mod := &mt4.TradeTransInfo{Type: mt4.TransBrOrderModify, Order: ticket, SL: 1.09, TP: 1.1}
	if code := s.TradeTransaction(mod); code != mt4.RetOK {
		t.Fatalf("modify code %d", code)
	}
	rec, code := s.TradeRecordGet(ticket)
	if code != mt4.RetOK || rec.SL != 1.09 || rec.TP != 1.1 {
		t.Fatalf("after modify: %+v code %d", rec, code)
	}

	cls := &mt4.TradeTransInfo{Type: mt4.TransBrOrderClose, Order: ticket}
	if code := s.TradeTransaction(cls); code != mt4.RetOK {
		t.Fatalf("close code %d", code)
	}
	rec, _ = s.TradeRecordGet(ticket)
	if rec.CloseTime == 0 {
		t.Error("close time not stamped")
	}
	if rec.ClosePrice == 0 {
		t.Error("close price not filled from quote")
	}

	// Closing twice is invalid.
	if code := s.TradeTransaction(cls); code != mt4.RetInvalidData {
		t.Errorf("double close code = %d, want %d", code, mt4.RetInvalidData)
	}
}

func TestTransactionValidation(t *testing.T) {
	s := NewDemoServer()
	connect(t, s)

	cases := []struct {
		name string
		info mt4.TradeTransInfo
		want int
	}{
		{"balance cmd", mt4.TradeTransInfo{Type: mt4.TransBrOrderOpen, Cmd: mt4.OpBalance, OrderBy: 12345, Symbol: "EURUSD", Volume: 10}, mt4.RetInvalidData},
		{"zero volume", mt4.TradeTransInfo{Type: mt4.TransBrOrderOpen, Cmd: mt4.OpBuy, OrderBy: 12345, Symbol: "EURUSD"}, mt4.RetTradeBadVolume},
		{"unknown symbol", mt4.TradeTransInfo{Type: mt4.TransBrOrderOpen, Cmd: mt4.OpBuy, OrderBy: 12345, Symbol: "XAUXAG", Volume: 10}, mt4.RetInvalidData},
		{"unknown login", mt4.TradeTransInfo{Type: mt4.TransBrOrderOpen, Cmd: mt4.OpBuy, OrderBy: 1, Symbol: "EURUSD", Volume: 10}, mt4.RetInvalidData},
		{"unknown ticket close", mt4.TradeTransInfo{Type: mt4.TransBrOrderClose, Order: 9}, mt4.RetInvalidData},
		{"unknown type", mt4.TradeTransInfo{Type: 0}, mt4.RetInvalidData},
	}
	for _, tc := range cases {
		info := tc.info
		if code := s.TradeTransaction(&info); code != tc.want {
			t.Errorf("%s: code = %d, want %d", tc.name, code, tc.want)
		}
	}
}

func TestMarginLevelComputation(t *testing.T) {
	s := NewDemoServer()
	connect(t, s)

	// One open buy: 0.1 lots EURUSD at 1.09502 (ask).
	open := &mt4.TradeTransInfo{
		Type: mt4.TransBrOrderOpen, Cmd: mt4.OpBuy, OrderBy: 12345,
		Symbol: "EURUSD", Volume: 10,
	}
	if code := s.TradeTransaction(open); code != mt4.RetOK {
		t.Fatalf("open code %d", code)
	}

	ml, code := s.MarginLevelRequest(12345)
	if code != mt4.RetOK {
		t.Fatalf("margin code %d", code)
	}
	if ml.Balance != 10000 {
		t.Errorf("balance = %v", ml.Balance)
	}
	if ml.Margin <= 0 {
		t.Errorf("used margin = %v, want > 0", ml.Margin)
	}
	if ml.MarginLevel <= 0 {
		t.Errorf("margin level = %v, want > 0", ml.MarginLevel)
	}
	if got := ml.Equity - ml.Margin; got != ml.MarginFree {
		t.Errorf("free margin = %v, want %v", ml.MarginFree, got)
	}
}

func TestErrorDescription(t *testing.T) {
	s := NewServer()
	if s.ErrorDescription(mt4.RetNoConnect) != "No connection to server" {
		t.Error("unexpected description for RetNoConnect")
	}
	if s.ErrorDescription(9999) != "Unknown error (code 9999)" {
		t.Error("unexpected description for unknown code")
	}
}

func TestReleaseDropsSession(t *testing.T) {
	s := NewDemoServer()
	connect(t, s)
	s.Release()
	if !s.Released() {
		t.Fatal("not marked released")
	}
	if s.IsConnected() {
		t.Error("still connected after release")
	}
}
