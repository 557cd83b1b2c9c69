package mt4

import "testing"

func TestTradeCommandDiscriminants(t *testing.T) {
	// Wire contract with the native API; renumbering breaks it.
	want := map[TradeCommand]int{
		OpBuy:       0,
		OpSell:      1,
		OpBuyLimit:  2,
		OpSellLimit: 3,
		OpBuyStop:   4,
		OpSellStop:  5,
		OpBalance:   6,
		OpCredit:    7,
	}
	for cmd, n := range want {
		if int(cmd) != n {
			t.Errorf("%s = %d, want %d", cmd, int(cmd), n)
		}
	}
}

func TestTradeCommandString(t *testing.T) {
	cases := []struct {
		cmd  TradeCommand
		want string
	}{
		{OpBuy, "Buy"},
		{OpSell, "Sell"},
		{OpBuyLimit, "Buy Limit"},
		{OpSellLimit, "Sell Limit"},
		{OpBuyStop, "Buy Stop"},
		{OpSellStop, "Sell Stop"},
		{OpBalance, "Balance"},
		{OpCredit, "Credit"},
		{TradeCommand(42), "Unknown"},
	}
	for _, c := range cases {
		if got := c.cmd.String(); got != c.want {
			t.Errorf("TradeCommand(%d).String() = %q, want %q", int(c.cmd), got, c.want)
		}
	}
}

func TestIsOrder(t *testing.T) {
	for cmd := OpBuy; cmd <= OpSellStop; cmd++ {
		if !cmd.IsOrder() {
			t.Errorf("%s should be an order command", cmd)
		}
	}
	if OpBalance.IsOrder() || OpCredit.IsOrder() {
		t.Error("balance/credit adjustments are not order commands")
	}
}
