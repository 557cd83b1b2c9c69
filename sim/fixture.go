package sim

import "github.com/rustyeddy/mt4adm/mt4"

// NewDemoServer returns a server seeded with a small brokerage
// fixture: a manager account, two client accounts, three FX symbols
// with live quotes and one closed historical trade. The CLI's mock
// mode runs against it.
func NewDemoServer() *Server {
	s := NewServer()

	s.AddAccount(mt4.UserRecord{
		Login:    66,
		Group:    "manager",
		Name:     "Back Office",
		Email:    "backoffice@demo.broker",
		Balance:  0,
		RegDate:  1577836800,
		LastDate: 1700000000,
		Leverage: 100,
	})
	s.AddAccount(mt4.UserRecord{
		Login:    12345,
		Group:    "demoforex",
		Name:     "Alex Demo",
		Email:    "alex@demo.broker",
		Balance:  10000,
		RegDate:  1609459200,
		LastDate: 1700000000,
		Leverage: 100,
	})
	s.AddAccount(mt4.UserRecord{
		Login:    67890,
		Group:    "demoforex",
		Name:     "Sam Demo",
		Email:    "sam@demo.broker",
		Balance:  25000,
		Credit:   500,
		RegDate:  1612137600,
		LastDate: 1699990000,
		Leverage: 200,
	})

	s.AddSymbol(mt4.ConSymbol{
		Symbol: "EURUSD", Description: "Euro vs US Dollar", Currency: "USD",
		Digits: 5, Point: 0.00001, Spread: 2,
		ContractSize: 100000, TickValue: 1, TickSize: 0.00001,
	})
	s.AddSymbol(mt4.ConSymbol{
		Symbol: "GBPUSD", Description: "Great Britain Pound vs US Dollar", Currency: "USD",
		Digits: 5, Point: 0.00001, Spread: 3,
		ContractSize: 100000, TickValue: 1, TickSize: 0.00001,
	})
	s.AddSymbol(mt4.ConSymbol{
		Symbol: "USDJPY", Description: "US Dollar vs Japanese Yen", Currency: "JPY",
		Digits: 3, Point: 0.001, Spread: 2,
		ContractSize: 100000, TickValue: 1, TickSize: 0.001,
	})

	s.SetQuote(mt4.SymbolInfo{Symbol: "EURUSD", Bid: 1.09498, Ask: 1.09502})
	s.SetQuote(mt4.SymbolInfo{Symbol: "GBPUSD", Bid: 1.26710, Ask: 1.26716})
	s.SetQuote(mt4.SymbolInfo{Symbol: "USDJPY", Bid: 149.801, Ask: 149.805})

	s.AddTrade(mt4.TradeRecord{
		Order: 100000, Login: 12345, Symbol: "EURUSD", Cmd: mt4.OpSell,
		Volume: 50, OpenPrice: 1.10230, ClosePrice: 1.09870,
		OpenTime: 1699900000, CloseTime: 1699950000,
		Profit: 180, Commission: -2.5, Storage: -0.8,
		Comment: "weekly rebalance",
	})

	s.SetOnline(12345, "198.51.100.17")

	return s
}
