package manager

import (
	"context"

	"github.com/rustyeddy/mt4adm/mt4"
)

// Every query requires an authenticated session. List queries return
// an independently-owned snapshot; the SDK buffer backing the result
// is released before the call returns.

// Accounts returns every account known to the server.
func (m *Manager) Accounts(ctx context.Context) ([]Account, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	buf, total, code := m.api.UsersRequest()
	accounts := collect(m.api, buf, total, newAccount)
	if code != mt4.RetOK {
		return nil, m.sdkFail(code)
	}
	return accounts, nil
}

// Account returns a single account by login.
func (m *Manager) Account(ctx context.Context, login int) (Account, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return Account{}, err
	}
	rec, code := m.api.UserRecordGet(login)
	if code != mt4.RetOK {
		return Account{}, m.recordMiss(code)
	}
	return newAccount(rec), nil
}

// Instruments returns every configured symbol, without live quotes.
func (m *Manager) Instruments(ctx context.Context) ([]Instrument, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	buf, total, code := m.api.SymbolsGetAll()
	symbols := collect(m.api, buf, total, newInstrument)
	if code != mt4.RetOK {
		return nil, m.sdkFail(code)
	}
	return symbols, nil
}

// Instrument returns a single symbol by name. The live-quote slice is
// attached iff the secondary info fetch succeeds; its absence is not
// an error.
func (m *Manager) Instrument(ctx context.Context, symbol string) (Instrument, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return Instrument{}, err
	}
	rec, code := m.api.SymbolGet(symbol)
	if code != mt4.RetOK {
		return Instrument{}, m.recordMiss(code)
	}
	if info, code := m.api.SymbolInfoGet(symbol); code == mt4.RetOK {
		return newInstrumentWithQuote(rec, info), nil
	}
	return newInstrument(rec), nil
}

// Trades returns every trade record on the server, open and closed.
func (m *Manager) Trades(ctx context.Context) ([]Trade, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	buf, total, code := m.api.TradesRequest()
	trades := collect(m.api, buf, total, newTrade)
	if code != mt4.RetOK {
		return nil, m.sdkFail(code)
	}
	return trades, nil
}

// TradesByLogin returns the trades belonging to one account.
func (m *Manager) TradesByLogin(ctx context.Context, login int) ([]Trade, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	buf, total, code := m.api.TradesGetByLogin(login, "")
	trades := collect(m.api, buf, total, newTrade)
	if code != mt4.RetOK {
		return nil, m.sdkFail(code)
	}
	return trades, nil
}

// TradesBySymbol returns the trades on one instrument.
func (m *Manager) TradesBySymbol(ctx context.Context, symbol string) ([]Trade, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return nil, err
	}
	buf, total, code := m.api.TradesGetBySymbol(symbol)
	trades := collect(m.api, buf, total, newTrade)
	if code != mt4.RetOK {
		return nil, m.sdkFail(code)
	}
	return trades, nil
}

// TradeByTicket returns a single trade record by its order ticket.
func (m *Manager) TradeByTicket(ctx context.Context, ticket int) (Trade, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return Trade{}, err
	}
	rec, code := m.api.TradeRecordGet(ticket)
	if code != mt4.RetOK {
		return Trade{}, m.recordMiss(code)
	}
	return newTrade(rec), nil
}

// MarginSummary is the server-computed margin state of one login.
// MarginLevel is equity over used margin, as a percentage.
type MarginSummary struct {
	Balance     float64
	Equity      float64
	Margin      float64
	FreeMargin  float64
	MarginLevel float64
}

// Margin returns the margin summary for a login.
func (m *Manager) Margin(ctx context.Context, login int) (MarginSummary, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return MarginSummary{}, err
	}
	ml, code := m.api.MarginLevelRequest(login)
	if code != mt4.RetOK {
		return MarginSummary{}, m.sdkFail(code)
	}
	return MarginSummary{
		Balance:     ml.Balance,
		Equity:      ml.Equity,
		Margin:      ml.Margin,
		FreeMargin:  ml.MarginFree,
		MarginLevel: ml.MarginLevel,
	}, nil
}

// OnlineCount returns the number of users currently connected.
func (m *Manager) OnlineCount(ctx context.Context) (int, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return 0, err
	}
	buf, total, code := m.api.OnlineRequest()
	collect(m.api, buf, total, func(r mt4.OnlineRecord) mt4.OnlineRecord { return r })
	if code != mt4.RetOK {
		return 0, m.sdkFail(code)
	}
	return total, nil
}

// IsUserOnline reports whether the given login has a live connection.
func (m *Manager) IsUserOnline(ctx context.Context, login int) (bool, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return false, err
	}
	buf, total, code := m.api.OnlineRequest()
	online := collect(m.api, buf, total, func(r mt4.OnlineRecord) int { return r.Login })
	if code != mt4.RetOK {
		return false, m.sdkFail(code)
	}
	for _, l := range online {
		if l == login {
			return true, nil
		}
	}
	return false, nil
}
