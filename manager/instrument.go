package manager

import "github.com/rustyeddy/mt4adm/mt4"

// Quote is the live price slice of an instrument.
type Quote struct {
	Bid  float64
	Ask  float64
	Time int64
}

// Instrument is an immutable snapshot of a tradable symbol. Quote is
// nil when the live slice was not fetched (list queries) or the info
// fetch failed.
type Instrument struct {
	Symbol       string
	Description  string
	Currency     string
	Digits       int
	Point        float64
	Spread       int
	ContractSize float64
	TickValue    float64
	TickSize     float64

	Quote *Quote
}

// HasQuote reports whether the live-quote slice is present.
func (s Instrument) HasQuote() bool { return s.Quote != nil }

func newInstrument(rec mt4.ConSymbol) Instrument {
	return Instrument{
		Symbol:       rec.Symbol,
		Description:  rec.Description,
		Currency:     rec.Currency,
		Digits:       rec.Digits,
		Point:        rec.Point,
		Spread:       rec.Spread,
		ContractSize: rec.ContractSize,
		TickValue:    rec.TickValue,
		TickSize:     rec.TickSize,
	}
}

func newInstrumentWithQuote(rec mt4.ConSymbol, info mt4.SymbolInfo) Instrument {
	s := newInstrument(rec)
	s.Quote = &Quote{Bid: info.Bid, Ask: info.Ask, Time: info.LastTime}
	return s
}
