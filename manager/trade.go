package manager

import "github.com/rustyeddy/mt4adm/mt4"

// Trade is an immutable snapshot of one order record. Volume is in
// lot-size units (one lot = 100 units); times are seconds since epoch.
type Trade struct {
	Ticket     int
	Login      int
	Symbol     string
	Type       mt4.TradeCommand
	Volume     int
	OpenPrice  float64
	ClosePrice float64
	StopLoss   float64
	TakeProfit float64
	OpenTime   int64
	CloseTime  int64
	Profit     float64
	Commission float64
	Swap       float64
	Comment    string
}

// IsOpen reports whether the trade is still open. An order is open iff
// the server has not stamped a close time.
func (t Trade) IsOpen() bool { return t.CloseTime == 0 }

// TypeLabel returns the order kind as a human label ("Buy",
// "Sell Limit", ...).
func (t Trade) TypeLabel() string { return t.Type.String() }

func newTrade(rec mt4.TradeRecord) Trade {
	return Trade{
		Ticket:     rec.Order,
		Login:      rec.Login,
		Symbol:     rec.Symbol,
		Type:       rec.Cmd,
		Volume:     int(rec.Volume),
		OpenPrice:  rec.OpenPrice,
		ClosePrice: rec.ClosePrice,
		StopLoss:   rec.SL,
		TakeProfit: rec.TP,
		OpenTime:   rec.OpenTime,
		CloseTime:  rec.CloseTime,
		Profit:     rec.Profit,
		Commission: rec.Commission,
		Swap:       rec.Storage,
		Comment:    rec.Comment,
	}
}
