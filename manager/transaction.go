package manager

import (
	"context"
	"math"
	"time"

	"github.com/rustyeddy/mt4adm/internal/id"
	"github.com/rustyeddy/mt4adm/journal"
	"github.com/rustyeddy/mt4adm/mt4"
)

// OpenRequest describes a broker-side order open. Lots is the volume
// in lots; it is converted to integer lot-size units by multiplication
// by 100 and truncation. StopLoss, TakeProfit and Comment are
// optional; the comment is truncated to the descriptor capacity.
type OpenRequest struct {
	Login      int
	Symbol     string
	Command    mt4.TradeCommand
	Lots       float64
	Price      float64
	StopLoss   float64
	TakeProfit float64
	Comment    string
}

// OpenTrade submits a broker-side open and returns the ticket of the
// created order.
//
// The SDK does not report the new ticket directly, so after a
// successful submit the account's trades are fetched and the record
// with the newest open time is taken; ties go to the highest ticket.
// This correlation assumes a single caller drives the login at a time.
// A zero ticket with a nil error means the order was accepted but
// could not be identified.
func (m *Manager) OpenTrade(ctx context.Context, req OpenRequest) (int, error) {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return 0, err
	}
	if !req.Command.IsOrder() {
		return 0, m.fail(ErrInvalidArgument)
	}
	units := math.Trunc(req.Lots * 100)
	if units < math.MinInt32 || units > math.MaxInt32 {
		return 0, m.fail(ErrInvalidArgument)
	}

	info := mt4.TradeTransInfo{
		Type:    mt4.TransBrOrderOpen,
		Cmd:     req.Command,
		OrderBy: req.Login,
		Symbol:  req.Symbol,
		Volume:  int32(units),
		Price:   req.Price,
		SL:      req.StopLoss,
		TP:      req.TakeProfit,
		Comment: truncateComment(req.Comment),
	}
	if code := m.api.TradeTransaction(&info); code != mt4.RetOK {
		return 0, m.rejected(code)
	}

	ticket := m.identifyNewOrder(req.Login)
	if ticket == 0 {
		m.log.Warn("order accepted but not identified", "login", req.Login, "symbol", req.Symbol)
	} else {
		m.log.Info("order opened",
			"ticket", ticket, "login", req.Login, "symbol", req.Symbol,
			"cmd", req.Command.String(), "volume", int(units))
	}
	m.journalTransaction("open", ticket, &info)
	return ticket, nil
}

// CloseTrade submits a broker-side close for the given ticket. A zero
// price closes at market.
func (m *Manager) CloseTrade(ctx context.Context, ticket int, price float64) error {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return err
	}
	info := mt4.TradeTransInfo{
		Type:  mt4.TransBrOrderClose,
		Order: ticket,
	}
	if price > 0 {
		info.Price = price
	}
	if code := m.api.TradeTransaction(&info); code != mt4.RetOK {
		return m.rejected(code)
	}
	m.log.Info("order closed", "ticket", ticket, "price", price)
	m.journalTransaction("close", ticket, &info)
	return nil
}

// ModifyTrade submits a broker-side modify of the stop-loss and
// take-profit levels on the given ticket.
func (m *Manager) ModifyTrade(ctx context.Context, ticket int, stopLoss, takeProfit float64) error {
	_ = ctx
	if err := m.requireAuth(); err != nil {
		return err
	}
	info := mt4.TradeTransInfo{
		Type:  mt4.TransBrOrderModify,
		Order: ticket,
		SL:    stopLoss,
		TP:    takeProfit,
	}
	if code := m.api.TradeTransaction(&info); code != mt4.RetOK {
		return m.rejected(code)
	}
	m.log.Info("order modified", "ticket", ticket, "sl", stopLoss, "tp", takeProfit)
	m.journalTransaction("modify", ticket, &info)
	return nil
}

// identifyNewOrder fetches the login's trades and picks the record
// with the maximum open time, breaking ties by maximum ticket. Returns
// zero when the fetch fails or comes back empty.
func (m *Manager) identifyNewOrder(login int) int {
	buf, total, code := m.api.TradesGetByLogin(login, "")
	trades := collect(m.api, buf, total, newTrade)
	if code != mt4.RetOK || len(trades) == 0 {
		return 0
	}

	ticket := 0
	var newest int64 = -1
	for _, t := range trades {
		if t.OpenTime > newest || (t.OpenTime == newest && t.Ticket > ticket) {
			newest = t.OpenTime
			ticket = t.Ticket
		}
	}
	return ticket
}

func truncateComment(c string) string {
	if len(c) > mt4.CommentLength {
		return c[:mt4.CommentLength]
	}
	return c
}

func (m *Manager) journalTransaction(kind string, ticket int, info *mt4.TradeTransInfo) {
	if m.jrnl == nil {
		return
	}
	err := m.jrnl.RecordTransaction(journal.TransactionRecord{
		ID:         id.New(),
		Kind:       kind,
		Ticket:     ticket,
		Login:      info.OrderBy,
		Symbol:     info.Symbol,
		Command:    info.Cmd.String(),
		Volume:     int(info.Volume),
		Price:      info.Price,
		StopLoss:   info.SL,
		TakeProfit: info.TP,
		Comment:    info.Comment,
		Time:       time.Now(),
	})
	if err != nil {
		m.log.Warn("journal transaction failed", "kind", kind, "ticket", ticket, "error", err)
	}
}
