package sim

import "github.com/rustyeddy/mt4adm/mt4"

// TradeTransaction executes a broker-side transaction. Like the real
// API it does not report a created order's ticket; the open path only
// stores the record under the next free ticket.
func (s *Server) TradeTransaction(info *mt4.TradeTransInfo) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.failCode("TradeTransaction"); ok {
		return code
	}
	if !s.connected || !s.loggedIn {
		return mt4.RetNoConnect
	}

	switch info.Type {
	case mt4.TransBrOrderOpen:
		return s.openOrder(info)
	case mt4.TransBrOrderClose:
		return s.closeOrder(info)
	case mt4.TransBrOrderModify:
		return s.modifyOrder(info)
	}
	return mt4.RetInvalidData
}

func (s *Server) openOrder(info *mt4.TradeTransInfo) int {
	if !info.Cmd.IsOrder() {
		return mt4.RetInvalidData
	}
	if info.Volume <= 0 {
		return mt4.RetTradeBadVolume
	}
	if _, ok := s.symbols[info.Symbol]; !ok {
		return mt4.RetInvalidData
	}
	if _, ok := s.users[info.OrderBy]; !ok {
		return mt4.RetInvalidData
	}

	price := info.Price
	if price == 0 {
		quote, ok := s.quotes[info.Symbol]
		if !ok {
			return mt4.RetTradeOffquotes
		}
		if info.Cmd == mt4.OpBuy {
			price = quote.Ask
		} else {
			price = quote.Bid
		}
	}

	ticket := s.nextTicket
	s.nextTicket++
	s.trades[ticket] = &mt4.TradeRecord{
		Order:     ticket,
		Login:     info.OrderBy,
		Symbol:    info.Symbol,
		Cmd:       info.Cmd,
		Volume:    info.Volume,
		OpenPrice: price,
		SL:        info.SL,
		TP:        info.TP,
		OpenTime:  s.tick(),
		Comment:   info.Comment,
	}
	return mt4.RetOK
}

func (s *Server) closeOrder(info *mt4.TradeTransInfo) int {
	t, ok := s.trades[info.Order]
	if !ok || t.CloseTime != 0 {
		return mt4.RetInvalidData
	}

	price := info.Price
	if price == 0 {
		if quote, ok := s.quotes[t.Symbol]; ok {
			if t.Cmd == mt4.OpBuy {
				price = quote.Bid
			} else {
				price = quote.Ask
			}
		} else {
			price = t.OpenPrice
		}
	}

	t.ClosePrice = price
	t.CloseTime = s.tick()
	t.Profit = s.realizedProfit(t, price)
	return mt4.RetOK
}

func (s *Server) modifyOrder(info *mt4.TradeTransInfo) int {
	t, ok := s.trades[info.Order]
	if !ok || t.CloseTime != 0 {
		return mt4.RetInvalidData
	}
	t.SL = info.SL
	t.TP = info.TP
	return mt4.RetOK
}

// realizedProfit marks a closed trade in quote currency. Good enough
// for a simulator; no cross-currency conversion.
func (s *Server) realizedProfit(t *mt4.TradeRecord, closePrice float64) float64 {
	contract := 100000.0
	if cs, ok := s.symbols[t.Symbol]; ok && cs.ContractSize > 0 {
		contract = cs.ContractSize
	}
	lots := float64(t.Volume) / 100
	diff := closePrice - t.OpenPrice
	if t.Cmd == mt4.OpSell {
		diff = -diff
	}
	return diff * lots * contract
}

// marginLevel computes the server-side margin summary for one user.
// Callers hold s.mu.
func (s *Server) marginLevel(user mt4.UserRecord) mt4.MarginLevel {
	equity := user.Balance + user.Credit
	var used float64

	leverage := user.Leverage
	if leverage <= 0 {
		leverage = 100
	}

	for _, t := range s.trades {
		if t.Login != user.Login || t.CloseTime != 0 {
			continue
		}
		contract := 100000.0
		if cs, ok := s.symbols[t.Symbol]; ok && cs.ContractSize > 0 {
			contract = cs.ContractSize
		}
		lots := float64(t.Volume) / 100

		mark := t.OpenPrice
		if quote, ok := s.quotes[t.Symbol]; ok {
			if t.Cmd == mt4.OpBuy {
				mark = quote.Bid
			} else {
				mark = quote.Ask
			}
		}

		diff := mark - t.OpenPrice
		if t.Cmd == mt4.OpSell {
			diff = -diff
		}
		equity += diff * lots * contract
		used += lots * contract * t.OpenPrice / float64(leverage)
	}

	ml := mt4.MarginLevel{
		Login:      user.Login,
		Balance:    user.Balance,
		Equity:     equity,
		Margin:     used,
		MarginFree: equity - used,
	}
	if used > 0 {
		ml.MarginLevel = equity / used * 100
	}
	return ml
}
