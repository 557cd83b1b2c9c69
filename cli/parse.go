package cli

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/mt4adm/mt4"
)

func parseLogin(s string) (int, error) {
	login, err := strconv.Atoi(s)
	if err != nil || login <= 0 {
		return 0, fmt.Errorf("invalid login %q", s)
	}
	return login, nil
}

func parseTicket(s string) (int, error) {
	ticket, err := strconv.Atoi(s)
	if err != nil || ticket <= 0 {
		return 0, fmt.Errorf("invalid ticket %q", s)
	}
	return ticket, nil
}

func parseCommand(s string) (mt4.TradeCommand, error) {
	switch s {
	case "buy":
		return mt4.OpBuy, nil
	case "sell":
		return mt4.OpSell, nil
	case "buy-limit":
		return mt4.OpBuyLimit, nil
	case "sell-limit":
		return mt4.OpSellLimit, nil
	case "buy-stop":
		return mt4.OpBuyStop, nil
	case "sell-stop":
		return mt4.OpSellStop, nil
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}
