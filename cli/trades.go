package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt4adm/manager"
)

func newTradesCmd(rc *RootConfig) *cobra.Command {
	var (
		login  int
		symbol string
		ticket int
	)

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List trade records, filtered by login, symbol, or ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rc)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := context.Background()

			if ticket != 0 {
				tr, err := s.mgr.TradeByTicket(ctx, ticket)
				if err != nil {
					return err
				}
				printTrade(tr)
				return nil
			}

			var trades []manager.Trade
			switch {
			case login != 0:
				trades, err = s.mgr.TradesByLogin(ctx, login)
			case symbol != "":
				trades, err = s.mgr.TradesBySymbol(ctx, symbol)
			default:
				trades, err = s.mgr.Trades(ctx)
			}
			if err != nil {
				return err
			}

			fmt.Printf("%-8s %-8s %-10s %-10s %6s %10s %10s %10s %-6s\n",
				"TICKET", "LOGIN", "SYMBOL", "TYPE", "VOLUME", "OPEN", "CLOSE", "PROFIT", "STATE")
			for _, tr := range trades {
				state := "closed"
				if tr.IsOpen() {
					state = "open"
				}
				fmt.Printf("%-8d %-8d %-10s %-10s %6d %10.5f %10.5f %10.2f %-6s\n",
					tr.Ticket, tr.Login, tr.Symbol, tr.TypeLabel(), tr.Volume,
					tr.OpenPrice, tr.ClosePrice, tr.Profit, state)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&login, "login", 0, "Only trades belonging to this login")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Only trades on this instrument")
	cmd.Flags().IntVar(&ticket, "ticket", 0, "Show a single trade by ticket")
	return cmd
}

func printTrade(tr manager.Trade) {
	fmt.Printf("Ticket:      %d\n", tr.Ticket)
	fmt.Printf("Login:       %d\n", tr.Login)
	fmt.Printf("Symbol:      %s\n", tr.Symbol)
	fmt.Printf("Type:        %s\n", tr.TypeLabel())
	fmt.Printf("Volume:      %d\n", tr.Volume)
	fmt.Printf("Open price:  %.5f at %s\n", tr.OpenPrice, formatTime(tr.OpenTime))
	if tr.IsOpen() {
		fmt.Println("State:       open")
	} else {
		fmt.Printf("Close price: %.5f at %s\n", tr.ClosePrice, formatTime(tr.CloseTime))
	}
	fmt.Printf("SL/TP:       %.5f / %.5f\n", tr.StopLoss, tr.TakeProfit)
	fmt.Printf("Profit:      %.2f (commission %.2f, swap %.2f)\n", tr.Profit, tr.Commission, tr.Swap)
	if tr.Comment != "" {
		fmt.Printf("Comment:     %s\n", tr.Comment)
	}
}
