package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSymbolsCmd(rc *RootConfig) *cobra.Command {
	var symbol string

	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "List configured instruments, or show one with its live quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rc)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := context.Background()

			if symbol != "" {
				ins, err := s.mgr.Instrument(ctx, symbol)
				if err != nil {
					return err
				}
				fmt.Printf("Symbol:      %s\n", ins.Symbol)
				fmt.Printf("Description: %s\n", ins.Description)
				fmt.Printf("Currency:    %s\n", ins.Currency)
				fmt.Printf("Digits:      %d\n", ins.Digits)
				fmt.Printf("Spread:      %d\n", ins.Spread)
				if ins.HasQuote() {
					fmt.Printf("Bid/Ask:     %.*f / %.*f\n", ins.Digits, ins.Quote.Bid, ins.Digits, ins.Quote.Ask)
					fmt.Printf("Quote time:  %s\n", formatTime(ins.Quote.Time))
				} else {
					fmt.Println("Bid/Ask:     no quote")
				}
				return nil
			}

			instruments, err := s.mgr.Instruments(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %-24s %-8s %6s %6s\n", "SYMBOL", "DESCRIPTION", "CCY", "DIGITS", "SPREAD")
			for _, ins := range instruments {
				fmt.Printf("%-10s %-24s %-8s %6d %6d\n", ins.Symbol, ins.Description, ins.Currency, ins.Digits, ins.Spread)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Show a single instrument by name")
	return cmd
}
