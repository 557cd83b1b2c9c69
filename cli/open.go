package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt4adm/manager"
)

func newOpenCmd(rc *RootConfig) *cobra.Command {
	var (
		login   int
		symbol  string
		side    string
		lots    float64
		price   float64
		sl, tp  float64
		comment string
	)

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open a trade on behalf of an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := parseCommand(side)
			if err != nil {
				return err
			}
			s, err := newSession(rc)
			if err != nil {
				return err
			}
			defer s.close()

			ticket, err := s.mgr.OpenTrade(context.Background(), manager.OpenRequest{
				Login:      login,
				Symbol:     symbol,
				Command:    command,
				Lots:       lots,
				Price:      price,
				StopLoss:   sl,
				TakeProfit: tp,
				Comment:    comment,
			})
			if err != nil {
				return err
			}
			if ticket == 0 {
				fmt.Println("Order accepted; ticket could not be identified")
				return nil
			}
			fmt.Printf("Order opened, ticket %d\n", ticket)
			return nil
		},
	}

	cmd.Flags().IntVar(&login, "login", 0, "Account the trade belongs to")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Instrument to trade")
	cmd.Flags().StringVar(&side, "type", "buy", "Order type: buy|sell|buy-limit|sell-limit|buy-stop|sell-stop")
	cmd.Flags().Float64Var(&lots, "lots", 0, "Volume in lots")
	cmd.Flags().Float64Var(&price, "price", 0, "Open price (0 uses the current quote)")
	cmd.Flags().Float64Var(&sl, "sl", 0, "Stop loss price")
	cmd.Flags().Float64Var(&tp, "tp", 0, "Take profit price")
	cmd.Flags().StringVar(&comment, "comment", "", "Order comment")
	cmd.MarkFlagRequired("login")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("lots")
	return cmd
}
