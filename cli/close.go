package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newCloseCmd(rc *RootConfig) *cobra.Command {
	var price float64

	cmd := &cobra.Command{
		Use:   "close TICKET",
		Short: "Close an open trade by ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := parseTicket(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(rc)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.mgr.CloseTrade(context.Background(), ticket, price); err != nil {
				return err
			}
			fmt.Printf("Order %d closed\n", ticket)
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Close price (0 uses the current quote)")
	return cmd
}
