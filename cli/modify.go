package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newModifyCmd(rc *RootConfig) *cobra.Command {
	var sl, tp float64

	cmd := &cobra.Command{
		Use:   "modify TICKET",
		Short: "Change the stop loss and take profit of a trade",
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

			if err := s.mgr.ModifyTrade(context.Background(), ticket, sl, tp); err != nil {
				return err
			}
			fmt.Printf("Order %d modified (sl %.5f, tp %.5f)\n", ticket, sl, tp)
			return nil
		},
	}

	cmd.Flags().Float64Var(&sl, "sl", 0, "New stop loss price")
	cmd.Flags().Float64Var(&tp, "tp", 0, "New take profit price")
	return cmd
}
