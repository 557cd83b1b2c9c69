package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMarginCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "margin LOGIN",
		Short: "Show the margin state of one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			login, err := parseLogin(args[0])
			if err != nil {
				return err
			}
			s, err := newSession(rc)
			if err != nil {
				return err
			}
			defer s.close()

			ml, err := s.mgr.Margin(context.Background(), login)
			if err != nil {
				return err
			}
			fmt.Printf("Balance:      %.2f\n", ml.Balance)
			fmt.Printf("Equity:       %.2f\n", ml.Equity)
			fmt.Printf("Margin:       %.2f\n", ml.Margin)
			fmt.Printf("Free margin:  %.2f\n", ml.FreeMargin)
			if ml.Margin > 0 {
				fmt.Printf("Margin level: %.2f%%\n", ml.MarginLevel)
			} else {
				fmt.Println("Margin level: - (no open positions)")
			}
			return nil
		},
	}
	return cmd
}
