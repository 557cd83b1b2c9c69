package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountsCmd(rc *RootConfig) *cobra.Command {
	var login int

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List server accounts, or show one by login",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rc)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := context.Background()

			if login != 0 {
				a, err := s.mgr.Account(ctx, login)
				if err != nil {
					return err
				}
				fmt.Printf("Login:    %d\n", a.Login)
				fmt.Printf("Name:     %s\n", a.Name)
				fmt.Printf("Group:    %s\n", a.Group)
				fmt.Printf("Email:    %s\n", a.Email)
				fmt.Printf("Balance:  %.2f\n", a.Balance)
				fmt.Printf("Credit:   %.2f\n", a.Credit)
				fmt.Printf("Leverage: 1:%d\n", a.Leverage)
				return nil
			}

			accounts, err := s.mgr.Accounts(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s %-20s %-12s %12s %10s\n", "LOGIN", "NAME", "GROUP", "BALANCE", "LEVERAGE")
			for _, a := range accounts {
				fmt.Printf("%-8d %-20s %-12s %12.2f %10d\n", a.Login, a.Name, a.Group, a.Balance, a.Leverage)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&login, "login", 0, "Show a single account by login")
	return cmd
}
