package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newOnlineCmd(rc *RootConfig) *cobra.Command {
	var login int

	cmd := &cobra.Command{
		Use:   "online",
		Short: "Show connected-user count, or check one login's presence",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rc)
			if err != nil {
				return err
			}
			defer s.close()
			ctx := context.Background()

			if login != 0 {
				online, err := s.mgr.IsUserOnline(ctx, login)
				if err != nil {
					return err
				}
				if online {
					fmt.Printf("%d is online\n", login)
				} else {
					fmt.Printf("%d is offline\n", login)
				}
				return nil
			}

			n, err := s.mgr.OnlineCount(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d users online\n", n)
			return nil
		},
	}

	cmd.Flags().IntVar(&login, "login", 0, "Check one login instead of counting")
	return cmd
}
