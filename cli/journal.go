package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/mt4adm/config"
	"github.com/rustyeddy/mt4adm/journal"
)

func newJournalCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Inspect the local transaction journal",
	}
	cmd.AddCommand(newJournalTransactionsCmd(rc), newJournalSessionsCmd(rc))
	return cmd
}

// openJournalDB opens the configured sqlite journal read-only style,
// without standing up a manager session.
func openJournalDB(rc *RootConfig) (*journal.SQLite, error) {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if cfg.Journal.Type != "sqlite" {
		return nil, fmt.Errorf("journal type %q is not queryable; only sqlite journals can be inspected", cfg.Journal.Type)
	}
	return journal.NewSQLite(cfg.Journal.DBPath)
}

func newJournalTransactionsCmd(rc *RootConfig) *cobra.Command {
	var (
		ticket int
		since  string
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List journaled transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openJournalDB(rc)
			if err != nil {
				return err
			}
			defer db.Close()

			var records []journal.TransactionRecord
			switch {
			case ticket != 0:
				records, err = db.ListTransactionsByTicket(ticket)
			case since != "":
				start, perr := time.Parse("2006-01-02", since)
				if perr != nil {
					return fmt.Errorf("invalid --since date %q", since)
				}
				records, err = db.ListTransactionsBetween(start, time.Now())
			default:
				records, err = db.ListTransactionsBetween(time.Time{}, time.Now())
			}
			if err != nil {
				return err
			}

			fmt.Printf("%-8s %-8s %-8s %-10s %-10s %6s %10s %-20s\n",
				"KIND", "TICKET", "LOGIN", "SYMBOL", "TYPE", "VOLUME", "PRICE", "TIME")
			for _, rec := range records {
				fmt.Printf("%-8s %-8d %-8d %-10s %-10s %6d %10.5f %-20s\n",
					rec.Kind, rec.Ticket, rec.Login, rec.Symbol, rec.Command,
					rec.Volume, rec.Price, rec.Time.UTC().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ticket, "ticket", 0, "Only the history of one order")
	cmd.Flags().StringVar(&since, "since", "", "Only transactions on or after this date (YYYY-MM-DD)")
	return cmd
}

func newJournalSessionsCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List journaled session events",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openJournalDB(rc)
			if err != nil {
				return err
			}
			defer db.Close()

			events, err := db.ListSessions()
			if err != nil {
				return err
			}
			fmt.Printf("%-12s %-20s %-8s %-20s\n", "EVENT", "SERVER", "LOGIN", "TIME")
			for _, e := range events {
				fmt.Printf("%-12s %-20s %-8d %-20s\n",
					e.Event, e.Server, e.Login, e.Time.UTC().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}
