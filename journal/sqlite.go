package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(t TransactionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(id, kind, ticket, login, symbol, command, volume, price, stop_loss, take_profit, comment, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Kind, t.Ticket, t.Login, t.Symbol, t.Command,
		t.Volume, t.Price, t.StopLoss, t.TakeProfit, t.Comment, t.Time,
	)
	return err
}

func (j *SQLite) RecordSession(e SessionEvent) error {
	_, err := j.db.Exec(`
		INSERT INTO sessions
		(id, event, server, login, time)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Event, e.Server, e.Login, e.Time,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
