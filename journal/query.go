package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTransaction returns a single journaled transaction by ID.
func (j *SQLite) GetTransaction(id string) (TransactionRecord, error) {
	var rec TransactionRecord

	row := j.db.QueryRow(`
		SELECT id, kind, ticket, login, symbol, command, volume, price, stop_loss, take_profit, comment, time
		FROM transactions
		WHERE id = ?`, id)

	err := row.Scan(
		&rec.ID,
		&rec.Kind,
		&rec.Ticket,
		&rec.Login,
		&rec.Symbol,
		&rec.Command,
		&rec.Volume,
		&rec.Price,
		&rec.StopLoss,
		&rec.TakeProfit,
		&rec.Comment,
		&rec.Time,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return TransactionRecord{}, fmt.Errorf("transaction %q not found", id)
		}
		return TransactionRecord{}, err
	}
	return rec, nil
}

// ListTransactionsByTicket returns the journaled history of one order,
// oldest first.
func (j *SQLite) ListTransactionsByTicket(ticket int) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, kind, ticket, login, symbol, command, volume, price, stop_loss, take_profit, comment, time
		FROM transactions
		WHERE ticket = ?
		ORDER BY time ASC`, ticket)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactionsBetween returns transactions whose time is within
// [start, end), oldest first.
func (j *SQLite) ListTransactionsBetween(start, end time.Time) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, kind, ticket, login, symbol, command, volume, price, stop_loss, take_profit, comment, time
		FROM transactions
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListSessions returns every journaled session event, oldest first.
func (j *SQLite) ListSessions() ([]SessionEvent, error) {
	rows, err := j.db.Query(`
		SELECT id, event, server, login, time
		FROM sessions
		ORDER BY time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(&e.ID, &e.Event, &e.Server, &e.Login, &e.Time); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanTransactions(rows *sql.Rows) ([]TransactionRecord, error) {
	var out []TransactionRecord
	for rows.Next() {
		var rec TransactionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Kind,
			&rec.Ticket,
			&rec.Login,
			&rec.Symbol,
			&rec.Command,
			&rec.Volume,
			&rec.Price,
			&rec.StopLoss,
			&rec.TakeProfit,
			&rec.Comment,
			&rec.Time,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
