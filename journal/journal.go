// Package journal persists an audit trail of the adapter's activity:
// every successful broker-side transaction and every session event.
package journal

import "time"

// TransactionRecord is one executed broker-side transaction. Volume is
// in lot-size units. Ticket may be zero for an open whose created
// order could not be identified.
type TransactionRecord struct {
	ID         string
	Kind       string // "open", "close" or "modify"
	Ticket     int
	Login      int
	Symbol     string
	Command    string
	Volume     int
	Price      float64
	StopLoss   float64
	TakeProfit float64
	Comment    string
	Time       time.Time
}

// SessionEvent is one lifecycle transition of the adapter session.
type SessionEvent struct {
	ID     string
	Event  string // "connect", "login" or "disconnect"
	Server string
	Login  int
	Time   time.Time
}

type Journal interface {
	RecordTransaction(TransactionRecord) error
	RecordSession(SessionEvent) error
	Close() error
}
