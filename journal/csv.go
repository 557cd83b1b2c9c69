// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	transactions *csv.Writer
	sessions     *csv.Writer
	tf, sf       *os.File
}

func NewCSV(transactionsPath, sessionsPath string) (*CSVJournal, error) {
	tf, err := os.Create(transactionsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(sessionsPath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{"id", "kind", "ticket", "login", "symbol", "command", "volume", "price", "stop_loss", "take_profit", "comment", "time"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"id", "event", "server", "login", "time"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, sw, tf, sf}, nil
}

func (j *CSVJournal) RecordTransaction(t TransactionRecord) error {
	err := j.transactions.Write([]string{
		t.ID,
		t.Kind,
		strconv.Itoa(t.Ticket),
		strconv.Itoa(t.Login),
		t.Symbol,
		t.Command,
		strconv.Itoa(t.Volume),
		f(t.Price),
		f(t.StopLoss),
		f(t.TakeProfit),
		t.Comment,
		t.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.transactions.Flush()
	return j.transactions.Error()
}

func (j *CSVJournal) RecordSession(e SessionEvent) error {
	err := j.sessions.Write([]string{
		e.ID,
		e.Event,
		e.Server,
		strconv.Itoa(e.Login),
		e.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.sessions.Flush()
	return j.sessions.Error()
}

func (j *CSVJournal) Close() error {
	j.transactions.Flush()
	j.sessions.Flush()
	if err := j.tf.Close(); err != nil {
		j.sf.Close()
		return err
	}
	return j.sf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
