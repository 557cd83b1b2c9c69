package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/rustyeddy/mt4adm/config"
	"github.com/rustyeddy/mt4adm/journal"
	"github.com/rustyeddy/mt4adm/manager"
	"github.com/rustyeddy/mt4adm/sim"
)

// session bundles a configured, authenticated adapter for one command
// invocation.
type session struct {
	cfg  *config.Config
	log  *slog.Logger
	mgr  *manager.Manager
	jrnl journal.Journal
}

func newSession(rc *RootConfig) (*session, error) {
	cfg := config.Default()
	if rc.ConfigPath != "" {
		loaded, err := config.LoadFromFile(rc.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}
	if rc.NoColor {
		cfg.Log.NoColor = true
	}

	log := newLogger(cfg.Log)

	if !cfg.Server.Mock {
		// The native manager bridge is a separate cgo build; this
		// binary only ships the simulator.
		return nil, fmt.Errorf("server %q: only mock mode is supported by this build", cfg.Server.Address)
	}

	jrnl, err := newJournal(cfg.Journal)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	opts := []manager.Option{manager.WithLogger(log)}
	if jrnl != nil {
		opts = append(opts, manager.WithJournal(jrnl))
	}
	mgr := manager.New(sim.NewFactory(sim.NewDemoServer()), opts...)
	if !mgr.IsValid() {
		closeQuiet(jrnl)
		return nil, fmt.Errorf("adapter construction failed: %s", mgr.LastError())
	}

	ctx := context.Background()
	if err := mgr.Connect(ctx, cfg.Server.Address); err != nil {
		mgr.Close()
		closeQuiet(jrnl)
		return nil, fmt.Errorf("connect %s: %w", cfg.Server.Address, err)
	}
	if err := mgr.Login(ctx, cfg.Server.Login, cfg.Server.Password); err != nil {
		mgr.Close()
		closeQuiet(jrnl)
		return nil, fmt.Errorf("login %d: %w", cfg.Server.Login, err)
	}

	return &session{cfg: cfg, log: log, mgr: mgr, jrnl: jrnl}, nil
}

func (s *session) close() {
	s.mgr.Close()
	closeQuiet(s.jrnl)
}

func newLogger(lc config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch lc.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		NoColor:    lc.NoColor,
		TimeFormat: time.TimeOnly,
	}))
}

func newJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	case "csv":
		return journal.NewCSV(jc.TransactionsFile, jc.SessionsFile)
	}
	return nil, nil
}

func closeQuiet(j journal.Journal) {
	if j != nil {
		_ = j.Close()
	}
}

func formatTime(epoch int64) string {
	if epoch == 0 {
		return "-"
	}
	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04:05")
}
