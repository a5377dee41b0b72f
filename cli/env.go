// ABOUTME: Shared wiring for storefront CLI commands
// ABOUTME: Opens the token cell, the REST client and the local submission history
package cli

import (
	"bufio"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/harperreed/flagshop/api"
	"github.com/harperreed/flagshop/charm"
	"github.com/harperreed/flagshop/config"
	"github.com/harperreed/flagshop/db"
	"github.com/harperreed/flagshop/session"
)

// Env bundles what storefront commands need.
type Env struct {
	Config  *config.Config
	Logger  *zap.Logger
	Client  *api.Client
	Tokens  session.TokenStore
	History *db.History

	Out io.Writer
	In  io.Reader

	charm     *charm.Client
	historyDB *sql.DB
}

// OpenEnv opens the Charm-backed token cell and the history database.
func OpenEnv(cfg *config.Config, logger *zap.Logger) (*Env, error) {
	charmCfg, err := charm.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load charm config: %w", err)
	}
	kv, err := charm.Open(charmCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	env := NewEnv(cfg, logger, charm.NewTokenStore(kv), db.NewHistory(database))
	env.charm = kv
	env.historyDB = database
	return env, nil
}

// NewEnv wires an Env around an existing token cell and history.
func NewEnv(cfg *config.Config, logger *zap.Logger, tokens session.TokenStore, history *db.History) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{
		Config:  cfg,
		Logger:  logger,
		Client:  api.NewClient(cfg.APIURL, tokens, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger)),
		Tokens:  tokens,
		History: history,
		Out:     os.Stdout,
		In:      os.Stdin,
	}
}

// NewApp returns a session over the env's backend and token cell.
func (e *Env) NewApp() *session.App {
	opts := []session.Option{session.WithLogger(e.Logger)}
	if e.History != nil {
		opts = append(opts, session.WithRecorder(e.History))
	}
	return session.New(e.Client, e.Tokens, opts...)
}

func (e *Env) Close() error {
	var firstErr error
	if e.historyDB != nil {
		firstErr = e.historyDB.Close()
	}
	if e.charm != nil {
		if err := e.charm.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (e *Env) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(e.Out, format, args...)
}

// readPassword prompts without echo on a terminal and reads a plain line
// otherwise.
func (e *Env) readPassword(prompt string) (string, error) {
	e.printf("%s", prompt)
	if f, ok := e.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		e.printf("\n")
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(e.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
