package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"taskdeck/internal/client"
	"taskdeck/internal/client/api"
	"taskdeck/internal/client/state"
	"taskdeck/internal/config"
)

type globalOptions struct {
	apiURL string
	token  string
	json   bool
	debug  bool
}

// cliLogger logs to stderr only when debugging
func (o *globalOptions) cliLogger() *slog.Logger {
	var w io.Writer = io.Discard
	if o.debug {
		w = os.Stderr
	}
	return config.NewLogger(w, o.debug)
}

func (o *globalOptions) newClient(logger *slog.Logger) (*api.Client, error) {
	if o.token == "" {
		return nil, errors.New("no session token: run `taskdeck login` and set TASKDECK_TOKEN")
	}
	return api.NewClient(o.apiURL, o.token, logger), nil
}

// api returns a REST client for one-shot commands
func (o *globalOptions) api() (*api.Client, error) {
	return o.newClient(o.cliLogger())
}

func (o *globalOptions) session(logger *slog.Logger) (*client.Session, error) {
	c, err := o.newClient(logger)
	if err != nil {
		return nil, err
	}
	return client.NewSession(c, state.NewStore(state.Initial()), logger), nil
}

func (o *globalOptions) cliSession() (*client.Session, error) {
	return o.session(o.cliLogger())
}

// tuiLogFile opens the log file the full-screen UI writes to.
// The terminal belongs to the UI while it runs.
func tuiLogFile() (*os.File, error) {
	dir := os.Getenv("TASKDECK_LOG_DIR")
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(cache, "taskdeck")
	}
	return config.SetupLogFile(dir, "taskdeck-tui", 5)
}

func (o *globalOptions) printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
}

func checkbox(resolved bool) string {
	if resolved {
		return "[x]"
	}
	return "[ ]"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printMessage(msg string, args ...interface{}) {
	fmt.Printf(msg+"\n", args...)
}
