// Package cli implements the interactive command-line client for bankd.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/bankd/internal/client/api"
	"github.com/dmitrijs2005/bankd/internal/client/config"
)

// App holds the CLI state: the API client (with its session cookie jar) and
// the identity of the currently logged-in user, if any.
type App struct {
	api    *api.Client
	reader *bufio.Reader
	user   *api.User
}

// NewApp constructs the CLI application.
func NewApp(cfg *config.Config) (*App, error) {
	client, err := api.New(cfg.ServerAddr)
	if err != nil {
		return nil, err
	}
	return &App{
		api:    client,
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return "not logged in"
	}
	return a.user.Email
}

// Run starts the REPL until EOF or an exit command.
func (a *App) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(context.Background(), a, a.status, scanner)
}
