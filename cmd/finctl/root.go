package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/config"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/storage"
	"github.com/LovationAdmin/wealth-sync/store"
	"github.com/LovationAdmin/wealth-sync/utils"
)

var errSignedOut = errors.New("not signed in; run `finctl login` first")

type app struct {
	cfg    config.Config
	state  *storage.Store
	remote *client.Remote
	stores *store.Container
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "finctl",
		Short:         "Command-line client for wealth-sync",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.AddCommand(
		a.signupCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.listCmd(),
		a.walletCmd(),
		a.transactionCmd(),
		a.profileCmd(),
		a.dashboardCmd(),
		a.watchCmd(),
	)
	return root
}

// open wires the stores and restores any persisted session.
func (a *app) open(cmd *cobra.Command) error {
	_ = godotenv.Load()
	a.cfg = config.Load()
	utils.LogLevel = utils.ParseLogLevel(a.cfg.LogLevel)
	a.out = cmd.OutOrStdout()

	state, err := storage.Open(a.cfg.StatePath, a.cfg.StateKey)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	a.state = state
	a.remote = client.NewRemote(a.cfg.APIBaseURL, a.cfg.RequestTimeout)
	a.stores = store.NewContainer(a.remote, a.state, store.Options{Hydrate: a.cfg.HydrateResources})

	if _, err := a.stores.Restore(cmd.Context()); err != nil {
		utils.SafeWarn("[CLI] restore session: %v", err)
	}
	return nil
}

func (a *app) close() error {
	if a.state == nil {
		return nil
	}
	return a.state.Close()
}

func (a *app) identity() (models.Identity, error) {
	id, ok := a.stores.Auth.Identity()
	if !ok {
		return models.Identity{}, errSignedOut
	}
	return id, nil
}

func (a *app) ctx(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
