package store

import (
	"context"
	"fmt"
	"time"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/models"
	"github.com/LovationAdmin/wealth-sync/storage"
	"github.com/LovationAdmin/wealth-sync/utils"
)

type Options struct {
	// Hydrate names the resources loaded when an identity appears.
	// Nil means DefaultHydration.
	Hydrate []string
}

// Container owns every store for one client process.
type Container struct {
	Auth         *AuthStore
	Profile      *ProfileStore
	Wallets      *WalletStore
	Transactions *TransactionStore
	Assets       *AssetStore
	Debts        *DebtStore
	Hydration    *Coordinator

	persist  Persister
	fetchers map[string]FetchFunc
}

type tokenSetter interface {
	SetTokenSource(client.TokenSource)
}

// NewContainer wires the stores to api. When api accepts a token source
// (client.Remote does), it is pointed at the auth store.
func NewContainer(api client.API, persist Persister, opts Options) *Container {
	c := &Container{
		Auth:         NewAuthStore(api, persist),
		Profile:      NewProfileStore(api, persist),
		Wallets:      NewWalletStore(api),
		Transactions: NewTransactionStore(api),
		Assets:       NewAssetStore(api),
		Debts:        NewDebtStore(api),
		persist:      persist,
	}
	if ts, ok := api.(tokenSetter); ok {
		ts.SetTokenSource(c.Auth.Token)
	}

	c.fetchers = map[string]FetchFunc{
		"profile": func(ctx context.Context, owner string) error {
			_, err := c.Profile.FetchProfile(ctx, owner)
			return err
		},
		"wallets": func(ctx context.Context, owner string) error {
			_, err := c.Wallets.FetchAll(ctx, owner)
			return err
		},
		"transactions": func(ctx context.Context, owner string) error {
			_, err := c.Transactions.FetchAll(ctx, owner)
			return err
		},
		"assets": func(ctx context.Context, owner string) error {
			_, err := c.Assets.FetchAll(ctx, owner)
			return err
		},
		"debts": func(ctx context.Context, owner string) error {
			_, err := c.Debts.FetchAll(ctx, owner)
			return err
		},
	}

	set := opts.Hydrate
	if set == nil {
		set = DefaultHydration
	}
	c.Hydration = NewCoordinator(set, c.fetchers)
	return c
}

// Restore reads the persisted identity and profile once, then hydrates.
// It reports whether a live identity was restored.
func (c *Container) Restore(ctx context.Context) (bool, error) {
	id, ok, err := c.Auth.Restore(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	profile, found, err := c.Profile.Restore(ctx)
	if err != nil {
		utils.SafeWarn("[Container] %v", err)
	} else if found && profile.ID != id.UserID {
		c.Profile.Reset()
	}

	c.Hydration.OnIdentity(ctx, id.UserID)
	return true, nil
}

func (c *Container) SignIn(ctx context.Context, email, password, totpCode string) (models.AuthResponse, error) {
	previous := c.Auth.UserID()
	resp, err := c.Auth.SignIn(ctx, email, password, totpCode)
	if err != nil {
		return resp, err
	}
	c.switchIdentity(ctx, previous, resp.Identity.UserID)
	return resp, nil
}

func (c *Container) SignUp(ctx context.Context, email, password, fullName string) (models.AuthResponse, error) {
	previous := c.Auth.UserID()
	resp, err := c.Auth.SignUp(ctx, email, password, fullName)
	if err != nil {
		return resp, err
	}
	c.switchIdentity(ctx, previous, resp.Identity.UserID)
	return resp, nil
}

// switchIdentity drops the previous user's data before hydrating the new one.
func (c *Container) switchIdentity(ctx context.Context, previous, next string) {
	if previous != "" && previous != next {
		utils.SafeInfo("[Container] identity changed, clearing %s", utils.MaskID(previous))
		c.clearProfile(ctx)
		c.resetStores()
	}
	c.Hydration.OnIdentity(ctx, next)
}

// SignOut ends the session and resets every store.
func (c *Container) SignOut(ctx context.Context) {
	c.Auth.SignOut(ctx)
	c.clearProfile(ctx)
	c.resetStores()
	c.Hydration.OnIdentity(ctx, "")
}

func (c *Container) clearProfile(ctx context.Context) {
	if c.persist == nil {
		return
	}
	if err := c.persist.Delete(ctx, storage.PartitionProfile); err != nil {
		utils.SafeWarn("[Container] clear persisted profile: %v", err)
	}
}

func (c *Container) resetStores() {
	c.Profile.Reset()
	c.Wallets.Reset()
	c.Transactions.Reset()
	c.Assets.Reset()
	c.Debts.Reset()
}

// Refresh re-fetches one resource for the current identity.
func (c *Container) Refresh(ctx context.Context, resource string) error {
	fetch, ok := c.fetchers[resource]
	if !ok {
		return fmt.Errorf("unknown resource %q", resource)
	}
	owner := c.Auth.UserID()
	if owner == "" {
		return client.NewValidationError(utils.Required("owner_id", owner))
	}
	return fetch(ctx, owner)
}

// Watch refreshes resources as the server announces changes, until ctx ends.
func (c *Container) Watch(ctx context.Context, wsURL string) error {
	token := c.Auth.Token()
	if token == "" {
		return client.NewValidationError(utils.Required("access_token", token))
	}
	return client.Listen(ctx, wsURL, token, func(ev models.ChangeEvent) {
		utils.SafeDebug("[Container] change %s %s", ev.Resource, ev.Action)
		if err := c.Refresh(ctx, ev.Resource); err != nil {
			utils.SafeWarn("[Container] refresh %s: %v", ev.Resource, err)
		}
	})
}

type Dashboard struct {
	Currency        string                        `json:"currency,omitempty"`
	Wallets         WalletTotals                  `json:"wallets"`
	WalletsByType   map[models.WalletType]float64 `json:"wallets_by_type"`
	Assets          AssetTotals                   `json:"assets"`
	AssetAllocation map[models.AssetType]float64  `json:"asset_allocation"`
	Debts           DebtTotals                    `json:"debts"`
	DebtsDue        []models.Debt                 `json:"debts_due"`
	NetWorth        float64                       `json:"net_worth"`
	Transactions    TransactionSummary            `json:"transactions"`
}

// Dashboard summarizes the current state. Transactions and due debts cover
// the calendar month containing now.
func (c *Container) Dashboard(now time.Time) Dashboard {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	d := Dashboard{
		Wallets:         c.Wallets.Totals(),
		WalletsByType:   c.Wallets.ByType(),
		Assets:          c.Assets.Totals(),
		AssetAllocation: c.Assets.Allocation(),
		Debts:           c.Debts.Totals(),
		DebtsDue:        c.Debts.DueBy(to),
		NetWorth:        NetWorth(c.Wallets.Items(), c.Assets.Items(), c.Debts.Items()),
		Transactions:    c.Transactions.Summary(from, to),
	}
	if p, ok := c.Profile.Profile(); ok && p.Currency != nil {
		d.Currency = *p.Currency
	}
	utils.SafeDebug("[Container] dashboard net worth %s", utils.MaskAmount(d.NetWorth))
	return d
}
