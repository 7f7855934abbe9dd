package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/wealth-sync/client"
	"github.com/LovationAdmin/wealth-sync/store"
	"github.com/LovationAdmin/wealth-sync/utils"
)

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Net worth and this month's cash flow",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.identity(); err != nil {
				return err
			}
			ctx := a.ctx(cmd)
			for _, resource := range []string{"wallets", "transactions", "assets", "debts"} {
				if err := a.stores.Refresh(ctx, resource); err != nil {
					utils.SafeWarn("[CLI] refresh %s: %v", resource, err)
				}
			}

			d := a.stores.Dashboard(time.Now())
			currency := d.Currency
			if currency == "" {
				currency = "---"
			}
			fmt.Fprintf(a.out, "Net worth: %s %s\n", money(d.NetWorth), currency)
			a.field("wallets", money(d.Wallets.TotalBalance))
			a.field("assets", money(d.Assets.TotalValue))
			a.field("debts", money(d.Debts.TotalOutstanding))
			a.field("monthly", money(d.Debts.TotalMonthlyPayment))

			a.section(fmt.Sprintf("This month: income %s, expense %s, invested %s",
				money(d.Transactions.Income), money(d.Transactions.Expense), money(d.Transactions.Investment)))
			rows := make([][]string, 0, len(d.Transactions.ByCategory))
			for _, c := range d.Transactions.ByCategory {
				rows = append(rows, []string{c.Category, money(c.Amount), fmt.Sprintf("%.2f%%", c.PercentOfExpense)})
			}
			a.table([]string{"CATEGORY", "SPENT", "SHARE"}, rows)

			a.section("Balance by wallet type")
			a.table([]string{"TYPE", "BALANCE"}, grouped(d.WalletsByType))
			a.section("Asset allocation")
			a.table([]string{"TYPE", "VALUE"}, grouped(d.AssetAllocation))

			a.section("Debt payments due this month")
			due := make([][]string, 0, len(d.DebtsDue))
			for _, debt := range d.DebtsDue {
				due = append(due, []string{optional(debt.NextPaymentDate), debt.Name, optionalMoney(debt.PaymentAmount)})
			}
			a.table([]string{"DUE", "NAME", "PAYMENT"}, due)

			for _, msg := range []string{a.stores.Wallets.Err(), a.stores.Transactions.Err(), a.stores.Assets.Err(), a.stores.Debts.Err()} {
				a.note(msg)
			}
			return nil
		},
	}
}

// grouped renders a per-type total map as sorted table rows.
func grouped[K ~string](totals map[K]float64) [][]string {
	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, money(totals[K(k)])})
	}
	return rows
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow live changes until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.identity(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(a.ctx(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cancelWallets := a.stores.Wallets.Subscribe(func() { a.changed("wallets") })
			defer cancelWallets()
			cancelTxs := a.stores.Transactions.Subscribe(func() { a.changed("transactions") })
			defer cancelTxs()

			fmt.Fprintln(a.out, "Watching for changes (Ctrl-C to stop)...")
			return a.stores.Watch(ctx, client.WebSocketURL(a.cfg.APIBaseURL))
		},
	}
}

func (a *app) changed(resource string) {
	var status store.Status
	var count int
	switch resource {
	case "wallets":
		st := a.stores.Wallets.State()
		status, count = st.Status, len(st.Items)
	case "transactions":
		st := a.stores.Transactions.State()
		status, count = st.Status, len(st.Items)
	}
	if status == store.StatusSucceeded {
		fmt.Fprintf(a.out, "%s  %s: %d items\n", time.Now().Format(time.TimeOnly), resource, count)
	}
}
