package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/wealth-sync/models"
)

func (a *app) listCmd() *cobra.Command {
	var walletID string
	cmd := &cobra.Command{
		Use:       "list <wallets|transactions|assets|debts>",
		Short:     "Fetch and print one resource",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"wallets", "transactions", "assets", "debts"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.identity(); err != nil {
				return err
			}
			resource := args[0]
			if err := a.stores.Refresh(a.ctx(cmd), resource); err != nil {
				return err
			}
			switch resource {
			case "wallets":
				a.printWallets()
			case "transactions":
				a.printTransactions(walletID)
			case "assets":
				a.printAssets()
			case "debts":
				a.printDebts()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&walletID, "wallet", "", "only transactions of this wallet id")
	return cmd
}

func (a *app) printWallets() {
	st := a.stores.Wallets.State()
	a.section(fmt.Sprintf("Wallets (total %s)", money(st.Totals.TotalBalance)))
	rows := make([][]string, 0, len(st.Items))
	for _, w := range st.Items {
		rows = append(rows, []string{w.ID, w.Name, string(w.Type), money(w.Balance)})
	}
	a.table([]string{"ID", "NAME", "TYPE", "BALANCE"}, rows)
	a.note(st.Error)
}

func (a *app) printTransactions(walletID string) {
	st := a.stores.Transactions.State()
	txs := a.stores.Transactions.Recent(-1)
	if walletID != "" {
		txs = a.stores.Transactions.ForWallet(walletID)
	}
	a.section(fmt.Sprintf("Transactions (income %s, expense %s, invested %s)",
		money(st.Totals.Income), money(st.Totals.Expense), money(st.Totals.Investment)))
	rows := make([][]string, 0, len(st.Items))
	for _, t := range txs {
		rows = append(rows, []string{t.Date.Format(time.DateOnly), string(t.Type), t.Category, money(t.Amount), t.WalletID})
	}
	a.table([]string{"DATE", "TYPE", "CATEGORY", "AMOUNT", "WALLET"}, rows)
	a.note(st.Error)
}

func (a *app) printAssets() {
	st := a.stores.Assets.State()
	a.section(fmt.Sprintf("Assets (value %s, invested %s)", money(st.Totals.TotalValue), money(st.Totals.TotalInvestment)))
	rows := make([][]string, 0, len(st.Items))
	for _, as := range st.Items {
		rows = append(rows, []string{as.ID, as.Name, string(as.AssetType), money(as.CurrentValue), optionalMoney(as.PurchasePrice)})
	}
	a.table([]string{"ID", "NAME", "TYPE", "VALUE", "PAID"}, rows)
	a.note(st.Error)
}

func (a *app) printDebts() {
	st := a.stores.Debts.State()
	a.section(fmt.Sprintf("Debts (outstanding %s, monthly %s)", money(st.Totals.TotalOutstanding), money(st.Totals.TotalMonthlyPayment)))
	rows := make([][]string, 0, len(st.Items))
	for _, d := range st.Items {
		rows = append(rows, []string{d.ID, d.Name, string(d.DebtType), money(d.OutstandingBalance), optional(d.NextPaymentDate)})
	}
	a.table([]string{"ID", "NAME", "TYPE", "OUTSTANDING", "NEXT DUE"}, rows)
	a.note(st.Error)
}

func (a *app) walletCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "wallet", Short: "Manage wallets"}

	var in models.WalletInput
	var walletType string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a wallet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.identity()
			if err != nil {
				return err
			}
			in.Type = models.WalletType(walletType)
			w, err := a.stores.Wallets.Create(a.ctx(cmd), id.UserID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created wallet %s (%s)\n", w.Name, w.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.Name, "name", "", "wallet name")
	add.Flags().StringVar(&walletType, "type", "", "cash, bank, investment or other (default cash)")
	add.Flags().Float64Var(&in.Balance, "balance", 0, "current balance")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.identity(); err != nil {
				return err
			}
			label := args[0]
			if err := a.stores.Refresh(a.ctx(cmd), "wallets"); err == nil {
				if w, ok := a.stores.Wallets.Find(args[0]); ok {
					label = fmt.Sprintf("%s (%s)", w.Name, w.ID)
				}
			}
			if err := a.stores.Wallets.Remove(a.ctx(cmd), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted wallet %s\n", label)
			return nil
		},
	}

	cmd.AddCommand(add, rm)
	return cmd
}

func (a *app) transactionCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "transaction", Short: "Record transactions"}

	var in models.TransactionInput
	var txType, date, description string
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.identity()
			if err != nil {
				return err
			}
			in.Type = models.TransactionType(txType)
			if description != "" {
				in.Description = &description
			}
			if date != "" {
				d, err := time.Parse(time.DateOnly, date)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				in.Date = d
			}
			t, err := a.stores.Transactions.Create(a.ctx(cmd), id.UserID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Recorded %s of %s in %s (%s)\n", t.Type, money(t.Amount), t.Category, t.ID)
			return nil
		},
	}
	add.Flags().StringVar(&in.WalletID, "wallet", "", "wallet id")
	add.Flags().Float64Var(&in.Amount, "amount", 0, "positive amount")
	add.Flags().StringVar(&txType, "type", "", "income, expense or investment")
	add.Flags().StringVar(&in.Category, "category", "", "category")
	add.Flags().StringVar(&description, "desc", "", "description")
	add.Flags().StringVar(&date, "date", "", "YYYY-MM-DD (default today)")

	cmd.AddCommand(add)
	return cmd
}
