package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/wealth-sync/models"
)

func (a *app) signupCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.stores.SignUp(a.ctx(cmd), email, password, name)
			if err != nil {
				return err
			}
			a.printIdentity(resp.Identity)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "full name")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var email, password, code string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := a.stores.SignIn(a.ctx(cmd), email, password, code)
			if err != nil {
				return err
			}
			a.printIdentity(resp.Identity)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&code, "code", "", "two-factor code, if enabled")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.stores.SignOut(a.ctx(cmd))
			fmt.Fprintln(a.out, "Signed out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.identity()
			if err != nil {
				return err
			}
			a.printIdentity(id)
			return nil
		},
	}
}

func (a *app) printIdentity(id models.Identity) {
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", id.Email, id.UserID)
	if !id.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Session expires %s\n", id.ExpiresAt.Local().Format(time.RFC1123))
	}
}
