package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LovationAdmin/wealth-sync/models"
)

func (a *app) profileCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "Show or edit your profile"}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.identity()
			if err != nil {
				return err
			}
			p, err := a.stores.Profile.FetchProfile(a.ctx(cmd), id.UserID)
			if err != nil {
				return err
			}
			a.printProfile(p)
			return nil
		},
	}

	var name, avatar, theme, currency string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change one or more profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := a.identity()
			if err != nil {
				return err
			}
			var patch models.ProfilePatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.FullName = &name
			}
			if flags.Changed("avatar") {
				patch.AvatarURL = &avatar
			}
			if flags.Changed("theme") {
				t := models.Theme(theme)
				patch.Theme = &t
			}
			if flags.Changed("currency") {
				patch.Currency = &currency
			}
			p, err := a.stores.Profile.UpdateProfile(a.ctx(cmd), id.UserID, patch)
			if err != nil {
				return err
			}
			a.printProfile(p)
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "full name")
	set.Flags().StringVar(&avatar, "avatar", "", "avatar URL")
	set.Flags().StringVar(&theme, "theme", "", "light or dark")
	set.Flags().StringVar(&currency, "currency", "", "ISO currency code, e.g. EUR")

	cmd.AddCommand(show, set)
	return cmd
}

func (a *app) printProfile(p models.UserProfile) {
	fmt.Fprintln(a.out, p.FullName)
	a.field("id", p.ID)
	a.field("email", optional(p.Email))
	a.field("currency", optional(p.Currency))
	theme := "-"
	if p.Theme != nil {
		theme = string(*p.Theme)
	}
	a.field("theme", theme)
	a.field("avatar", optional(p.AvatarURL))
}
