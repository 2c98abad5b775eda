package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"statekeep/internal/domain"
	"statekeep/internal/services/user"
)

var (
	name   string
	email  string
	id     string
	avatar string
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Read or change the stored login",
	}
	cmd.AddCommand(userShowCmd(), loginCmd(), logoutCmd(), updateCmd())
	return cmd
}

func userShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printUser(cmd.OutOrStdout(), appCtx.User.State())
			return nil
		},
	}
}

// loginCmd stores a new profile. Name and email must be non-empty; no other
// check is made.
func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a profile and mark it logged in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" {
				return errors.New("--name and --email required")
			}
			r := user.NewRecord(name, email)
			if id != "" {
				r.ID = id
			}
			if avatar != "" {
				r.Avatar = avatar
			}
			appCtx.User.Login(r)
			printUser(cmd.OutOrStdout(), appCtx.User.State())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&id, "id", "", "record id (default: generated)")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URL (default: generated from name)")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appCtx.User.Logout()
			printUser(cmd.OutOrStdout(), appCtx.User.State())
			return nil
		},
	}
}

// updateCmd merges the non-empty flags into the stored profile.
func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change fields of the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p domain.UserPatch
			if name != "" {
				p.Name = &name
			}
			if email != "" {
				p.Email = &email
			}
			if avatar != "" {
				p.Avatar = &avatar
			}
			if p.Empty() {
				return errors.New("nothing to update: pass --name, --email or --avatar")
			}
			if !appCtx.User.State().IsLoggedIn {
				return errors.New("not logged in")
			}
			appCtx.User.UpdateProfile(p)
			printUser(cmd.OutOrStdout(), appCtx.User.State())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	cmd.Flags().StringVar(&avatar, "avatar", "", "new avatar URL")
	return cmd
}
