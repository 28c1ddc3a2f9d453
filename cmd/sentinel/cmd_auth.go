package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/session"
)

// appFunc returns the App built for the running command
type appFunc func() *App

// passwordFrom returns the flag value or prompts for one
func passwordFrom(cmd *cobra.Command, flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return readPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt)
}

func newLoginCmd(app appFunc) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the access token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			pw, err := passwordFrom(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			if _, err := a.Client.Login(cmd.Context(), args[0], pw); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged in as %s\n", args[0])
			if a.Store != nil {
				fmt.Fprintf(out, "Token saved to %s\n", a.Store.Path())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app().Client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newRegisterCmd(app appFunc) *cobra.Command {
	var req models.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd, req.Password, "Choose a password: ")
			if err != nil {
				return err
			}
			req.Password = pw
			if err := req.Validate(); err != nil {
				return err
			}

			user, err := app().Client.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", user.Username, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (prompted when omitted)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("username")
	return cmd
}

func newPasswdCmd(app appFunc) *cobra.Command {
	var req models.PasswordChange
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the current account's password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.CurrentPassword, err = passwordFrom(cmd, req.CurrentPassword, "Current password: "); err != nil {
				return err
			}
			if req.NewPassword, err = passwordFrom(cmd, req.NewPassword, "New password: "); err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}
			if err := app().Client.ChangePassword(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&req.CurrentPassword, "current", "", "current password (prompted when omitted)")
	cmd.Flags().StringVar(&req.NewPassword, "new", "", "new password (prompted when omitted)")
	return cmd
}

func newWhoamiCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if !a.Session.HasToken() {
				return errNotLoggedIn
			}
			user, err := a.Client.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatUser(a.Styles, user))
			return nil
		},
	}
}

var errNotLoggedIn = errors.New("not logged in, run: sentinel login <username>")

func newTokenCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show the claims of the stored access token",
		Long:  "Decodes the stored token for display. The signature is not verified.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			claims, err := a.Session.Claims()
			if errors.Is(err, session.ErrNoToken) {
				return errNotLoggedIn
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatClaims(a.Styles, claims, a.Dashboard.Now()))
			return nil
		},
	}
}
