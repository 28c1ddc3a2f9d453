package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/sentinel/internal/common"
)

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configPaths []string
	apiURL      string
	tokenPath   string
	logLevel    string
}

func main() {
	common.LoadVersionFromFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Commands share one App, built after
// flag parsing.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	var a *App

	root := &cobra.Command{
		Use:   "sentinel",
		Short: "Black Swan Sentinel - financial risk dashboard",
		Long: `Sentinel is a terminal client for the Black Swan Sentinel risk API.

It shows portfolio summaries, risk alerts, market news, policy updates,
disaster simulations and a defense playbook. Sections fall back to demo
data when the backend cannot be reached.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(flags)
			if err != nil {
				return err
			}
			a = NewApp(config, nil)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringSliceVar(&flags.configPaths, "config", nil, "config file (repeatable, later files override; default $SENTINEL_CONFIG)")
	pf.StringVar(&flags.apiURL, "api-url", "", "backend base URL (overrides config)")
	pf.StringVar(&flags.tokenPath, "token-path", "", `credentials file, "-" keeps the token in memory only`)
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	// Commands receive the App through a getter since it is created in
	// PersistentPreRunE.
	app := func() *App { return a }

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newRegisterCmd(app),
		newPasswdCmd(app),
		newWhoamiCmd(app),
		newTokenCmd(app),
		newDashboardCmd(app),
		newAlertsCmd(app),
		newNewsCmd(app),
		newPortfolioCmd(app),
		newSimulateCmd(app),
		newScenariosCmd(app),
		newPlaybookCmd(app),
		newPolicyCmd(app),
		newVersionCmd(app),
	)
	return root
}

// loadConfig merges config files, environment and flags. Flags win.
func loadConfig(flags *rootFlags) (*common.Config, error) {
	paths := flags.configPaths
	if len(paths) == 0 {
		if env := os.Getenv("SENTINEL_CONFIG"); env != "" {
			paths = strings.Split(env, ",")
		}
	}

	config, err := common.LoadConfig(paths...)
	if err != nil {
		return nil, err
	}

	if flags.apiURL != "" {
		config.API.BaseURL = strings.TrimRight(strings.TrimSpace(flags.apiURL), "/")
	}
	if flags.tokenPath != "" {
		config.Session.TokenPath = flags.tokenPath
		config.Session.Disabled = flags.tokenPath == "-"
	}
	if flags.logLevel != "" {
		config.Logging.Level = strings.ToLower(flags.logLevel)
	}
	return config, nil
}
