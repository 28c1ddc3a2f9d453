package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/models"
	"github.com/bobmcallan/sentinel/internal/services/dashboard"
	"github.com/bobmcallan/sentinel/internal/services/loader"
)

// writeChart saves PNG bytes and reports the path
func writeChart(out io.Writer, path string, png []byte) error {
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return fmt.Errorf("failed to write chart %s: %w", path, err)
	}
	fmt.Fprintf(out, "\nChart written to %s\n", path)
	return nil
}

func newDashboardCmd(app appFunc) *cobra.Command {
	var live bool
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the overview, portfolio, alerts and news",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if live {
				m := newLiveModel(cmd.Context(), a.Dashboard, a.Styles, a.Config.Dashboard.Greeting)
				_, err := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
				return err
			}

			// Sections load independently; each settles on its own.
			ctx := cmd.Context()
			svc := a.Dashboard
			portfolioCh := loader.Start(ctx, svc.PortfolioSource(), svc.LoadOptions()...)
			alertsCh := loader.Start(ctx, svc.AlertsSource(), svc.LoadOptions()...)
			newsCh := loader.Start(ctx, svc.NewsSource(), svc.LoadOptions()...)

			out := cmd.OutOrStdout()
			now := svc.Now()
			fmt.Fprintln(out, formatOverview(a.Styles, a.Config.Dashboard.Greeting))
			fmt.Fprintln(out, formatPortfolio(a.Styles, dashboard.NewPortfolioSection(<-portfolioCh)))
			fmt.Fprintln(out, formatAlerts(a.Styles, dashboard.AlertsSection(<-alertsCh), now))
			fmt.Fprint(out, formatNews(a.Styles, dashboard.NewsSection(<-newsCh), now))
			return nil
		},
	}
	cmd.Flags().BoolVar(&live, "live", false, "interactive dashboard with per-section loading")
	return cmd
}

func newAlertsCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show the risk alert timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			sec := a.Dashboard.Alerts(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatAlerts(a.Styles, sec, a.Dashboard.Now()))
			return nil
		},
	}
}

func newNewsCmd(app appFunc) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show market news scored for portfolio impact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			svc := a.NewsService(limit)
			sec := svc.News(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), formatNews(a.Styles, sec, svc.Now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of stories (default from config)")
	return cmd
}

func newPortfolioCmd(app appFunc) *cobra.Command {
	var tab, chartPath string
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Show the portfolio summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(dashboard.PortfolioTabs, tab) {
				return fmt.Errorf("unknown tab %q (want one of %s)", tab, strings.Join(dashboard.PortfolioTabs, ", "))
			}
			a := app()
			sec := a.Dashboard.Portfolio(cmd.Context())
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatPortfolio(a.Styles, sec))

			if chartPath == "" {
				return nil
			}
			png, err := dashboard.RenderPortfolioTab(sec, tab)
			if err != nil {
				return err
			}
			return writeChart(out, chartPath, png)
		},
	}
	cmd.Flags().StringVar(&tab, "tab", dashboard.TabOverview, "chart tab: overview, allocation, cashflow")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write the tab's chart to this PNG file")
	return cmd
}

func newSimulateCmd(app appFunc) *cobra.Command {
	var (
		req       models.SimulationRequest
		shock     = models.DefaultCustomShock()
		chartPath string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a disaster simulation against your finances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.ScenarioType == models.ScenarioCustom {
				req.Custom = &shock
			}
			a := app()
			sec, err := a.Dashboard.Simulation(cmd.Context(), req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatSimulation(a.Styles, sec))

			if chartPath == "" {
				return nil
			}
			outcome := sec.Outcome()
			if outcome == nil {
				return fmt.Errorf("no simulation result to chart")
			}
			png, err := dashboard.RenderTimelineChart(outcome.Timeline)
			if err != nil {
				return err
			}
			return writeChart(out, chartPath, png)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.ScenarioType, "scenario", models.ScenarioMarketCrash, "scenario id (see: sentinel scenarios)")
	f.IntVar(&req.DurationMonths, "duration", 6, "duration in months: 3, 6, 12, 24")
	f.StringVar(&req.Severity, "severity", "medium", "severity: mild, medium, severe, extreme")
	f.StringVar(&req.PortfolioID, "portfolio", "", "portfolio id to simulate against")
	f.Float64Var(&shock.StockMarketImpact, "stock-impact", shock.StockMarketImpact, "custom: stock market drop in percent")
	f.Float64Var(&shock.RealEstateImpact, "real-estate-impact", shock.RealEstateImpact, "custom: real estate drop in percent")
	f.Float64Var(&shock.InflationRate, "inflation", shock.InflationRate, "custom: inflation rate in percent")
	f.Float64Var(&shock.InterestRateChange, "interest-change", shock.InterestRateChange, "custom: interest rate change in points")
	f.Float64Var(&shock.IncomeReduction, "income-reduction", shock.IncomeReduction, "custom: income reduction in percent")
	f.StringVar(&chartPath, "chart", "", "write the net worth timeline to this PNG file")
	return cmd
}

func newScenariosCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List simulation scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			fmt.Fprint(cmd.OutOrStdout(), formatScenarios(a.Styles, a.Dashboard.Scenarios(cmd.Context())))
			return nil
		},
	}
}

func newPlaybookCmd(app appFunc) *cobra.Command {
	var horizon string
	cmd := &cobra.Command{
		Use:   "playbook",
		Short: "Show your defense playbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if horizon != "" && !slices.Contains(dashboard.Horizons, horizon) {
				return fmt.Errorf("unknown horizon %q (want one of %s)", horizon, strings.Join(dashboard.Horizons, ", "))
			}
			a := app()
			fmt.Fprint(cmd.OutOrStdout(), formatPlaybook(a.Styles, a.Dashboard.Playbooks(cmd.Context()), horizon))
			return nil
		},
	}
	cmd.Flags().StringVar(&horizon, "horizon", "", "only this horizon: immediate, short-term, long-term")
	return cmd
}

func newPolicyCmd(app appFunc) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Show financial policy updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			category = strings.ToLower(category)
			if !slices.Contains(dashboard.PolicyCategories, category) {
				return fmt.Errorf("unknown category %q (want one of %s)", category, strings.Join(dashboard.PolicyCategories, ", "))
			}
			a := app()
			fmt.Fprint(cmd.OutOrStdout(), formatPolicy(a.Styles, a.Dashboard.PolicyUpdates(cmd.Context(), category)))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "all", "tab: all, banking, taxation, markets, crypto")
	return cmd
}

func newVersionCmd(app appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a := app()
			common.PrintBanner(cmd.OutOrStdout(), a.Config, a.Logger)
		},
	}
}
