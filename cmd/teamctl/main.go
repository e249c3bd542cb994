// Command teamctl is the Scoracle team resolution CLI.
//
// Usage:
//
//	teamctl resolve nfl "kc chiefs"
//	teamctl resolve epl forest --json
//	teamctl leagues
//	teamctl logo uefa --dark
//	teamctl providers
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-teams/internal/catalog"
	"github.com/albapepper/scoracle-teams/internal/config"
	"github.com/albapepper/scoracle-teams/internal/overrides"
	"github.com/albapepper/scoracle-teams/internal/provider"
	"github.com/albapepper/scoracle-teams/internal/provider/espn"
	"github.com/albapepper/scoracle-teams/internal/provider/ncaa"
	"github.com/albapepper/scoracle-teams/internal/provider/sportsdb"
	"github.com/albapepper/scoracle-teams/internal/resolve"
)

var logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "teamctl",
		Short: "Scoracle team resolution CLI",
	}

	root.AddCommand(resolveCmd())
	root.AddCommand(leaguesCmd())
	root.AddCommand(logoCmd())
	root.AddCommand(providersCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// resolve command
// --------------------------------------------------------------------------

func resolveCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "resolve <league> <team>",
		Short: "Resolve a team identifier to a canonical team record",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, svc *service) error {
				league, err := svc.resolver.FindLeague(ctx, args[0])
				if err != nil {
					return err
				}
				team, err := svc.resolver.ResolveTeam(ctx, league, strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(team)
				}
				fmt.Printf("%s (%s)\n", team.FullName, team.Abbreviation)
				if team.City != "" {
					fmt.Printf("  city:  %s\n", team.City)
				}
				fmt.Printf("  league: %s\n", league.ShortName)
				if team.Logo != "" {
					fmt.Printf("  logo:  %s\n", team.Logo)
				}
				fmt.Printf("  colors: %s / %s\n", team.Color, team.AlternateColor)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full team record as JSON")
	return cmd
}

// --------------------------------------------------------------------------
// leagues command
// --------------------------------------------------------------------------

func leaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List configured leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, svc *service) error {
				for _, l := range svc.catalog.All() {
					extra := ""
					if len(l.FeederLeagues) > 0 {
						extra = " feeders=" + strings.Join(l.FeederLeagues, ",")
					}
					if l.FallbackLeague != "" {
						extra += " fallback=" + l.FallbackLeague
					}
					fmt.Printf("%-10s %-28s %s%s\n", l.Key, l.Name, l.ShortName, extra)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// logo command
// --------------------------------------------------------------------------

func logoCmd() *cobra.Command {
	var dark bool
	cmd := &cobra.Command{
		Use:   "logo <league>",
		Short: "Print a league logo URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, svc *service) error {
				league, err := svc.resolver.FindLeague(ctx, args[0])
				if err != nil {
					return err
				}
				url, err := svc.resolver.LeagueLogoURL(ctx, league, dark)
				if err != nil {
					return err
				}
				fmt.Println(url)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dark, "dark", false, "Prefer the dark-background variant")
	return cmd
}

// --------------------------------------------------------------------------
// providers command
// --------------------------------------------------------------------------

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered providers and their leagues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWith(func(ctx context.Context, svc *service) error {
				for _, info := range svc.registry.ProviderInfo() {
					discovery := ""
					if info.Discovery {
						discovery = " (discovery)"
					}
					fmt.Printf("%s%s: %s\n", info.ID, discovery, strings.Join(info.SupportedLeagues, ", "))
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

type service struct {
	catalog  *catalog.Catalog
	registry *provider.Registry
	resolver *resolve.Resolver
}

// runWith handles config loading, service construction, and context
// cancellation.
func runWith(fn func(ctx context.Context, svc *service) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load league catalog: %w", err)
	}
	ov, err := overrides.Load()
	if err != nil {
		return fmt.Errorf("load team overrides: %w", err)
	}

	registry := provider.NewRegistry(logger,
		espn.New(cat, ov, espn.Config{
			RequestsPerMinute: cfg.ESPNRequestsPerMinute,
			Timeout:           cfg.RequestTimeout,
		}, logger),
		sportsdb.New(cat, ov, sportsdb.Config{
			APIKey:            cfg.SportsDBAPIKey,
			RequestsPerMinute: cfg.SportsDBRequestsPerMinute,
			Timeout:           cfg.RequestTimeout,
		}, logger),
		ncaa.New(cat, ov, ncaa.Config{
			RequestsPerMinute: cfg.NCAARequestsPerMinute,
			Timeout:           cfg.RequestTimeout,
		}, logger),
	)
	registry.Initialize()

	return fn(ctx, &service{
		catalog:  cat,
		registry: registry,
		resolver: resolve.New(cat, registry, ov, logger),
	})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
