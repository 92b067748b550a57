// Package cli implements hubctl, the operator command line for the hub.
package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pridenomad-hub/config"
	"pridenomad-hub/internal/app"
	"pridenomad-hub/internal/pkg/logger"
)

var (
	envFile      string
	outputFormat string

	// openApp builds the dependencies a command runs against.
	openApp = func(ctx context.Context) (*app.App, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log := logger.New(logger.Config{Level: viper.GetString("log_level"), Format: "console"})
		return app.New(ctx, cfg, log)
	}
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hubctl",
		Short: "Operate a PrideNomad Hub deployment",
		Long: `hubctl runs operator tasks against the hub database: confirming
payments by hand, purging stale pending claims and managing admins.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load before reading configuration")
	root.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json")
	root.PersistentFlags().String("log-level", "warn", "log level for service output")

	_ = viper.BindPFlag("output", root.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newConfirmPaymentCmd())
	root.AddCommand(newClaimsCmd())
	root.AddCommand(newAdminsCmd())
	root.AddCommand(newPlansCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}

func initConfig() error {
	viper.SetEnvPrefix("HUBCTL")
	viper.AutomaticEnv()
	viper.SetDefault("output", "table")
	viper.SetDefault("log_level", "warn")

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return nil
}

// withApp opens the hub, runs fn and closes it again.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
