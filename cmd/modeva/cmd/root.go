// Package cmd implements the modeva commands.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/client"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "modeva",
		Short: "Modeva storefront service and tools",
		Long: "modeva runs the storefront API and manages its database.\n" +
			"The browse and history commands exercise a running storefront\n" +
			"from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default ./modeva.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8081", "storefront URL for client commands")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	viper.SetEnvPrefix("MODEVA")
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(historyCmd())
}

// setup loads configuration and installs the global logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.Install(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// connectDB is setup plus a database connection. The caller closes it with
// config.CloseDB.
func connectDB() (*config.Config, *zap.Logger, error) {
	cfg, log, err := setup()
	if err != nil {
		return nil, nil, err
	}
	if err := config.InitDB(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newClient() *client.Client {
	return client.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
