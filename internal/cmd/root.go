// Package cmd implements the cerebro command-line interface.
package cmd

import (
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/cerebro/internal/cmd/config"
	appconfig "github.com/Iron-Ham/cerebro/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cerebro",
	Short: "Survival kit for ADHD brains",
	Long: `Cerebro is a terminal companion for ADHD brains: a traffic-light task
board capped at three urgent tasks, a focus timer, bionic reading and a
pocket coach that breaks overwhelming tasks into micro-steps.

Run without a subcommand to open the interactive interface.`,
	SilenceUsage: true,
	RunE:         runUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cerebro/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding state and logs (default is $HOME/.local/share/cerebro)")

	config.Register(rootCmd)
}

func initConfig() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("storage.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	// API keys usually live in a .env next to the project or the config.
	// Existing environment variables win over both files.
	_ = godotenv.Load()
	_ = godotenv.Load(filepath.Join(appconfig.ConfigDir(), ".env"))

	// Set defaults first so they're available even without a config file
	appconfig.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(appconfig.ConfigDir())
		viper.AddConfigPath("$HOME/.config/cerebro")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CEREBRO")
	// e.g., CEREBRO_AI_BACKEND for ai.backend
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
