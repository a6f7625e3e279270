package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "inkstudio",
	Short:   "Content backend for the Bestemiy Ink studio site",
	Long: `Inkstudio serves the JSON content API behind the studio's public
marketing site and its password-gated admin console: tattoo portfolio,
site copy, testimonials and image uploads.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("db-type", "", "database type: sqlite, postgres (default: sqlite, env: INKSTUDIO_DATABASE_TYPE)")
	rootCmd.PersistentFlags().String("db-dsn", "", "database connection string (default: inkstudio.db, env: INKSTUDIO_DATABASE_DSN)")
	rootCmd.PersistentFlags().String("uploads-dir", "", "local uploads directory (default: ./public/uploads, env: INKSTUDIO_UPLOADS_DIR)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configFiles returns the --config value as a file list for config.Load.
func configFiles(cmd *cobra.Command) []string {
	file, _ := cmd.Flags().GetString("config")
	if file == "" {
		return nil
	}
	return []string{file}
}
