package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bestemiy/inkstudio/config"
	"github.com/bestemiy/inkstudio/database"
)

var (
	seedFile string
	seedYes  bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed site content from a YAML file",
	Long: `Seed the site_content table from a YAML map of key: value pairs,
for example:

  hero_tagline: "Art for your skin"
  contact_email: "studio@example.com"

Existing keys are overwritten after confirmation (or unconditionally with
--yes).`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "seed file path")
	seedCmd.Flags().BoolVarP(&seedYes, "yes", "y", false, "overwrite existing keys without prompting")

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configFiles(cmd), cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("seed file %s contains no entries", seedFile)
	}

	repos, closeDB, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer closeDB()

	existing, err := repos.Content.All(ctx)
	if err != nil {
		return fmt.Errorf("read existing content: %w", err)
	}

	overlap := 0
	for key := range entries {
		if _, ok := existing[key]; ok {
			overlap++
		}
	}

	if overlap > 0 && !seedYes {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("Overwrite %d existing entries", overlap),
			IsConfirm: true,
		}
		if _, err := prompt.Run(); err != nil {
			slog.Info("seed aborted")
			return nil
		}
	}

	for key, value := range entries {
		if _, err := repos.Content.Upsert(ctx, key, value); err != nil {
			return fmt.Errorf("seed %q: %w", key, err)
		}
	}

	slog.Info("seed complete", "entries", len(entries), "overwritten", overlap)
	return nil
}
