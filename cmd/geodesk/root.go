package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/geodesk/geodesk/internal/ioconfig"
	"github.com/geodesk/geodesk/internal/iofs"
	"github.com/geodesk/geodesk/internal/iologger"
	"github.com/geodesk/geodesk/pkg/config"
	"github.com/geodesk/geodesk/pkg/geodesk"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geodesk",
		Short: "Geodesk works with tabular and geospatial data locally",
		Long: `Geodesk is a local-first workbench for tabular and geospatial data.
It ingests CSV files into single-file analytical datastores, extracts
bounding-box-scoped slices of the Overture Maps dataset, searches the
extracted places by name, and resolves street addresses to coordinates
through a cache-first geocoding pipeline.

Every operation is one line of the shared command surface:

  geodesk exec 'ingest city.duck places.csv'
  geodesk exec 'extract city.duck places place -122.46,47.48,-122.22,47.73'
  geodesk exec 'search city.duck overture_places_place "pike place"'
  geodesk exec 'geocode city.duck "400 Broad St, Seattle, WA"'

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GEODESK_*)
  3. Config file (geodesk.yaml)
  4. Built-in defaults`,
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			geodesk.Version, geodesk.Build),
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./geodesk.yaml or ~/.config/geodesk/geodesk.yaml)")
	rootCmd.Flags().BoolP("version", "V", false, "version for geodesk")

	rootCmd.AddCommand(getExecCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfgFile == "" {
		exists, err := ioconfig.ConfigFileExists(homeDir)
		if err == nil && !exists {
			if path, err := ioconfig.GenerateDefaultConfig(homeDir); err == nil {
				gn.Info("Generated default config at <em>%s</em>", path)
			}
		}
	}

	cfg, err = ioconfig.Load(cfgFile)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Debug("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))
	return nil
}
