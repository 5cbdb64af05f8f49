package main

import (
	"github.com/spf13/cobra"

	"github.com/pagelight/pagelight/internal/config"
	"github.com/pagelight/pagelight/internal/logger"
)

// defaultSlug is the page the kiosk opens when none is named, matching the
// site's landing route.
const defaultSlug = "home"

type rootFlags struct {
	configPath string
	contentDir string
	imagesDir  string
	logFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "pagelight [slug]",
		Short:         "Pagelight previews marketing site pages in the terminal",
		Long: `Pagelight renders the site's page documents as an interactive terminal
kiosk: scrollable pages, card highlights, image galleries, and a zoomable
lightbox, driven from the same content the production site serves.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := defaultSlug
			if len(args) == 1 {
				slug = args[0]
			}
			return runKiosk(flags, slug)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "pagelight.yaml", "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&flags.contentDir, "content-dir", "", "Override the content directory")
	cmd.PersistentFlags().StringVar(&flags.imagesDir, "images-dir", "", "Override the images directory")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Append logs to this file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newPagesCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig(flags *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.contentDir != "" {
		cfg.ContentDir = flags.contentDir
		if flags.imagesDir == "" {
			cfg.ImagesDir = ""
		}
	}
	if flags.imagesDir != "" {
		cfg.ImagesDir = flags.imagesDir
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}
	if flags.verbose {
		cfg.Log.Level = "debug"
	}

	cfg.ApplyDefaults()
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRunLogger builds the file-backed logger the kiosk and subcommands
// share. With no log file configured it stays silent; the terminal belongs
// to the TUI.
func newRunLogger(cfg *config.Config) (*logger.Logger, error) {
	if cfg.Log.File == "" {
		return nil, nil
	}
	return logger.New(logger.Options{
		Level:    cfg.Log.Level,
		FilePath: cfg.Log.File,
	})
}
