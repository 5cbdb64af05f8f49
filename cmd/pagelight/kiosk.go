package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/pagelight/pagelight/internal/audit"
	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/forms"
	"github.com/pagelight/pagelight/internal/imagery"
	"github.com/pagelight/pagelight/internal/tui/kiosk"
)

// loaderWorkers bounds concurrent image decodes.
const loaderWorkers = 2

// runKiosk launches the interactive preview for one starting slug.
func runKiosk(flags *rootFlags, slug string) (err error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("pagelight needs an interactive terminal; try 'pagelight pages' or 'pagelight check'")
	}

	log, err := newRunLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	auditor := audit.NewBuffer(0)
	resolver := content.NewResolver(cfg.ContentDir, log)
	form := forms.NewForm(auditor)

	loader := imagery.NewLoader(loaderWorkers, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loader.Start(ctx)

	// The session record replays to the log on the way out, crashes
	// included, the way the site ships client errors home.
	defer auditor.Flush(log)
	defer loader.Close()
	defer func() {
		if r := recover(); r != nil {
			auditor.Record(audit.EventClientError, map[string]any{"panic": fmt.Sprint(r), "slug": slug})
			err = fmt.Errorf("kiosk crashed: %v", r)
		}
	}()

	m := kiosk.NewModel(cfg, resolver, form, loader, auditor, log, slug)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run kiosk: %w", err)
	}

	log.Info("kiosk closed")
	return nil
}
