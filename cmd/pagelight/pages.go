package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pagelight/pagelight/internal/content"
)

func newPagesCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "List the page documents the kiosk can open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPages(cmd, flags)
		},
	}

	return cmd
}

func runPages(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	resolver := content.NewResolver(cfg.ContentDir, nil)
	summaries, err := resolver.List()
	if err != nil {
		return fmt.Errorf("failed to read content directory %s: %w", cfg.ContentDir, err)
	}

	out := cmd.OutOrStdout()
	if len(summaries) == 0 {
		fmt.Fprintf(out, "No page documents in %s.\n", cfg.ContentDir)
		return nil
	}

	aliasesFor := reverseAliases()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tSECTIONS\t")
	for _, summary := range summaries {
		if summary.Err != nil {
			fmt.Fprintf(w, "%s\t(broken)\t-\t%v\n", summary.Slug, summary.Err)
			continue
		}

		note := ""
		if aliases := aliasesFor[summary.Slug]; len(aliases) > 0 {
			note = "also " + strings.Join(aliases, ", ")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", summary.Slug, summary.Title, summary.Sections, note)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nReserved routes (never pages): %s\n", strings.Join(reservedList(), ", "))
	return nil
}

// reverseAliases groups the legacy slugs by the document they resolve to.
func reverseAliases() map[string][]string {
	out := make(map[string][]string)
	for alias, target := range content.Aliases() {
		out[target] = append(out[target], alias)
	}
	for _, aliases := range out {
		sort.Strings(aliases)
	}
	return out
}

func reservedList() []string {
	var out []string
	for _, slug := range []string{"client-error", "health", "static", "subscribe"} {
		if content.Reserved(slug) {
			out = append(out, slug)
		}
	}
	return out
}
