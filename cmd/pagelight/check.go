package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pagelight/pagelight/internal/content"
	"github.com/pagelight/pagelight/internal/imagery"
)

type checkOptions struct {
	JSON bool
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	opts := checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate page documents and the images they reference",
		Long: `Check parses every page document under the content directory, confirms
each one routes to a servable slug, and verifies that every hero and
gallery image exists and decodes. Returns exit code 0 when the content
is clean and 1 when any problem is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the report in JSON format")

	return cmd
}

type pageReport struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title,omitempty"`
	Sections int      `json:"sections"`
	Problems []string `json:"problems,omitempty"`
}

type checkReport struct {
	ContentDir string       `json:"content_dir"`
	ImagesDir  string       `json:"images_dir"`
	Revision   string       `json:"revision"`
	Pages      []pageReport `json:"pages"`
	Problems   int          `json:"problems"`
}

func runCheck(cmd *cobra.Command, flags *rootFlags, opts checkOptions) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	resolver := content.NewResolver(cfg.ContentDir, nil)
	summaries, err := resolver.List()
	if err != nil {
		return fmt.Errorf("failed to read content directory %s: %w", cfg.ContentDir, err)
	}

	report := checkReport{
		ContentDir: cfg.ContentDir,
		ImagesDir:  cfg.ImagesDir,
		Revision:   content.ResolveRevision(cfg.ContentDir).String(),
	}
	for _, summary := range summaries {
		page := checkPage(resolver, cfg.ImagesDir, summary)
		report.Pages = append(report.Pages, page)
		report.Problems += len(page.Problems)
	}

	out := cmd.OutOrStdout()
	if opts.JSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else {
		printCheckReport(out, report)
	}

	if report.Problems > 0 {
		return fmt.Errorf("%d problem(s) found in %s", report.Problems, cfg.ContentDir)
	}
	return nil
}

// checkPage validates one listed document: routability of its slug, then
// every image it references.
func checkPage(resolver *content.Resolver, imagesDir string, summary content.Summary) pageReport {
	report := pageReport{Slug: summary.Slug, Title: summary.Title, Sections: summary.Sections}

	if summary.Err != nil {
		report.Problems = append(report.Problems, summary.Err.Error())
		return report
	}
	if !content.SafeSlug(summary.Slug) {
		report.Problems = append(report.Problems, "file name is not a routable slug")
		return report
	}
	if content.Reserved(summary.Slug) {
		report.Problems = append(report.Problems, "slug is a reserved route; the document can never be served")
		return report
	}
	if target := content.Canonical(summary.Slug); target != summary.Slug {
		report.Problems = append(report.Problems,
			fmt.Sprintf("slug is an alias for %q; requests will load %s.yaml instead", target, target))
		return report
	}

	page, err := resolver.Resolve(summary.Slug)
	if err != nil {
		report.Problems = append(report.Problems, err.Error())
		return report
	}

	if page.Hero != nil && page.Hero.Image != "" {
		if problem := checkImage(imagesDir, page.Hero.Image); problem != "" {
			report.Problems = append(report.Problems, "hero: "+problem)
		}
	}
	for _, section := range page.Sections {
		if section.Gallery == nil {
			continue
		}
		for _, rel := range section.Gallery.Images {
			if problem := checkImage(imagesDir, rel); problem != "" {
				report.Problems = append(report.Problems, fmt.Sprintf("%s: %s", section.ID, problem))
			}
		}
	}

	return report
}

// checkImage confirms rel exists under imagesDir and decodes as an image.
func checkImage(imagesDir, rel string) string {
	if _, err := imagery.Inspect(filepath.Join(imagesDir, rel)); err != nil {
		return fmt.Sprintf("image %s: %v", rel, err)
	}
	return ""
}

func printCheckReport(out io.Writer, report checkReport) {
	fmt.Fprintf(out, "Checking %s (revision %s)\n\n", report.ContentDir, report.Revision)

	for _, page := range report.Pages {
		if len(page.Problems) == 0 {
			fmt.Fprintf(out, "  ✔ %s (%d sections)\n", page.Slug, page.Sections)
			continue
		}
		fmt.Fprintf(out, "  ✖ %s\n", page.Slug)
		for _, problem := range page.Problems {
			fmt.Fprintf(out, "      %s\n", problem)
		}
	}

	if report.Problems == 0 {
		fmt.Fprintf(out, "\nAll %d page(s) check out.\n", len(report.Pages))
	}
}
