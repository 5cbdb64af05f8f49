package content

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pagelight/pagelight/internal/logger"
	pagelighterrors "github.com/pagelight/pagelight/pkg/errors"
)

// safeSlugPattern matches the slugs the production site routes. Anything
// else is rejected before touching the filesystem.
var safeSlugPattern = regexp.MustCompile(`^[a-z0-9\-]+$`)

// reservedSlugs are routes the production server owns itself; they never
// resolve to page documents.
var reservedSlugs = map[string]struct{}{
	"subscribe":    {},
	"health":       {},
	"client-error": {},
	"static":       {},
}

// pageAliases maps legacy marketing URLs onto canonical documents.
var pageAliases = map[string]string{
	"privacy-policy": "privacy",
	"legal-terms":    "legal",
}

// SafeSlug reports whether a slug is routable at all.
func SafeSlug(slug string) bool {
	return safeSlugPattern.MatchString(slug)
}

// Reserved reports whether the production server keeps this slug for itself.
func Reserved(slug string) bool {
	_, ok := reservedSlugs[slug]
	return ok
}

// Canonical returns the document slug an incoming slug resolves to.
func Canonical(slug string) string {
	if target, ok := pageAliases[slug]; ok {
		return target
	}
	return slug
}

// Aliases returns a copy of the legacy slug mapping.
func Aliases() map[string]string {
	out := make(map[string]string, len(pageAliases))
	for alias, target := range pageAliases {
		out[alias] = target
	}
	return out
}

// Resolver locates and parses page documents under a content directory.
type Resolver struct {
	dir string
	log *logger.Logger
}

// NewResolver creates a resolver rooted at dir.
func NewResolver(dir string, log *logger.Logger) *Resolver {
	return &Resolver{dir: dir, log: log.WithComponent("content")}
}

// Dir returns the content root the resolver reads from.
func (r *Resolver) Dir() string {
	return r.dir
}

// Resolve maps a slug to its parsed page document. Unsafe, reserved, and
// unknown slugs all surface as NotFoundError; only well-formed documents
// that fail to parse or validate surface their own error.
func (r *Resolver) Resolve(slug string) (*Page, error) {
	if !SafeSlug(slug) {
		r.log.Debug("rejected unsafe slug")
		return nil, pagelighterrors.NewNotFoundError(slug)
	}
	if Reserved(slug) {
		return nil, pagelighterrors.NewNotFoundError(slug)
	}

	path := filepath.Join(r.dir, Canonical(slug)+".yaml")
	if _, err := os.Stat(path); err != nil {
		return nil, pagelighterrors.NewNotFoundError(slug)
	}

	return ParsePage(path)
}

// Path returns the document path a slug would resolve to, without reading it.
func (r *Resolver) Path(slug string) string {
	return filepath.Join(r.dir, Canonical(slug)+".yaml")
}

// Summary describes one available page for listings.
type Summary struct {
	Slug     string
	Title    string
	Sections int
	Err      error
}

// List walks the content directory and summarizes every page document,
// sorted by slug. Documents that fail to parse are listed with their error
// so a broken page never hides from the check command.
func (r *Resolver) List() ([]Summary, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	var summaries []Summary
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), ".yaml")

		page, err := ParsePage(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			summaries = append(summaries, Summary{Slug: slug, Err: err})
			continue
		}
		summaries = append(summaries, Summary{
			Slug:     slug,
			Title:    page.Title,
			Sections: len(page.Sections),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Slug < summaries[j].Slug
	})
	return summaries, nil
}
