// Package imagery loads the site's image assets and turns them into
// terminal-renderable frames for the kiosk's gallery and lightbox.
package imagery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions are the formats the kiosk can decode.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// Scan walks an image tree and returns the image paths relative to root,
// sorted. Dotfiles and dot-directories are skipped.
func Scan(root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
