package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkedDoc = `title: About
slug: about
hero:
  heading: Aurora Labs
  image: hero.png
sections:
  - type: gallery
    id: press
    heading: Press kit
    images:
      - press/one.png
    captions:
      - Launch day
`

func TestCheckCommandPassesCleanContent(t *testing.T) {
	content := t.TempDir()
	writePageDoc(t, content, "about", checkedDoc)
	writeImagePNG(t, filepath.Join(content, "images", "hero.png"))
	writeImagePNG(t, filepath.Join(content, "images", "press", "one.png"))

	stdout, err := executeCommand("check", "--config", missingConfig(t), "--content-dir", content)
	require.NoError(t, err)

	assert.Contains(t, stdout, "✔ about")
	assert.Contains(t, stdout, "check out")
}

func TestCheckCommandFlagsMissingImage(t *testing.T) {
	content := t.TempDir()
	writePageDoc(t, content, "about", checkedDoc)
	writeImagePNG(t, filepath.Join(content, "images", "hero.png"))

	stdout, err := executeCommand("check", "--config", missingConfig(t), "--content-dir", content)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "1 problem(s)")
	assert.Contains(t, stdout, "✖ about")
	assert.Contains(t, stdout, "press/one.png")
}

func TestCheckCommandFlagsUndecodableImage(t *testing.T) {
	content := t.TempDir()
	writePageDoc(t, content, "about", checkedDoc)
	writeImagePNG(t, filepath.Join(content, "images", "hero.png"))
	garbled := filepath.Join(content, "images", "press", "one.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(garbled), 0o755))
	require.NoError(t, os.WriteFile(garbled, []byte("not an image"), 0o644))

	stdout, err := executeCommand("check", "--config", missingConfig(t), "--content-dir", content)
	require.Error(t, err)
	assert.Contains(t, stdout, "✖ about")
}

func TestCheckCommandFlagsBrokenDocument(t *testing.T) {
	content := t.TempDir()
	writePageDoc(t, content, "about", "title: [\n")

	stdout, err := executeCommand("check", "--config", missingConfig(t), "--content-dir", content)
	require.Error(t, err)
	assert.Contains(t, stdout, "✖ about")
}

func TestCheckCommandFlagsAliasNamedDocument(t *testing.T) {
	content := t.TempDir()
	writePageDoc(t, content, "privacy-policy", "title: Privacy Policy\nslug: privacy\n")

	stdout, err := executeCommand("check", "--config", missingConfig(t), "--content-dir", content)
	require.Error(t, err)
	assert.Contains(t, stdout, `alias for "privacy"`)
}

func TestCheckCommandFlagsCaptionMismatch(t *testing.T) {
	content := t.TempDir()
	doc := `title: About
slug: about
sections:
  - type: gallery
    id: press
    images:
      - press/one.png
    captions:
      - First
      - Second
`
	writePageDoc(t, content, "about", doc)
	writeImagePNG(t, filepath.Join(content, "images", "press", "one.png"))

	stdout, err := executeCommand("check", "--config", missingConfig(t), "--content-dir", content)
	require.Error(t, err)
	assert.Contains(t, stdout, "2 captions for 1 images")
}

func TestCheckCommandJSONReport(t *testing.T) {
	content := t.TempDir()
	writePageDoc(t, content, "about", checkedDoc)
	writeImagePNG(t, filepath.Join(content, "images", "hero.png"))

	stdout, err := executeCommand("check", "--json", "--config", missingConfig(t), "--content-dir", content)
	require.Error(t, err)

	var report struct {
		ContentDir string `json:"content_dir"`
		Revision   string `json:"revision"`
		Pages      []struct {
			Slug     string   `json:"slug"`
			Title    string   `json:"title"`
			Problems []string `json:"problems"`
		} `json:"pages"`
		Problems int `json:"problems"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))

	assert.Equal(t, content, report.ContentDir)
	assert.Equal(t, "untracked", report.Revision)
	assert.Equal(t, 1, report.Problems)
	require.Len(t, report.Pages, 1)
	assert.Equal(t, "about", report.Pages[0].Slug)
	assert.Equal(t, "About", report.Pages[0].Title)
	require.Len(t, report.Pages[0].Problems, 1)
	assert.Contains(t, report.Pages[0].Problems[0], "press/one.png")
}
