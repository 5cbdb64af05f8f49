package content

import (
	"gopkg.in/yaml.v3"
)

// DefaultConsentLabel is the production consent checkbox text, used when a
// form section does not override it.
const DefaultConsentLabel = "I agree to receive the newsletter"

// Page represents one marketing/compliance page document.
type Page struct {
	Title       string    `yaml:"title" validate:"required,min=1,max=200"`
	Slug        string    `yaml:"slug" validate:"required,page_slug"`
	Description string    `yaml:"description,omitempty"`
	Hero        *Hero     `yaml:"hero,omitempty"`
	Sections    []Section `yaml:"sections,omitempty" validate:"omitempty,dive"`
}

// Hero is the banner block at the top of a page.
type Hero struct {
	Heading string `yaml:"heading" validate:"required"`
	Tagline string `yaml:"tagline,omitempty"`
	Image   string `yaml:"image,omitempty"`
}

// Section describes one block of page content.
type Section struct {
	Type string `yaml:"type" validate:"required,oneof=text cards gallery form"`
	ID   string `yaml:"id" validate:"required"`

	Text    *TextSection    `yaml:",inline,omitempty"`
	Cards   *CardsSection   `yaml:",inline,omitempty"`
	Gallery *GallerySection `yaml:",inline,omitempty"`
	Form    *FormSection    `yaml:",inline,omitempty"`
}

// UnmarshalYAML customises section decoding to populate type-specific
// structures without conflicts.
func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	type baseSection struct {
		Type string `yaml:"type"`
		ID   string `yaml:"id"`
	}

	var base baseSection
	if err := value.Decode(&base); err != nil {
		return err
	}

	s.Type = base.Type
	s.ID = base.ID

	s.Text = nil
	s.Cards = nil
	s.Gallery = nil
	s.Form = nil

	switch base.Type {
	case "text":
		var txt TextSection
		if err := value.Decode(&txt); err != nil {
			return err
		}
		s.Text = &txt
	case "cards":
		var cards CardsSection
		if err := value.Decode(&cards); err != nil {
			return err
		}
		s.Cards = &cards
	case "gallery":
		var gallery GallerySection
		if err := value.Decode(&gallery); err != nil {
			return err
		}
		s.Gallery = &gallery
	case "form":
		var form FormSection
		if err := value.Decode(&form); err != nil {
			return err
		}
		if form.ConsentLabel == "" {
			form.ConsentLabel = DefaultConsentLabel
		}
		s.Form = &form
	}

	return nil
}

// TextSection is prose, written in markdown.
type TextSection struct {
	Heading string `yaml:"heading,omitempty"`
	Body    string `yaml:"body" validate:"required"`
}

// Card is one tile in a cards section.
type Card struct {
	Title string `yaml:"title" validate:"required,min=1,max=100"`
	Body  string `yaml:"body,omitempty"`
	Icon  string `yaml:"icon,omitempty"`
}

// CardsSection is a row of cards, the pill/tile pattern of the site.
type CardsSection struct {
	Heading string `yaml:"heading,omitempty"`
	Cards   []Card `yaml:"cards" validate:"required,min=1,dive"`
}

// GallerySection lists images opened through the lightbox. Captions, when
// present, pair with images by position.
type GallerySection struct {
	Heading  string   `yaml:"heading,omitempty"`
	Images   []string `yaml:"images" validate:"required,min=1,dive,min=1"`
	Captions []string `yaml:"captions,omitempty"`
}

// FormSection is the newsletter subscribe block.
type FormSection struct {
	Heading      string `yaml:"heading,omitempty"`
	ConsentLabel string `yaml:"consent_label,omitempty"`
}

// SectionMap builds a lookup table for sections by ID.
func SectionMap(sections []Section) map[string]Section {
	out := make(map[string]Section, len(sections))
	for _, section := range sections {
		out[section.ID] = section
	}
	return out
}
