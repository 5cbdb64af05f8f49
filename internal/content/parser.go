package content

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pagelight/pagelight/internal/config"
	pagelighterrors "github.com/pagelight/pagelight/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParsePage loads a page document from disk, validates it, and returns the
// resulting model.
func ParsePage(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pagelighterrors.NewParseError(path, 0, err)
	}

	var page Page
	if err := yaml.Unmarshal(data, &page); err != nil {
		return nil, pagelighterrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidatePage(&page); err != nil {
		return nil, err
	}

	return &page, nil
}

// ValidatePage performs schema and cross-field validation on a page.
func ValidatePage(page *Page) error {
	if page == nil {
		return pagelighterrors.NewValidationError("page", "page is nil", nil)
	}

	v := config.GetValidator()
	if err := v.Struct(page); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]int, len(page.Sections))
	for i, section := range page.Sections {
		if _, exists := seen[section.ID]; exists {
			return pagelighterrors.NewValidationError(
				fieldForSection(i, "id"),
				fmt.Sprintf("duplicate section id %q", section.ID), nil)
		}
		seen[section.ID] = i

		if err := validateSection(section, i); err != nil {
			return err
		}
	}

	return nil
}

func validateSection(section Section, index int) error {
	v := config.GetValidator()

	switch section.Type {
	case "text":
		if section.Text == nil {
			return pagelighterrors.NewValidationError(fieldForSection(index, "body"), "text configuration is required", nil)
		}
		if err := v.Struct(section.Text); err != nil {
			return convertValidationError(err)
		}
	case "cards":
		if section.Cards == nil {
			return pagelighterrors.NewValidationError(fieldForSection(index, "cards"), "cards configuration is required", nil)
		}
		if err := v.Struct(section.Cards); err != nil {
			return convertValidationError(err)
		}
	case "gallery":
		if section.Gallery == nil {
			return pagelighterrors.NewValidationError(fieldForSection(index, "images"), "gallery configuration is required", nil)
		}
		if err := v.Struct(section.Gallery); err != nil {
			return convertValidationError(err)
		}
		captions := section.Gallery.Captions
		if len(captions) > 0 && len(captions) != len(section.Gallery.Images) {
			return pagelighterrors.NewValidationError(
				fieldForSection(index, "captions"),
				fmt.Sprintf("%d captions for %d images", len(captions), len(section.Gallery.Images)), nil)
		}
	case "form":
		if section.Form == nil {
			return pagelighterrors.NewValidationError(fieldForSection(index, "form"), "form configuration is required", nil)
		}
	default:
		return pagelighterrors.NewValidationError(fieldForSection(index, "type"), fmt.Sprintf("unknown section type %q", section.Type), nil)
	}

	return nil
}

func fieldForSection(index int, field string) string {
	return fmt.Sprintf("sections[%d].%s", index, field)
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return pagelighterrors.NewValidationError(field, msg, err)
	}

	return pagelighterrors.NewValidationError("page", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.StructNamespace())
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
