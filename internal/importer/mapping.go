package importer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultTitleColumnNameConstant        = "Title"
	defaultBodyColumnNameConstant         = "Body"
	defaultLabelsColumnNameConstant       = "Labels"
	defaultStatusColumnNameConstant       = "Status"
	defaultParentColumnNameConstant       = "Parent"
	mappingPathRequiredMessageConstant = "column mapping path must be provided"
	mappingLoadErrorTemplateConstant   = "failed to load column mapping: %w"
	mappingParseErrorTemplateConstant  = "failed to parse column mapping: %w"
)

// ColumnMapping names the input table headers recognized for each row field.
type ColumnMapping struct {
	Title  string `yaml:"title"`
	Body   string `yaml:"body"`
	Labels string `yaml:"labels"`
	Status string `yaml:"status"`
	Parent string `yaml:"parent"`
}

// DefaultColumnMapping returns the canonical header names.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		Title:  defaultTitleColumnNameConstant,
		Body:   defaultBodyColumnNameConstant,
		Labels: defaultLabelsColumnNameConstant,
		Status: defaultStatusColumnNameConstant,
		Parent: defaultParentColumnNameConstant,
	}
}

// LoadColumnMapping reads a YAML mapping file, filling unspecified columns
// with the canonical header names. The file may nest the mapping under a
// top-level columns block.
func LoadColumnMapping(filePath string) (ColumnMapping, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return ColumnMapping{}, errors.New(mappingPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return ColumnMapping{}, fmt.Errorf(mappingLoadErrorTemplateConstant, readError)
	}

	var mapping ColumnMapping
	if unmarshalError := yaml.Unmarshal(contentBytes, &mapping); unmarshalError != nil {
		return ColumnMapping{}, fmt.Errorf(mappingParseErrorTemplateConstant, unmarshalError)
	}

	if mapping == (ColumnMapping{}) {
		var wrapper struct {
			Columns ColumnMapping `yaml:"columns"`
		}
		if unmarshalError := yaml.Unmarshal(contentBytes, &wrapper); unmarshalError != nil {
			return ColumnMapping{}, fmt.Errorf(mappingParseErrorTemplateConstant, unmarshalError)
		}
		mapping = wrapper.Columns
	}

	return mapping.withDefaults(), nil
}

func (mapping ColumnMapping) withDefaults() ColumnMapping {
	defaults := DefaultColumnMapping()
	resolved := mapping
	if len(strings.TrimSpace(resolved.Title)) == 0 {
		resolved.Title = defaults.Title
	}
	if len(strings.TrimSpace(resolved.Body)) == 0 {
		resolved.Body = defaults.Body
	}
	if len(strings.TrimSpace(resolved.Labels)) == 0 {
		resolved.Labels = defaults.Labels
	}
	if len(strings.TrimSpace(resolved.Status)) == 0 {
		resolved.Status = defaults.Status
	}
	if len(strings.TrimSpace(resolved.Parent)) == 0 {
		resolved.Parent = defaults.Parent
	}
	return resolved
}
