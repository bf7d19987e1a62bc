package importer

import (
	"strings"

	"github.com/Hristiyan-Anchev/issueboard/internal/utils"
)

var importerConfigurationHomeDirectoryExpander = utils.NewHomeExpander()

const (
	configurationRepositoryKeyConstant    = "repository"
	configurationProjectOwnerKeyConstant  = "project_owner"
	configurationOwnerTypeKeyConstant     = "owner_type"
	configurationProjectNumberKeyConstant = "project_number"
	configurationCSVPathKeyConstant       = "csv"
	configurationColumnsPathKeyConstant   = "columns"
	configurationTokenSourceKeyConstant   = "token_source"
	configurationDryRunKeyConstant        = "dry_run"
	configurationKeySeparatorConstant     = "."
)

// Configuration aggregates settings for the import command.
type Configuration struct {
	Repository    string `mapstructure:"repository"`
	ProjectOwner  string `mapstructure:"project_owner"`
	OwnerType     string `mapstructure:"owner_type"`
	ProjectNumber int    `mapstructure:"project_number"`
	CSVPath       string `mapstructure:"csv"`
	ColumnsPath   string `mapstructure:"columns"`
	TokenSource   string `mapstructure:"token_source"`
	DryRun        bool   `mapstructure:"dry_run"`
}

// DefaultConfiguration supplies baseline values for the import command.
func DefaultConfiguration() Configuration {
	return Configuration{}
}

// DefaultConfigurationValues exposes defaults keyed for configuration merging.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + configurationRepositoryKeyConstant:    defaults.Repository,
		prefix + configurationKeySeparatorConstant + configurationProjectOwnerKeyConstant:  defaults.ProjectOwner,
		prefix + configurationKeySeparatorConstant + configurationOwnerTypeKeyConstant:     defaults.OwnerType,
		prefix + configurationKeySeparatorConstant + configurationProjectNumberKeyConstant: defaults.ProjectNumber,
		prefix + configurationKeySeparatorConstant + configurationCSVPathKeyConstant:       defaults.CSVPath,
		prefix + configurationKeySeparatorConstant + configurationColumnsPathKeyConstant:   defaults.ColumnsPath,
		prefix + configurationKeySeparatorConstant + configurationTokenSourceKeyConstant:   defaults.TokenSource,
		prefix + configurationKeySeparatorConstant + configurationDryRunKeyConstant:        defaults.DryRun,
	}
}

// Sanitize trims configured values and expands home-relative paths.
func (configuration Configuration) Sanitize() Configuration {
	sanitized := configuration
	sanitized.Repository = strings.TrimSpace(configuration.Repository)
	sanitized.ProjectOwner = strings.TrimSpace(configuration.ProjectOwner)
	sanitized.OwnerType = strings.TrimSpace(configuration.OwnerType)
	sanitized.CSVPath = sanitizePath(configuration.CSVPath)
	sanitized.ColumnsPath = sanitizePath(configuration.ColumnsPath)
	sanitized.TokenSource = strings.TrimSpace(configuration.TokenSource)
	return sanitized
}

func sanitizePath(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return ""
	}
	return importerConfigurationHomeDirectoryExpander.Expand(trimmedPath)
}
