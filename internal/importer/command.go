package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Hristiyan-Anchev/issueboard/internal/githubapi"
	"github.com/Hristiyan-Anchev/issueboard/internal/githubauth"
	"github.com/Hristiyan-Anchev/issueboard/internal/issues"
	"github.com/Hristiyan-Anchev/issueboard/internal/projects"
	"github.com/Hristiyan-Anchev/issueboard/internal/utils"
)

const (
	importCommandUseConstant                = "import"
	importCommandShortDescriptionConstant   = "Import issues from a CSV file into a GitHub project"
	importCommandLongDescriptionConstant    = "import creates repository issues from CSV rows, attaches them to a Projects board, sets their Status, and appends subtask checklists to parent issues."
	unexpectedArgumentsErrorMessageConstant = "import does not accept positional arguments"
	commandExecutionErrorTemplateConstant   = "import failed: %w"
	repositoryFlagNameConstant              = "repository"
	repositoryFlagDescriptionConstant       = "Target repository as owner/name"
	projectOwnerFlagNameConstant            = "project-owner"
	projectOwnerFlagDescriptionConstant     = "Login owning the Projects board (user or organization)"
	ownerTypeFlagNameConstant               = "owner-type"
	ownerTypeFlagDescriptionConstant        = "Restrict the board lookup to one namespace: user or org"
	ownerTypeParseErrorTemplateConstant     = "invalid owner type: %w"
	projectNumberFlagNameConstant           = "project-number"
	projectNumberFlagDescriptionConstant    = "Board number as shown in the project URL"
	csvFlagNameConstant                     = "csv"
	csvFlagDescriptionConstant              = "Path to the input CSV file"
	columnsFlagNameConstant                 = "columns"
	columnsFlagDescriptionConstant          = "Optional YAML file renaming the recognized CSV columns"
	tokenSourceFlagNameConstant             = "token-source"
	tokenSourceFlagDescriptionConstant      = "Token source (env:NAME or file:/path)"
	dryRunFlagNameConstant                  = "dry-run"
	dryRunFlagDescriptionConstant           = "Validate the input without creating issues"
	tokenSourceParseErrorTemplateConstant   = "invalid token source: %w"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current import configuration.
type ConfigurationProvider func() Configuration

// RunExecutor executes a configured import run.
type RunExecutor interface {
	Run(executionContext context.Context, options RunOptions) (Summary, error)
}

// ServiceResolver creates run executors for the command.
type ServiceResolver interface {
	Resolve(executionContext context.Context, logger *zap.Logger, tokenSourceValue string) (RunExecutor, error)
}

// CommandBuilder assembles the import command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ServiceResolver       ServiceResolver
	HTTPClient            *http.Client
	GraphQLEndpoint       string
	RESTRootURL           string
	EnvironmentLookup     githubauth.EnvironmentLookup
	FileReader            githubauth.FileReader
	Output                io.Writer
}

// Build constructs the import command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	importCommand := &cobra.Command{
		Use:   importCommandUseConstant,
		Short: importCommandShortDescriptionConstant,
		Long:  importCommandLongDescriptionConstant,
		RunE:  builder.runImport,
	}

	importCommand.Flags().String(repositoryFlagNameConstant, "", repositoryFlagDescriptionConstant)
	importCommand.Flags().String(projectOwnerFlagNameConstant, "", projectOwnerFlagDescriptionConstant)
	importCommand.Flags().String(ownerTypeFlagNameConstant, "", ownerTypeFlagDescriptionConstant)
	importCommand.Flags().Int(projectNumberFlagNameConstant, 0, projectNumberFlagDescriptionConstant)
	importCommand.Flags().String(csvFlagNameConstant, "", csvFlagDescriptionConstant)
	importCommand.Flags().String(columnsFlagNameConstant, "", columnsFlagDescriptionConstant)
	importCommand.Flags().String(tokenSourceFlagNameConstant, "", tokenSourceFlagDescriptionConstant)
	importCommand.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)

	return importCommand, nil
}

func (builder *CommandBuilder) runImport(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsErrorMessageConstant)
	}

	runOptions, tokenSourceValue, optionsError := builder.parseRunOptions(command)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	runService, serviceError := builder.resolveRunService(command.Context(), logger, tokenSourceValue)
	if serviceError != nil {
		return serviceError
	}

	_, executionError := runService.Run(command.Context(), runOptions)
	if executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) parseRunOptions(command *cobra.Command) (RunOptions, string, error) {
	configuration := builder.resolveConfiguration()

	repositoryFlagValue, repositoryFlagError := command.Flags().GetString(repositoryFlagNameConstant)
	if repositoryFlagError != nil {
		return RunOptions{}, "", repositoryFlagError
	}
	repositoryValue := selectStringValue(repositoryFlagValue, configuration.Repository)

	projectOwnerFlagValue, projectOwnerFlagError := command.Flags().GetString(projectOwnerFlagNameConstant)
	if projectOwnerFlagError != nil {
		return RunOptions{}, "", projectOwnerFlagError
	}
	projectOwnerValue := selectStringValue(projectOwnerFlagValue, configuration.ProjectOwner)

	ownerTypeFlagValue, ownerTypeFlagError := command.Flags().GetString(ownerTypeFlagNameConstant)
	if ownerTypeFlagError != nil {
		return RunOptions{}, "", ownerTypeFlagError
	}
	ownerTypeValue := selectStringValue(ownerTypeFlagValue, configuration.OwnerType)
	parsedOwnerType := projects.OwnerType("")
	if len(ownerTypeValue) > 0 {
		resolvedOwnerType, ownerTypeParseError := projects.ParseOwnerType(ownerTypeValue)
		if ownerTypeParseError != nil {
			return RunOptions{}, "", fmt.Errorf(ownerTypeParseErrorTemplateConstant, ownerTypeParseError)
		}
		parsedOwnerType = resolvedOwnerType
	}

	projectNumberValue := configuration.ProjectNumber
	if command.Flags().Changed(projectNumberFlagNameConstant) {
		flagProjectNumberValue, projectNumberFlagError := command.Flags().GetInt(projectNumberFlagNameConstant)
		if projectNumberFlagError != nil {
			return RunOptions{}, "", projectNumberFlagError
		}
		projectNumberValue = flagProjectNumberValue
	}

	csvFlagValue, csvFlagError := command.Flags().GetString(csvFlagNameConstant)
	if csvFlagError != nil {
		return RunOptions{}, "", csvFlagError
	}
	csvPathValue := selectStringValue(csvFlagValue, configuration.CSVPath)

	columnsFlagValue, columnsFlagError := command.Flags().GetString(columnsFlagNameConstant)
	if columnsFlagError != nil {
		return RunOptions{}, "", columnsFlagError
	}
	columnsPathValue := selectStringValue(columnsFlagValue, configuration.ColumnsPath)

	tokenSourceFlagValue, tokenSourceFlagError := command.Flags().GetString(tokenSourceFlagNameConstant)
	if tokenSourceFlagError != nil {
		return RunOptions{}, "", tokenSourceFlagError
	}
	tokenSourceValue := selectStringValue(tokenSourceFlagValue, configuration.TokenSource)

	dryRunValue := configuration.DryRun
	if command.Flags().Changed(dryRunFlagNameConstant) {
		flagDryRunValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
		if dryRunFlagError != nil {
			return RunOptions{}, "", dryRunFlagError
		}
		dryRunValue = flagDryRunValue
	}

	runOptions := RunOptions{
		RepositoryFullName: repositoryValue,
		ProjectOwner:       projectOwnerValue,
		ProjectOwnerType:   parsedOwnerType,
		ProjectNumber:      projectNumberValue,
		CSVPath:            csvPathValue,
		ColumnMappingPath:  columnsPathValue,
		DryRun:             dryRunValue,
	}

	return runOptions, tokenSourceValue, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	configuration := DefaultConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveRunService(executionContext context.Context, logger *zap.Logger, tokenSourceValue string) (RunExecutor, error) {
	if builder.ServiceResolver != nil {
		return builder.ServiceResolver.Resolve(executionContext, logger, tokenSourceValue)
	}

	defaultResolver := &DefaultServiceResolver{
		HTTPClient:        builder.HTTPClient,
		GraphQLEndpoint:   builder.GraphQLEndpoint,
		RESTRootURL:       builder.RESTRootURL,
		EnvironmentLookup: builder.EnvironmentLookup,
		FileReader:        builder.FileReader,
		Output:            builder.Output,
	}

	return defaultResolver.Resolve(executionContext, logger, tokenSourceValue)
}

// DefaultServiceResolver wires the production import service from a resolved
// API token.
type DefaultServiceResolver struct {
	HTTPClient        *http.Client
	GraphQLEndpoint   string
	RESTRootURL       string
	EnvironmentLookup githubauth.EnvironmentLookup
	FileReader        githubauth.FileReader
	Output            io.Writer
}

// Resolve parses the token source, resolves the token, and assembles the
// import service around a GitHub API client.
func (resolver *DefaultServiceResolver) Resolve(executionContext context.Context, logger *zap.Logger, tokenSourceValue string) (RunExecutor, error) {
	tokenSource, tokenSourceError := githubauth.ParseTokenSource(tokenSourceValue)
	if tokenSourceError != nil {
		return nil, fmt.Errorf(tokenSourceParseErrorTemplateConstant, tokenSourceError)
	}

	tokenResolver := githubauth.NewTokenResolver(resolver.EnvironmentLookup, resolver.FileReader)
	tokenValue, tokenError := tokenResolver.ResolveToken(executionContext, tokenSource)
	if tokenError != nil {
		return nil, tokenError
	}

	apiClient, clientError := githubapi.NewClient(logger, tokenValue, githubapi.ClientConfiguration{
		GraphQLEndpoint: strings.TrimSpace(resolver.GraphQLEndpoint),
		RESTRootURL:     strings.TrimSpace(resolver.RESTRootURL),
		HTTPClient:      resolver.HTTPClient,
	})
	if clientError != nil {
		return nil, clientError
	}

	boardResolver, resolverError := projects.NewResolver(logger, apiClient)
	if resolverError != nil {
		return nil, resolverError
	}
	boardLinker, linkerError := projects.NewLinker(logger, apiClient)
	if linkerError != nil {
		return nil, linkerError
	}
	labelEnsurer, ensurerError := issues.NewLabelEnsurer(logger, apiClient)
	if ensurerError != nil {
		return nil, ensurerError
	}
	issueCreator, creatorError := issues.NewCreator(logger, apiClient, labelEnsurer)
	if creatorError != nil {
		return nil, creatorError
	}
	bodyEditor, editorError := issues.NewEditor(logger, apiClient)
	if editorError != nil {
		return nil, editorError
	}

	progressOutput := resolver.Output
	if progressOutput == nil {
		progressOutput = os.Stdout
	}

	return NewService(logger, boardResolver, issueCreator, boardLinker, NewTasklistAppender(logger, bodyEditor), utils.NewFlushingWriter(progressOutput))
}

func selectStringValue(flagValue string, configurationValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}

	return strings.TrimSpace(configurationValue)
}
