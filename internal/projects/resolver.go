package projects

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Hristiyan-Anchev/issueboard/internal/importerrors"
)

const (
	statusFieldNameConstant                 = "status"
	resolveOperationNameConstant            = "ResolveProjectBoard"
	resolverLoggerRequiredMessageConstant   = "project resolver requires a query runner"
	projectNotFoundTemplateConstant         = "project number %d not found under owner %q in user or organization namespaces"
	projectNotFoundFilteredTemplateConstant = "project number %d not found under %s %q"
	statusFieldMissingMessageConstant       = "project has no 'Status' single-select field; create it with options: Todo, In Progress, Done"
	boardResolvedDebugMessageConstant       = "project board resolved"
	logFieldProjectIdentifierConstant       = "project_id"
	logFieldProjectTitleConstant            = "project_title"
	logFieldOwnerTypeConstant               = "owner_type"
	logFieldStatusOptionCountConstant       = "status_option_count"
	resolveProjectBoardQueryConstant        = `
query($login: String!, $number: Int!) {
  user(login: $login) {
    projectV2(number: $number) {
      id
      title
      fields(first: 100) {
        nodes {
          ... on ProjectV2SingleSelectField {
            id
            name
            options { id name }
          }
          ... on ProjectV2FieldCommon {
            id
            name
          }
        }
      }
    }
  }
  organization(login: $login) {
    projectV2(number: $number) {
      id
      title
      fields(first: 100) {
        nodes {
          ... on ProjectV2SingleSelectField {
            id
            name
            options { id name }
          }
          ... on ProjectV2FieldCommon {
            id
            name
          }
        }
      }
    }
  }
}`
	resolveQueryLoginVariableConstant  = "login"
	resolveQueryNumberVariableConstant = "number"
)

// QueryRunner executes GraphQL operations; githubapi.Client satisfies it.
type QueryRunner interface {
	RunQuery(executionContext context.Context, operationName string, query string, variables map[string]any, responseTarget any) error
}

// Board captures the resolved project identity and its Status single-select field.
type Board struct {
	ProjectID           string
	Title               string
	OwnerType           OwnerType
	StatusFieldID       string
	StatusOptionsByName map[string]string
}

// StatusOptionNames lists the normalized option names in stable order, for error reporting.
func (board Board) StatusOptionNames() []string {
	optionNames := make([]string, 0, len(board.StatusOptionsByName))
	for optionName := range board.StatusOptionsByName {
		optionNames = append(optionNames, optionName)
	}
	sort.Strings(optionNames)
	return optionNames
}

// StatusOptionID resolves statusName against the option mapping. A blank
// name defaults to Todo; the returned name is the trimmed requested name.
func (board Board) StatusOptionID(statusName string) (string, string, error) {
	requestedStatusName := strings.TrimSpace(statusName)
	if len(requestedStatusName) == 0 {
		requestedStatusName = defaultStatusNameConstant
	}

	optionIdentifier, optionExists := board.StatusOptionsByName[NormalizeStatusName(requestedStatusName)]
	if !optionExists {
		return "", requestedStatusName, importerrors.NewConfigurationError(
			statusNotFoundTemplateConstant,
			requestedStatusName,
			strings.Join(board.StatusOptionNames(), statusOptionListSeparatorConstant),
		)
	}

	return optionIdentifier, requestedStatusName, nil
}

// Resolver locates a project board and extracts its Status field metadata.
type Resolver struct {
	queryRunner QueryRunner
	logger      *zap.Logger
}

// NewResolver constructs a Resolver using the provided query runner.
func NewResolver(logger *zap.Logger, queryRunner QueryRunner) (*Resolver, error) {
	if queryRunner == nil {
		return nil, errors.New(resolverLoggerRequiredMessageConstant)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Resolver{queryRunner: queryRunner, logger: resolvedLogger}, nil
}

type resolveEnvelope struct {
	User         *ownerEnvelope `json:"user"`
	Organization *ownerEnvelope `json:"organization"`
}

type ownerEnvelope struct {
	ProjectV2 *projectEnvelope `json:"projectV2"`
}

type projectEnvelope struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Fields struct {
		Nodes []fieldEnvelope `json:"nodes"`
	} `json:"fields"`
}

type fieldEnvelope struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Options []optionEnvelope `json:"options"`
}

type optionEnvelope struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Resolve locates the project under the owner login and extracts the Status
// field id plus its normalized option-name mapping. An empty ownerTypeFilter
// checks both namespaces, preferring the personal one when both resolve; a
// concrete filter restricts the lookup to that namespace.
func (resolver *Resolver) Resolve(executionContext context.Context, ownerLogin string, projectNumber int, ownerTypeFilter OwnerType) (Board, error) {
	queryVariables := map[string]any{
		resolveQueryLoginVariableConstant:  ownerLogin,
		resolveQueryNumberVariableConstant: projectNumber,
	}

	var envelope resolveEnvelope
	queryError := resolver.queryRunner.RunQuery(executionContext, resolveOperationNameConstant, resolveProjectBoardQueryConstant, queryVariables, &envelope)
	if queryError != nil {
		return Board{}, queryError
	}

	resolvedProject, resolvedOwnerType := selectProject(envelope, ownerTypeFilter)
	if resolvedProject == nil {
		if len(ownerTypeFilter) > 0 {
			return Board{}, importerrors.NewNotFoundError(projectNotFoundFilteredTemplateConstant, projectNumber, ownerTypeFilter, ownerLogin)
		}
		return Board{}, importerrors.NewNotFoundError(projectNotFoundTemplateConstant, projectNumber, ownerLogin)
	}

	board := Board{
		ProjectID: resolvedProject.ID,
		Title:     resolvedProject.Title,
		OwnerType: resolvedOwnerType,
	}

	for _, projectField := range resolvedProject.Fields.Nodes {
		if !strings.EqualFold(projectField.Name, statusFieldNameConstant) {
			continue
		}
		if len(projectField.Options) == 0 {
			continue
		}

		board.StatusFieldID = projectField.ID
		board.StatusOptionsByName = make(map[string]string, len(projectField.Options))
		for _, statusOption := range projectField.Options {
			board.StatusOptionsByName[NormalizeStatusName(statusOption.Name)] = statusOption.ID
		}
		break
	}

	if len(board.StatusFieldID) == 0 {
		return Board{}, importerrors.NewConfigurationError(statusFieldMissingMessageConstant)
	}

	resolver.logger.Debug(
		boardResolvedDebugMessageConstant,
		zap.String(logFieldProjectIdentifierConstant, board.ProjectID),
		zap.String(logFieldProjectTitleConstant, board.Title),
		zap.String(logFieldOwnerTypeConstant, string(board.OwnerType)),
		zap.Int(logFieldStatusOptionCountConstant, len(board.StatusOptionsByName)),
	)

	return board, nil
}

// NormalizeStatusName lowers and trims status names so lookups match the
// option mapping regardless of spelling in the input table.
func NormalizeStatusName(statusName string) string {
	return strings.ToLower(strings.TrimSpace(statusName))
}

func selectProject(envelope resolveEnvelope, ownerTypeFilter OwnerType) (*projectEnvelope, OwnerType) {
	userAllowed := ownerTypeFilter == "" || ownerTypeFilter == UserOwnerType
	organizationAllowed := ownerTypeFilter == "" || ownerTypeFilter == OrganizationOwnerType

	if userAllowed && envelope.User != nil && envelope.User.ProjectV2 != nil {
		return envelope.User.ProjectV2, UserOwnerType
	}
	if organizationAllowed && envelope.Organization != nil && envelope.Organization.ProjectV2 != nil {
		return envelope.Organization.ProjectV2, OrganizationOwnerType
	}
	return nil, ""
}
