package projects

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

const (
	defaultStatusNameConstant             = "Todo"
	addItemOperationNameConstant          = "AddProjectItem"
	setStatusOperationNameConstant        = "SetProjectItemStatus"
	linkerRunnerRequiredMessageConstant   = "project linker requires a query runner"
	statusNotFoundTemplateConstant        = "status %q not found in project; available options: %s"
	statusOptionListSeparatorConstant     = ", "
	itemAddedDebugMessageConstant         = "issue attached to project"
	statusAppliedDebugMessageConstant     = "status applied to project item"
	logFieldItemIdentifierConstant        = "item_id"
	logFieldStatusNameConstant            = "status_name"
	addItemMutationConstant               = `
mutation($projectId: ID!, $contentId: ID!) {
  addProjectV2ItemById(input: {projectId: $projectId, contentId: $contentId}) {
    item { id }
  }
}`
	setStatusMutationConstant = `
mutation($projectId: ID!, $itemId: ID!, $fieldId: ID!, $optionId: String!) {
  updateProjectV2ItemFieldValue(input: {
    projectId: $projectId,
    itemId: $itemId,
    fieldId: $fieldId,
    value: { singleSelectOptionId: $optionId }
  }) { clientMutationId }
}`
	mutationProjectIdentifierVariableConstant = "projectId"
	mutationContentIdentifierVariableConstant = "contentId"
	mutationItemIdentifierVariableConstant    = "itemId"
	mutationFieldIdentifierVariableConstant   = "fieldId"
	mutationOptionIdentifierVariableConstant  = "optionId"
)

// Linker attaches issues to a project board and sets their Status field.
type Linker struct {
	queryRunner QueryRunner
	logger      *zap.Logger
}

// NewLinker constructs a Linker using the provided query runner.
func NewLinker(logger *zap.Logger, queryRunner QueryRunner) (*Linker, error) {
	if queryRunner == nil {
		return nil, errors.New(linkerRunnerRequiredMessageConstant)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Linker{queryRunner: queryRunner, logger: resolvedLogger}, nil
}

type addItemEnvelope struct {
	AddProjectV2ItemByID struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	} `json:"addProjectV2ItemById"`
}

// AddToBoard attaches the issue identified by its node id to the project and
// returns the created project item id.
func (linker *Linker) AddToBoard(executionContext context.Context, projectID string, issueNodeID string) (string, error) {
	mutationVariables := map[string]any{
		mutationProjectIdentifierVariableConstant: projectID,
		mutationContentIdentifierVariableConstant: issueNodeID,
	}

	var envelope addItemEnvelope
	mutationError := linker.queryRunner.RunQuery(executionContext, addItemOperationNameConstant, addItemMutationConstant, mutationVariables, &envelope)
	if mutationError != nil {
		return "", mutationError
	}

	itemIdentifier := envelope.AddProjectV2ItemByID.Item.ID
	linker.logger.Debug(itemAddedDebugMessageConstant, zap.String(logFieldItemIdentifierConstant, itemIdentifier))

	return itemIdentifier, nil
}

// SetStatus resolves statusName against the board's option mapping (blank
// defaults to Todo) and applies the matching option to the project item.
func (linker *Linker) SetStatus(executionContext context.Context, board Board, itemID string, statusName string) error {
	optionIdentifier, requestedStatusName, optionError := board.StatusOptionID(statusName)
	if optionError != nil {
		return optionError
	}

	mutationVariables := map[string]any{
		mutationProjectIdentifierVariableConstant: board.ProjectID,
		mutationItemIdentifierVariableConstant:    itemID,
		mutationFieldIdentifierVariableConstant:   board.StatusFieldID,
		mutationOptionIdentifierVariableConstant:  optionIdentifier,
	}

	mutationError := linker.queryRunner.RunQuery(executionContext, setStatusOperationNameConstant, setStatusMutationConstant, mutationVariables, nil)
	if mutationError != nil {
		return mutationError
	}

	linker.logger.Debug(
		statusAppliedDebugMessageConstant,
		zap.String(logFieldItemIdentifierConstant, itemID),
		zap.String(logFieldStatusNameConstant, requestedStatusName),
	)

	return nil
}
