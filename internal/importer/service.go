package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/Hristiyan-Anchev/issueboard/internal/importerrors"
	"github.com/Hristiyan-Anchev/issueboard/internal/issues"
	"github.com/Hristiyan-Anchev/issueboard/internal/projects"
)

const (
	serviceResolverRequiredMessageConstant = "import service requires a board resolver"
	serviceCreatorRequiredMessageConstant  = "import service requires an issue creator"
	serviceLinkerRequiredMessageConstant   = "import service requires a board linker"
	serviceAppenderRequiredMessageConstant = "import service requires a tasklist appender"
	projectOwnerRequiredMessageConstant    = "project owner login must be provided"
	projectNumberInvalidMessageConstant    = "project number must be a positive integer"
	csvPathRequiredMessageConstant         = "input file path must be provided"
	parentNotFoundTemplateConstant         = "row %d: parent %q not found; a parent row must appear before its children"
	parentMissingAtUpdateTemplateConstant  = "parent %q disappeared from the title index before its checklist update"
	boardResolvedProgressTemplateConstant  = "Importing into project %q (%s)\n"
	rowSkippedProgressTemplateConstant     = "Skipping row %d: empty title\n"
	issueCreatedProgressTemplateConstant   = "Created issue #%d: %s\n"
	dryRunRowProgressTemplateConstant      = "Would create issue: %s\n"
	parentUpdatedProgressTemplateConstant  = "Updated parent #%d with %d subtasks\n"
	summaryProgressTemplateConstant        = "Done. Created %d issues, attached %d to the project, updated %d parent issues.\n"
	rowSkippedWarnMessageConstant          = "row skipped without title"
	importFinishedInfoMessageConstant      = "import finished"
	logFieldRowLineNumberConstant          = "line_number"
	logFieldCreatedCountConstant           = "created_count"
	logFieldAttachedCountConstant          = "attached_count"
	logFieldUpdatedParentCountConstant     = "updated_parent_count"
	logFieldSkippedCountConstant           = "skipped_count"
)

// BoardResolver locates the target project board.
type BoardResolver interface {
	Resolve(executionContext context.Context, ownerLogin string, projectNumber int, ownerTypeFilter projects.OwnerType) (projects.Board, error)
}

// IssueCreator creates repository issues, ensuring their labels exist first.
type IssueCreator interface {
	Create(executionContext context.Context, repositoryFullName string, title string, body string, labels []string) (issues.CreatedIssue, error)
}

// BoardLinker attaches issues to the board and applies Status values.
type BoardLinker interface {
	AddToBoard(executionContext context.Context, projectID string, issueNodeID string) (string, error)
	SetStatus(executionContext context.Context, board projects.Board, itemID string, statusName string) error
}

// RunOptions carries the resolved inputs for a single import run.
type RunOptions struct {
	RepositoryFullName string
	ProjectOwner       string
	ProjectOwnerType   projects.OwnerType
	ProjectNumber      int
	CSVPath            string
	ColumnMappingPath  string
	DryRun             bool
}

// Summary reports what a completed run did.
type Summary struct {
	CreatedIssues  int
	AttachedItems  int
	UpdatedParents int
	SkippedRows    int
}

// Service drives one import run from input table to populated board.
type Service struct {
	logger           *zap.Logger
	boardResolver    BoardResolver
	issueCreator     IssueCreator
	boardLinker      BoardLinker
	tasklistAppender *TasklistAppender
	progressOutput   io.Writer
}

// NewService wires a Service from its collaborators. The progress writer may
// be nil, in which case progress lines are discarded.
func NewService(logger *zap.Logger, boardResolver BoardResolver, issueCreator IssueCreator, boardLinker BoardLinker, tasklistAppender *TasklistAppender, progressOutput io.Writer) (*Service, error) {
	if boardResolver == nil {
		return nil, errors.New(serviceResolverRequiredMessageConstant)
	}
	if issueCreator == nil {
		return nil, errors.New(serviceCreatorRequiredMessageConstant)
	}
	if boardLinker == nil {
		return nil, errors.New(serviceLinkerRequiredMessageConstant)
	}
	if tasklistAppender == nil {
		return nil, errors.New(serviceAppenderRequiredMessageConstant)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}
	resolvedOutput := progressOutput
	if resolvedOutput == nil {
		resolvedOutput = io.Discard
	}

	return &Service{
		logger:           resolvedLogger,
		boardResolver:    boardResolver,
		issueCreator:     issueCreator,
		boardLinker:      boardLinker,
		tasklistAppender: tasklistAppender,
		progressOutput:   resolvedOutput,
	}, nil
}

// Run executes the import: every row becomes an issue attached to the board
// with its Status applied, then parents referenced by later rows receive a
// subtask checklist. The first failure stops the run.
func (service *Service) Run(executionContext context.Context, options RunOptions) (Summary, error) {
	repositoryOwner, repositoryName, repositoryError := issues.SplitRepository(options.RepositoryFullName)
	if repositoryError != nil {
		return Summary{}, repositoryError
	}
	if len(strings.TrimSpace(options.ProjectOwner)) == 0 {
		return Summary{}, importerrors.NewConfigurationError(projectOwnerRequiredMessageConstant)
	}
	if options.ProjectNumber <= 0 {
		return Summary{}, importerrors.NewConfigurationError(projectNumberInvalidMessageConstant)
	}
	if len(strings.TrimSpace(options.CSVPath)) == 0 {
		return Summary{}, importerrors.NewConfigurationError(csvPathRequiredMessageConstant)
	}

	columnMapping := DefaultColumnMapping()
	if len(strings.TrimSpace(options.ColumnMappingPath)) > 0 {
		loadedMapping, mappingError := LoadColumnMapping(options.ColumnMappingPath)
		if mappingError != nil {
			return Summary{}, mappingError
		}
		columnMapping = loadedMapping
	}

	parsedRows, readError := ReadRows(options.CSVPath, columnMapping)
	if readError != nil {
		return Summary{}, readError
	}

	board, resolveError := service.boardResolver.Resolve(executionContext, options.ProjectOwner, options.ProjectNumber, options.ProjectOwnerType)
	if resolveError != nil {
		return Summary{}, resolveError
	}
	fmt.Fprintf(service.progressOutput, boardResolvedProgressTemplateConstant, board.Title, board.OwnerType)

	summary := Summary{}
	createdByTitle := make(map[string]issues.CreatedIssue, len(parsedRows))
	childrenByParentTitle := make(map[string][]ChildIssue, len(parsedRows))
	parentTitlesInOrder := make([]string, 0)

	for _, parsedRow := range parsedRows {
		if !parsedRow.HasTitle() {
			summary.SkippedRows++
			service.logger.Warn(rowSkippedWarnMessageConstant, zap.Int(logFieldRowLineNumberConstant, parsedRow.LineNumber))
			fmt.Fprintf(service.progressOutput, rowSkippedProgressTemplateConstant, parsedRow.LineNumber)
			continue
		}

		createdIssue, rowError := service.processRow(executionContext, options, board, parsedRow)
		if rowError != nil {
			return summary, rowError
		}
		summary.CreatedIssues++
		summary.AttachedItems++
		createdByTitle[parsedRow.Title] = createdIssue

		if len(parsedRow.Parent) > 0 {
			if _, parentKnown := createdByTitle[parsedRow.Parent]; !parentKnown {
				return summary, importerrors.NewConfigurationError(parentNotFoundTemplateConstant, parsedRow.LineNumber, parsedRow.Parent)
			}
			if _, alreadyTracked := childrenByParentTitle[parsedRow.Parent]; !alreadyTracked {
				parentTitlesInOrder = append(parentTitlesInOrder, parsedRow.Parent)
			}
			childrenByParentTitle[parsedRow.Parent] = append(childrenByParentTitle[parsedRow.Parent], ChildIssue{
				Number: createdIssue.Number,
				Title:  parsedRow.Title,
			})
		}
	}

	if !options.DryRun {
		for _, parentTitle := range parentTitlesInOrder {
			parentIssue, parentKnown := createdByTitle[parentTitle]
			if !parentKnown {
				return summary, importerrors.NewConfigurationError(parentMissingAtUpdateTemplateConstant, parentTitle)
			}
			parentChildren := childrenByParentTitle[parentTitle]
			if appendError := service.tasklistAppender.Append(executionContext, repositoryOwner, repositoryName, parentIssue.Number, parentChildren); appendError != nil {
				return summary, appendError
			}
			summary.UpdatedParents++
			fmt.Fprintf(service.progressOutput, parentUpdatedProgressTemplateConstant, parentIssue.Number, len(parentChildren))
		}
	}

	service.logger.Info(
		importFinishedInfoMessageConstant,
		zap.Int(logFieldCreatedCountConstant, summary.CreatedIssues),
		zap.Int(logFieldAttachedCountConstant, summary.AttachedItems),
		zap.Int(logFieldUpdatedParentCountConstant, summary.UpdatedParents),
		zap.Int(logFieldSkippedCountConstant, summary.SkippedRows),
	)
	fmt.Fprintf(service.progressOutput, summaryProgressTemplateConstant, summary.CreatedIssues, summary.AttachedItems, summary.UpdatedParents)

	return summary, nil
}

// processRow creates the row's issue, attaches it to the board, and applies
// its Status. In dry-run mode it only validates the Status value and reports
// what would happen.
func (service *Service) processRow(executionContext context.Context, options RunOptions, board projects.Board, parsedRow Row) (issues.CreatedIssue, error) {
	if options.DryRun {
		if _, _, optionError := board.StatusOptionID(parsedRow.Status); optionError != nil {
			return issues.CreatedIssue{}, optionError
		}
		fmt.Fprintf(service.progressOutput, dryRunRowProgressTemplateConstant, parsedRow.Title)
		return issues.CreatedIssue{}, nil
	}

	createdIssue, createError := service.issueCreator.Create(executionContext, options.RepositoryFullName, parsedRow.Title, parsedRow.Body, parsedRow.Labels)
	if createError != nil {
		return issues.CreatedIssue{}, createError
	}
	fmt.Fprintf(service.progressOutput, issueCreatedProgressTemplateConstant, createdIssue.Number, parsedRow.Title)

	itemIdentifier, addError := service.boardLinker.AddToBoard(executionContext, board.ProjectID, createdIssue.NodeID)
	if addError != nil {
		return issues.CreatedIssue{}, addError
	}

	if statusError := service.boardLinker.SetStatus(executionContext, board, itemIdentifier, parsedRow.Status); statusError != nil {
		return issues.CreatedIssue{}, statusError
	}

	return createdIssue, nil
}
