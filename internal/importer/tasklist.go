package importer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	tasklistHeaderConstant            = "\n\n## Subtasks\n"
	tasklistEntryTemplateConstant     = "- [ ] #%d — %s\n"
	tasklistUpdatedLogMessageConstant = "tasklist appended"
	parentIssueNumberLogFieldConstant = "parent_issue_number"
	childCountLogFieldConstant        = "child_count"
)

// ChildIssue is one checklist entry appended under a parent issue.
type ChildIssue struct {
	Number int
	Title  string
}

// IssueBodyEditor reads and replaces issue bodies.
type IssueBodyEditor interface {
	FetchBody(executionContext context.Context, ownerName string, repositoryName string, issueNumber int) (string, error)
	UpdateBody(executionContext context.Context, ownerName string, repositoryName string, issueNumber int, issueBody string) error
}

// BuildTasklistSection renders the Markdown checklist appended to a parent
// issue body, one unchecked entry per child in order.
func BuildTasklistSection(children []ChildIssue) string {
	var sectionBuilder strings.Builder
	sectionBuilder.WriteString(tasklistHeaderConstant)
	for _, child := range children {
		sectionBuilder.WriteString(fmt.Sprintf(tasklistEntryTemplateConstant, child.Number, child.Title))
	}
	return sectionBuilder.String()
}

// TasklistAppender appends subtask checklists to parent issue bodies.
type TasklistAppender struct {
	logger     *zap.Logger
	bodyEditor IssueBodyEditor
}

// NewTasklistAppender wires a TasklistAppender around an issue body editor.
func NewTasklistAppender(logger *zap.Logger, bodyEditor IssueBodyEditor) *TasklistAppender {
	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}
	return &TasklistAppender{logger: resolvedLogger, bodyEditor: bodyEditor}
}

// Append fetches the parent issue body, concatenates the checklist for the
// provided children, and writes the combined body back.
func (appender *TasklistAppender) Append(executionContext context.Context, ownerName string, repositoryName string, parentIssueNumber int, children []ChildIssue) error {
	currentBody, fetchError := appender.bodyEditor.FetchBody(executionContext, ownerName, repositoryName, parentIssueNumber)
	if fetchError != nil {
		return fetchError
	}

	updatedBody := currentBody + BuildTasklistSection(children)
	if updateError := appender.bodyEditor.UpdateBody(executionContext, ownerName, repositoryName, parentIssueNumber, updatedBody); updateError != nil {
		return updateError
	}

	appender.logger.Info(tasklistUpdatedLogMessageConstant,
		zap.Int(parentIssueNumberLogFieldConstant, parentIssueNumber),
		zap.Int(childCountLogFieldConstant, len(children)),
	)
	return nil
}
