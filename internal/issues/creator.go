package issues

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Hristiyan-Anchev/issueboard/internal/importerrors"
)

const (
	createIssuePathTemplateConstant      = "/repos/%s/%s/issues"
	repositorySeparatorConstant          = "/"
	invalidRepositoryTemplateConstant    = "repository must be in owner/name form, got %q"
	creatorCallerRequiredMessageConstant = "issue creator requires a rest caller"
	creatorEnsurerRequiredMessageConst   = "issue creator requires a label ensurer"
	issueCreatedMessageConstant          = "issue created"
	logFieldIssueNumberConstant          = "issue_number"
	logFieldIssueTitleConstant           = "issue_title"
)

// CreatedIssue captures the identifiers the remote service assigns a new issue.
type CreatedIssue struct {
	Number int
	NodeID string
}

// Creator creates issue resources, ensuring referenced labels exist first.
type Creator struct {
	restCaller   RESTCaller
	labelEnsurer *LabelEnsurer
	logger       *zap.Logger
}

// NewCreator constructs a Creator using the provided REST caller and label ensurer.
func NewCreator(logger *zap.Logger, restCaller RESTCaller, labelEnsurer *LabelEnsurer) (*Creator, error) {
	if restCaller == nil {
		return nil, errors.New(creatorCallerRequiredMessageConstant)
	}
	if labelEnsurer == nil {
		return nil, errors.New(creatorEnsurerRequiredMessageConst)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Creator{restCaller: restCaller, labelEnsurer: labelEnsurer, logger: resolvedLogger}, nil
}

// SplitRepository separates an owner/name repository identifier.
func SplitRepository(repositoryFullName string) (string, string, error) {
	trimmedFullName := strings.TrimSpace(repositoryFullName)
	separatorIndex := strings.Index(trimmedFullName, repositorySeparatorConstant)
	if separatorIndex <= 0 || separatorIndex == len(trimmedFullName)-1 {
		return "", "", importerrors.NewConfigurationError(invalidRepositoryTemplateConstant, repositoryFullName)
	}
	return trimmedFullName[:separatorIndex], trimmedFullName[separatorIndex+1:], nil
}

type createIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

type issueResource struct {
	Number int    `json:"number"`
	NodeID string `json:"node_id"`
}

// Create ensures the labels exist, creates the issue resource, and returns its
// number and node identifier verbatim from the response. An empty label list
// is omitted from the payload entirely.
func (creator *Creator) Create(executionContext context.Context, repositoryFullName string, title string, body string, labels []string) (CreatedIssue, error) {
	repositoryOwner, repositoryName, splitError := SplitRepository(repositoryFullName)
	if splitError != nil {
		return CreatedIssue{}, splitError
	}

	if ensureError := creator.labelEnsurer.Ensure(executionContext, repositoryOwner, repositoryName, labels); ensureError != nil {
		return CreatedIssue{}, ensureError
	}

	createRequest := createIssueRequest{Title: title, Body: body}
	if len(labels) > 0 {
		createRequest.Labels = labels
	}

	var createdResource issueResource
	createPath := fmt.Sprintf(createIssuePathTemplateConstant, repositoryOwner, repositoryName)
	if createError := creator.restCaller.DoREST(executionContext, http.MethodPost, createPath, createRequest, &createdResource); createError != nil {
		return CreatedIssue{}, createError
	}

	creator.logger.Info(
		issueCreatedMessageConstant,
		zap.Int(logFieldIssueNumberConstant, createdResource.Number),
		zap.String(logFieldIssueTitleConstant, title),
	)

	return CreatedIssue{Number: createdResource.Number, NodeID: createdResource.NodeID}, nil
}
