package issues

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

const (
	issuePathTemplateConstant           = "/repos/%s/%s/issues/%d"
	editorCallerRequiredMessageConstant = "issue editor requires a rest caller"
	issueBodyUpdatedMessageConstant     = "issue body updated"
)

// Editor reads and rewrites issue bodies.
type Editor struct {
	restCaller RESTCaller
	logger     *zap.Logger
}

// NewEditor constructs an Editor using the provided REST caller.
func NewEditor(logger *zap.Logger, restCaller RESTCaller) (*Editor, error) {
	if restCaller == nil {
		return nil, errors.New(editorCallerRequiredMessageConstant)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Editor{restCaller: restCaller, logger: resolvedLogger}, nil
}

type issueBodyResource struct {
	Body string `json:"body"`
}

type updateIssueBodyRequest struct {
	Body string `json:"body"`
}

// FetchBody returns the current body of the identified issue.
func (editor *Editor) FetchBody(executionContext context.Context, repositoryOwner string, repositoryName string, issueNumber int) (string, error) {
	var fetchedResource issueBodyResource
	issuePath := fmt.Sprintf(issuePathTemplateConstant, repositoryOwner, repositoryName, issueNumber)
	if fetchError := editor.restCaller.DoREST(executionContext, http.MethodGet, issuePath, nil, &fetchedResource); fetchError != nil {
		return "", fetchError
	}
	return fetchedResource.Body, nil
}

// UpdateBody replaces the identified issue's body with the provided content.
func (editor *Editor) UpdateBody(executionContext context.Context, repositoryOwner string, repositoryName string, issueNumber int, updatedBody string) error {
	issuePath := fmt.Sprintf(issuePathTemplateConstant, repositoryOwner, repositoryName, issueNumber)
	updateRequest := updateIssueBodyRequest{Body: updatedBody}
	if updateError := editor.restCaller.DoREST(executionContext, http.MethodPatch, issuePath, updateRequest, nil); updateError != nil {
		return updateError
	}

	editor.logger.Debug(issueBodyUpdatedMessageConstant, zap.Int(logFieldIssueNumberConstant, issueNumber))
	return nil
}
