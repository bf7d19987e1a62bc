package issues

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultLabelColorConstant            = "ededed"
	listLabelsPathTemplateConstant       = "/repos/%s/%s/labels?per_page=100"
	createLabelPathTemplateConstant      = "/repos/%s/%s/labels"
	ensurerCallerRequiredMessageConstant = "label ensurer requires a rest caller"
	labelCreatedMessageConstant          = "label created"
	logFieldLabelNameConstant            = "label_name"
	logFieldRepositoryConstant           = "repository"
)

// RESTCaller executes REST resource calls; githubapi.Client satisfies it.
type RESTCaller interface {
	DoREST(executionContext context.Context, method string, path string, requestBody any, responseTarget any) error
}

// LabelEnsurer creates any missing labels on a repository before issues reference them.
type LabelEnsurer struct {
	restCaller RESTCaller
	logger     *zap.Logger
}

// NewLabelEnsurer constructs a LabelEnsurer using the provided REST caller.
func NewLabelEnsurer(logger *zap.Logger, restCaller RESTCaller) (*LabelEnsurer, error) {
	if restCaller == nil {
		return nil, errors.New(ensurerCallerRequiredMessageConstant)
	}

	resolvedLogger := logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &LabelEnsurer{restCaller: restCaller, logger: resolvedLogger}, nil
}

type labelResource struct {
	Name string `json:"name"`
}

type createLabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Ensure fetches the repository's labels (first page of 100) and creates any
// requested label not already present, compared lowercased and trimmed. It is
// a no-op for an empty label set and safe to call repeatedly.
func (ensurer *LabelEnsurer) Ensure(executionContext context.Context, repositoryOwner string, repositoryName string, labelNames []string) error {
	if len(labelNames) == 0 {
		return nil
	}

	var existingLabels []labelResource
	listPath := fmt.Sprintf(listLabelsPathTemplateConstant, repositoryOwner, repositoryName)
	if listError := ensurer.restCaller.DoREST(executionContext, http.MethodGet, listPath, nil, &existingLabels); listError != nil {
		return listError
	}

	existingLabelNames := make(map[string]struct{}, len(existingLabels))
	for _, existingLabel := range existingLabels {
		existingLabelNames[strings.ToLower(existingLabel.Name)] = struct{}{}
	}

	createPath := fmt.Sprintf(createLabelPathTemplateConstant, repositoryOwner, repositoryName)
	for _, requestedLabelName := range labelNames {
		trimmedLabelName := strings.TrimSpace(requestedLabelName)
		if len(trimmedLabelName) == 0 {
			continue
		}
		if _, labelExists := existingLabelNames[strings.ToLower(trimmedLabelName)]; labelExists {
			continue
		}

		createRequest := createLabelRequest{Name: trimmedLabelName, Color: defaultLabelColorConstant}
		if createError := ensurer.restCaller.DoREST(executionContext, http.MethodPost, createPath, createRequest, nil); createError != nil {
			return createError
		}

		existingLabelNames[strings.ToLower(trimmedLabelName)] = struct{}{}
		ensurer.logger.Info(
			labelCreatedMessageConstant,
			zap.String(logFieldLabelNameConstant, trimmedLabelName),
			zap.String(logFieldRepositoryConstant, repositoryOwner+"/"+repositoryName),
		)
	}

	return nil
}
