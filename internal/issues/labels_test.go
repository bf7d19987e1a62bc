package issues_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hristiyan-Anchev/issueboard/internal/issues"
)

const (
	repositoryOwnerConstant          = "acme"
	repositoryNameConstant           = "storefront"
	existingLabelsPayloadConstant    = `[{"name":"bug"},{"name":"Documentation"}]`
	emptyLabelsPayloadConstant       = `[]`
	expectedListLabelsPathConstant   = "/repos/acme/storefront/labels?per_page=100"
	expectedCreateLabelPathConstant  = "/repos/acme/storefront/labels"
	expectedDefaultLabelColorConst   = "ededed"
	newLabelNameConstant             = "ui"
	existingLabelMixedCaseConstant   = " BUG "
	existingLabelDocumentationConst  = "documentation"
)

type recordedCall struct {
	Method string
	Path   string
	Body   any
}

type stubRESTCaller struct {
	payloadByPath map[string]string
	failure       error
	recordedCalls []recordedCall
}

func (caller *stubRESTCaller) DoREST(executionContext context.Context, method string, path string, requestBody any, responseTarget any) error {
	_ = executionContext
	caller.recordedCalls = append(caller.recordedCalls, recordedCall{Method: method, Path: path, Body: requestBody})

	if caller.failure != nil {
		return caller.failure
	}

	payload, payloadExists := caller.payloadByPath[path]
	if !payloadExists || responseTarget == nil {
		return nil
	}
	return json.Unmarshal([]byte(payload), responseTarget)
}

func (caller *stubRESTCaller) callsWithMethod(method string) []recordedCall {
	matchingCalls := make([]recordedCall, 0, len(caller.recordedCalls))
	for _, call := range caller.recordedCalls {
		if call.Method == method {
			matchingCalls = append(matchingCalls, call)
		}
	}
	return matchingCalls
}

func TestLabelEnsurerSkipsEmptyLabelSet(testInstance *testing.T) {
	testInstance.Parallel()

	restCaller := &stubRESTCaller{}
	labelEnsurer, creationError := issues.NewLabelEnsurer(nil, restCaller)
	require.NoError(testInstance, creationError)

	ensureError := labelEnsurer.Ensure(context.Background(), repositoryOwnerConstant, repositoryNameConstant, nil)
	require.NoError(testInstance, ensureError)
	require.Empty(testInstance, restCaller.recordedCalls)
}

func TestLabelEnsurerCreatesOnlyMissingLabels(testInstance *testing.T) {
	testInstance.Parallel()

	restCaller := &stubRESTCaller{
		payloadByPath: map[string]string{expectedListLabelsPathConstant: existingLabelsPayloadConstant},
	}
	labelEnsurer, creationError := issues.NewLabelEnsurer(nil, restCaller)
	require.NoError(testInstance, creationError)

	requestedLabels := []string{existingLabelMixedCaseConstant, existingLabelDocumentationConst, newLabelNameConstant}
	ensureError := labelEnsurer.Ensure(context.Background(), repositoryOwnerConstant, repositoryNameConstant, requestedLabels)
	require.NoError(testInstance, ensureError)

	createCalls := restCaller.callsWithMethod(http.MethodPost)
	require.Len(testInstance, createCalls, 1)
	require.Equal(testInstance, expectedCreateLabelPathConstant, createCalls[0].Path)

	serializedBody, marshalError := json.Marshal(createCalls[0].Body)
	require.NoError(testInstance, marshalError)
	var decodedBody map[string]string
	require.NoError(testInstance, json.Unmarshal(serializedBody, &decodedBody))
	require.Equal(testInstance, newLabelNameConstant, decodedBody["name"])
	require.Equal(testInstance, expectedDefaultLabelColorConst, decodedBody["color"])
}

func TestLabelEnsurerIsIdempotent(testInstance *testing.T) {
	testInstance.Parallel()

	firstRunCaller := &stubRESTCaller{
		payloadByPath: map[string]string{expectedListLabelsPathConstant: emptyLabelsPayloadConstant},
	}
	labelEnsurer, creationError := issues.NewLabelEnsurer(nil, firstRunCaller)
	require.NoError(testInstance, creationError)

	requestedLabels := []string{newLabelNameConstant}
	require.NoError(testInstance, labelEnsurer.Ensure(context.Background(), repositoryOwnerConstant, repositoryNameConstant, requestedLabels))
	require.Len(testInstance, firstRunCaller.callsWithMethod(http.MethodPost), 1)

	secondRunCaller := &stubRESTCaller{
		payloadByPath: map[string]string{expectedListLabelsPathConstant: `[{"name":"ui"}]`},
	}
	labelEnsurer, creationError = issues.NewLabelEnsurer(nil, secondRunCaller)
	require.NoError(testInstance, creationError)

	require.NoError(testInstance, labelEnsurer.Ensure(context.Background(), repositoryOwnerConstant, repositoryNameConstant, requestedLabels))
	require.Empty(testInstance, secondRunCaller.callsWithMethod(http.MethodPost))
}
