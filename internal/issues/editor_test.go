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
	parentIssueNumberConstant       = 5
	expectedIssuePathConstant       = "/repos/acme/storefront/issues/5"
	issueBodyPayloadConstant        = `{"body":"Desc"}`
	existingIssueBodyConstant       = "Desc"
	replacementIssueBodyConstant    = "Desc\n\n## Subtasks\n- [ ] #6 — Add test\n"
)

func TestEditorFetchBody(testInstance *testing.T) {
	testInstance.Parallel()

	restCaller := &stubRESTCaller{
		payloadByPath: map[string]string{expectedIssuePathConstant: issueBodyPayloadConstant},
	}
	editor, creationError := issues.NewEditor(nil, restCaller)
	require.NoError(testInstance, creationError)

	fetchedBody, fetchError := editor.FetchBody(context.Background(), repositoryOwnerConstant, repositoryNameConstant, parentIssueNumberConstant)
	require.NoError(testInstance, fetchError)
	require.Equal(testInstance, existingIssueBodyConstant, fetchedBody)
	require.Len(testInstance, restCaller.recordedCalls, 1)
	require.Equal(testInstance, http.MethodGet, restCaller.recordedCalls[0].Method)
}

func TestEditorUpdateBody(testInstance *testing.T) {
	testInstance.Parallel()

	restCaller := &stubRESTCaller{}
	editor, creationError := issues.NewEditor(nil, restCaller)
	require.NoError(testInstance, creationError)

	updateError := editor.UpdateBody(context.Background(), repositoryOwnerConstant, repositoryNameConstant, parentIssueNumberConstant, replacementIssueBodyConstant)
	require.NoError(testInstance, updateError)
	require.Len(testInstance, restCaller.recordedCalls, 1)
	require.Equal(testInstance, http.MethodPatch, restCaller.recordedCalls[0].Method)
	require.Equal(testInstance, expectedIssuePathConstant, restCaller.recordedCalls[0].Path)

	serializedBody, marshalError := json.Marshal(restCaller.recordedCalls[0].Body)
	require.NoError(testInstance, marshalError)
	var decodedBody map[string]string
	require.NoError(testInstance, json.Unmarshal(serializedBody, &decodedBody))
	require.Equal(testInstance, replacementIssueBodyConstant, decodedBody["body"])
}
