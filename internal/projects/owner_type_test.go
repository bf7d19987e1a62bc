package projects_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hristiyan-Anchev/issueboard/internal/projects"
)

func TestParseOwnerType(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name          string
		input         string
		expectedValue projects.OwnerType
		expectError   bool
	}{
		{name: "user_lowercase", input: "user", expectedValue: projects.UserOwnerType},
		{name: "user_mixed_case_trimmed", input: " User ", expectedValue: projects.UserOwnerType},
		{name: "organization_short_form", input: "org", expectedValue: projects.OrganizationOwnerType},
		{name: "empty_value", input: "   ", expectError: true},
		{name: "unsupported_value", input: "team", expectError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testCase := testCase
		testInstance.Run(fmt.Sprintf(resolverSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			testInstance.Parallel()

			parsedOwnerType, parseError := projects.ParseOwnerType(testCase.input)
			if testCase.expectError {
				require.Error(testInstance, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedValue, parsedOwnerType)
		})
	}
}
