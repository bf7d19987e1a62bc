package utils_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hristiyan-Anchev/issueboard/internal/utils"
)

const (
	homeExpanderSubtestNameTemplateConstant = "%d_%s"
	stubHomeDirectoryConstant               = "/home/operator"
	caseBareTildeConstant                   = "bare_tilde_resolves_home"
	caseTildePrefixConstant                 = "tilde_prefix_joins_home"
	caseAbsolutePathConstant                = "absolute_path_unchanged"
	caseEmptyPathConstant                   = "empty_path_unchanged"
	relativeCSVPathConstant                 = "~/imports/issues.csv"
	absoluteCSVPathConstant                 = "/var/data/issues.csv"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
	}{
		{
			name:          caseBareTildeConstant,
			candidatePath: "~",
			expectedPath:  stubHomeDirectoryConstant,
		},
		{
			name:          caseTildePrefixConstant,
			candidatePath: relativeCSVPathConstant,
			expectedPath:  filepath.Join(stubHomeDirectoryConstant, "imports", "issues.csv"),
		},
		{
			name:          caseAbsolutePathConstant,
			candidatePath: absoluteCSVPathConstant,
			expectedPath:  absoluteCSVPathConstant,
		},
		{
			name:          caseEmptyPathConstant,
			candidatePath: "",
			expectedPath:  "",
		},
	}

	homeExpander := utils.NewHomeExpanderWithProvider(func() (string, error) {
		return stubHomeDirectoryConstant, nil
	})

	for testCaseIndex, testCase := range testCases {
		testCase := testCase
		testInstance.Run(fmt.Sprintf(homeExpanderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			testInstance.Parallel()
			require.Equal(testInstance, testCase.expectedPath, homeExpander.Expand(testCase.candidatePath))
		})
	}
}
