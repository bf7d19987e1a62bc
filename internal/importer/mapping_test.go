package importer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hristiyan-Anchev/issueboard/internal/importer"
)

const (
	mappingSubtestNameTemplateConstant = "%d_%s"
	mappingFileNameConstant            = "columns.yaml"
)

func writeMappingFile(testInstance *testing.T, content string) string {
	testInstance.Helper()
	mappingPath := filepath.Join(testInstance.TempDir(), mappingFileNameConstant)
	require.NoError(testInstance, os.WriteFile(mappingPath, []byte(content), 0o600))
	return mappingPath
}

func TestDefaultColumnMapping(testInstance *testing.T) {
	testInstance.Parallel()

	mapping := importer.DefaultColumnMapping()
	require.Equal(testInstance, "Title", mapping.Title)
	require.Equal(testInstance, "Body", mapping.Body)
	require.Equal(testInstance, "Labels", mapping.Labels)
	require.Equal(testInstance, "Status", mapping.Status)
	require.Equal(testInstance, "Parent", mapping.Parent)
}

func TestLoadColumnMapping(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name            string
		fileContent     string
		expectedMapping importer.ColumnMapping
	}{
		{
			name:        "flat_mapping_fills_missing_columns_with_defaults",
			fileContent: "title: Name\nlabels: Tags\n",
			expectedMapping: importer.ColumnMapping{
				Title:  "Name",
				Body:   "Body",
				Labels: "Tags",
				Status: "Status",
				Parent: "Parent",
			},
		},
		{
			name:        "nested_columns_block",
			fileContent: "columns:\n  title: Summary\n  parent: Epic\n",
			expectedMapping: importer.ColumnMapping{
				Title:  "Summary",
				Body:   "Body",
				Labels: "Labels",
				Status: "Status",
				Parent: "Epic",
			},
		},
		{
			name:            "empty_file_yields_defaults",
			fileContent:     "",
			expectedMapping: importer.DefaultColumnMapping(),
		},
	}

	for testCaseIndex, testCase := range testCases {
		testCase := testCase
		testInstance.Run(fmt.Sprintf(mappingSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			testInstance.Parallel()

			mappingPath := writeMappingFile(testInstance, testCase.fileContent)
			loadedMapping, loadError := importer.LoadColumnMapping(mappingPath)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedMapping, loadedMapping)
		})
	}
}

func TestLoadColumnMappingFailures(testInstance *testing.T) {
	testInstance.Parallel()

	_, blankPathError := importer.LoadColumnMapping("   ")
	require.Error(testInstance, blankPathError)

	_, missingFileError := importer.LoadColumnMapping(filepath.Join(testInstance.TempDir(), "absent.yaml"))
	require.Error(testInstance, missingFileError)

	invalidPath := writeMappingFile(testInstance, "title: [unterminated\n")
	_, parseError := importer.LoadColumnMapping(invalidPath)
	require.Error(testInstance, parseError)
}
