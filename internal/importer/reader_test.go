package importer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Hristiyan-Anchev/issueboard/internal/importer"
	"github.com/Hristiyan-Anchev/issueboard/internal/importerrors"
)

const inputFileNameConstant = "issues.csv"

func writeInputFile(testInstance *testing.T, content string) string {
	testInstance.Helper()
	inputPath := filepath.Join(testInstance.TempDir(), inputFileNameConstant)
	require.NoError(testInstance, os.WriteFile(inputPath, []byte(content), 0o600))
	return inputPath
}

func TestReadRowsParsesFields(testInstance *testing.T) {
	testInstance.Parallel()

	inputPath := writeInputFile(testInstance, "Title,Body,Labels,Status,Parent\n"+
		" Epic A ,Build the big thing,\"epic, Epic ,backend\", Todo ,\n"+
		"Task 1,First step,,,\" Epic A \"\n")

	parsedRows, readError := importer.ReadRows(inputPath, importer.DefaultColumnMapping())
	require.NoError(testInstance, readError)
	require.Len(testInstance, parsedRows, 2)

	require.Equal(testInstance, 2, parsedRows[0].LineNumber)
	require.Equal(testInstance, "Epic A", parsedRows[0].Title)
	require.Equal(testInstance, "Build the big thing", parsedRows[0].Body)
	require.Equal(testInstance, []string{"epic", "backend"}, parsedRows[0].Labels)
	require.Equal(testInstance, "Todo", parsedRows[0].Status)
	require.Empty(testInstance, parsedRows[0].Parent)

	require.Equal(testInstance, 3, parsedRows[1].LineNumber)
	require.Equal(testInstance, "Task 1", parsedRows[1].Title)
	require.Empty(testInstance, parsedRows[1].Labels)
	require.Empty(testInstance, parsedRows[1].Status)
	require.Equal(testInstance, "Epic A", parsedRows[1].Parent)
}

func TestReadRowsWithRenamedColumns(testInstance *testing.T) {
	testInstance.Parallel()

	inputPath := writeInputFile(testInstance, "Summary,Tags\nFix login,\"bug,auth\"\n")
	columnMapping := importer.ColumnMapping{Title: "Summary", Labels: "Tags", Body: "Body", Status: "Status", Parent: "Parent"}

	parsedRows, readError := importer.ReadRows(inputPath, columnMapping)
	require.NoError(testInstance, readError)
	require.Len(testInstance, parsedRows, 1)
	require.Equal(testInstance, "Fix login", parsedRows[0].Title)
	require.Equal(testInstance, []string{"bug", "auth"}, parsedRows[0].Labels)
	require.Empty(testInstance, parsedRows[0].Body)
}

func TestReadRowsToleratesShortRecords(testInstance *testing.T) {
	testInstance.Parallel()

	inputPath := writeInputFile(testInstance, "Title,Body,Labels,Status,Parent\nLonely title\n")

	parsedRows, readError := importer.ReadRows(inputPath, importer.DefaultColumnMapping())
	require.NoError(testInstance, readError)
	require.Len(testInstance, parsedRows, 1)
	require.Equal(testInstance, "Lonely title", parsedRows[0].Title)
	require.Empty(testInstance, parsedRows[0].Body)
	require.Empty(testInstance, parsedRows[0].Labels)
}

func TestReadRowsRequiresTitleColumn(testInstance *testing.T) {
	testInstance.Parallel()

	inputPath := writeInputFile(testInstance, "Body,Labels\nsome body,bug\n")

	_, readError := importer.ReadRows(inputPath, importer.DefaultColumnMapping())
	require.Error(testInstance, readError)
	var configurationError importerrors.ConfigurationError
	require.ErrorAs(testInstance, readError, &configurationError)
}

func TestReadRowsRejectsEmptyFile(testInstance *testing.T) {
	testInstance.Parallel()

	inputPath := writeInputFile(testInstance, "")

	_, readError := importer.ReadRows(inputPath, importer.DefaultColumnMapping())
	require.Error(testInstance, readError)
}

func TestReadRowsMissingFile(testInstance *testing.T) {
	testInstance.Parallel()

	_, readError := importer.ReadRows(filepath.Join(testInstance.TempDir(), "absent.csv"), importer.DefaultColumnMapping())
	require.Error(testInstance, readError)
}
