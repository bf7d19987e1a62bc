package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Hristiyan-Anchev/issueboard/internal/importerrors"
)

const (
	csvOpenErrorTemplateConstant          = "failed to open input file %s: %w"
	csvReadErrorTemplateConstant          = "failed to read input file %s: %w"
	csvMissingTitleColumnTemplateConstant = "input file %s has no %q column"
	absentColumnIndexConstant             = -1
	headerLineNumberConstant              = 1
)

// ReadRows parses the CSV file at csvPath into rows using the header names
// declared by mapping. Columns missing from the header yield empty fields,
// except the title column which must be present.
func ReadRows(csvPath string, mapping ColumnMapping) ([]Row, error) {
	fileHandle, openError := os.Open(csvPath)
	if openError != nil {
		return nil, fmt.Errorf(csvOpenErrorTemplateConstant, csvPath, openError)
	}
	defer func() {
		_ = fileHandle.Close()
	}()

	csvReader := csv.NewReader(fileHandle)
	csvReader.FieldsPerRecord = -1

	headerRecord, headerError := csvReader.Read()
	if headerError == io.EOF {
		return nil, importerrors.NewConfigurationError(csvMissingTitleColumnTemplateConstant, csvPath, mapping.Title)
	}
	if headerError != nil {
		return nil, fmt.Errorf(csvReadErrorTemplateConstant, csvPath, headerError)
	}

	columnIndexes := resolveColumnIndexes(headerRecord, mapping)
	if columnIndexes.title == absentColumnIndexConstant {
		return nil, importerrors.NewConfigurationError(csvMissingTitleColumnTemplateConstant, csvPath, mapping.Title)
	}

	parsedRows := make([]Row, 0)
	lineNumber := headerLineNumberConstant
	for {
		record, recordError := csvReader.Read()
		if recordError == io.EOF {
			break
		}
		if recordError != nil {
			return nil, fmt.Errorf(csvReadErrorTemplateConstant, csvPath, recordError)
		}
		lineNumber++
		parsedRows = append(parsedRows, Row{
			LineNumber: lineNumber,
			Title:      strings.TrimSpace(fieldAt(record, columnIndexes.title)),
			Body:       fieldAt(record, columnIndexes.body),
			Labels:     parseLabelList(fieldAt(record, columnIndexes.labels)),
			Status:     strings.TrimSpace(fieldAt(record, columnIndexes.status)),
			Parent:     strings.TrimSpace(fieldAt(record, columnIndexes.parent)),
		})
	}

	return parsedRows, nil
}

type resolvedColumnIndexes struct {
	title  int
	body   int
	labels int
	status int
	parent int
}

func resolveColumnIndexes(headerRecord []string, mapping ColumnMapping) resolvedColumnIndexes {
	return resolvedColumnIndexes{
		title:  columnIndex(headerRecord, mapping.Title),
		body:   columnIndex(headerRecord, mapping.Body),
		labels: columnIndex(headerRecord, mapping.Labels),
		status: columnIndex(headerRecord, mapping.Status),
		parent: columnIndex(headerRecord, mapping.Parent),
	}
}

func columnIndex(headerRecord []string, columnName string) int {
	for headerIndex, headerValue := range headerRecord {
		if strings.EqualFold(strings.TrimSpace(headerValue), columnName) {
			return headerIndex
		}
	}
	return absentColumnIndexConstant
}

func fieldAt(record []string, fieldIndex int) string {
	if fieldIndex == absentColumnIndexConstant || fieldIndex >= len(record) {
		return ""
	}
	return record[fieldIndex]
}
