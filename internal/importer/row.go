package importer

import "strings"

const labelSeparatorConstant = ","

// Row is one parsed input record.
type Row struct {
	LineNumber int
	Title      string
	Body       string
	Labels     []string
	Status     string
	Parent     string
}

// HasTitle reports whether the row carries a usable title.
func (row Row) HasTitle() bool {
	return len(row.Title) > 0
}

// parseLabelList splits a comma separated label cell, trimming every entry
// and dropping case-insensitive duplicates while keeping the first spelling.
func parseLabelList(labelCell string) []string {
	segments := strings.Split(labelCell, labelSeparatorConstant)
	parsedLabels := make([]string, 0, len(segments))
	seenLabels := make(map[string]struct{}, len(segments))
	for _, segment := range segments {
		trimmedLabel := strings.TrimSpace(segment)
		if len(trimmedLabel) == 0 {
			continue
		}
		loweredLabel := strings.ToLower(trimmedLabel)
		if _, alreadySeen := seenLabels[loweredLabel]; alreadySeen {
			continue
		}
		seenLabels[loweredLabel] = struct{}{}
		parsedLabels = append(parsedLabels, trimmedLabel)
	}
	return parsedLabels
}
