// Package importer turns CSV rows into repository issues attached to a
// GitHub Projects board. It parses the input table, drives issue creation
// and board linking row by row, and appends subtask checklists to parent
// issues referenced by later rows.
package importer
