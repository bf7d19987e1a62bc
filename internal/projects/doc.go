// Package projects resolves project boards and their Status single-select
// fields, and links created issues onto a board via GraphQL mutations.
package projects
