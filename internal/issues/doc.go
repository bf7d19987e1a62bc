// Package issues creates issue resources through the REST surface: ensuring
// referenced labels exist, creating issues, and rewriting issue bodies.
package issues
