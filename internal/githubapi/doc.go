// Package githubapi provides the authenticated transport used by the importer:
// a GraphQL query/mutation runner and a REST resource caller, both fail-fast.
package githubapi
