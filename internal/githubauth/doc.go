// Package githubauth resolves GitHub authentication tokens from explicit
// token-source declarations (env:NAME or file:/path) or the conventional
// GH_TOKEN, GITHUB_TOKEN, and GITHUB_API_TOKEN environment variables.
package githubauth
