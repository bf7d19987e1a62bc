// Package importerrors defines the terminal error taxonomy shared by the
// importer components: configuration problems the operator can fix, missing
// remote resources, and failed transport calls. All three abort the batch.
package importerrors
