// Package cli implements the interactive GlidePath client: a REPL over the
// application services for running projections, managing profiles, saving
// results, verifying membership, and purchasing credits.
package cli
