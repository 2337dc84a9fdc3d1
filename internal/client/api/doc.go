// Package api defines the remote GlidePath API surface consumed by the
// client: computation runs, entitlement fetches, profile and simulation CRUD,
// report generation, membership verification, and checkout. The Client
// interface is the seam services are tested against; HTTPClient is the
// production implementation.
package api
