// Package services contains the application services of the GlidePath
// client: the run lifecycle (gate, remote computation, result caching,
// accounting), the profile persistence gateway, the membership verification
// handshake, and checkout. Services hold no state of their own beyond the
// handshake coordinator; session-scoped state lives in the session package.
package services
