package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Adapters and stores return these
// (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about artifacts, not validation failures:
// - ErrNotFound: a backing file or record does not exist
// - ErrMalformed: an artifact exists but failed to parse
// - ErrUnavailable: a tier has no usable backing data
//
// For validation errors (bad input, malformed parameters), use
// pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrMalformed   = errors.New("malformed artifact")
	ErrUnavailable = errors.New("unavailable")
)
