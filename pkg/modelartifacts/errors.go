package modelartifacts

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrVersionTagUnavailable indicates no runtime/compiler version tag
	// could be determined. The version-namespaced cache tier is skipped in
	// that case; operations that require the tag (locating generated
	// artifacts) fail with this error.
	ErrVersionTagUnavailable = errors.New("version tag unavailable")

	// ErrDescriptorMalformed indicates a descriptor sidecar is missing,
	// unreadable, or missing required fields.
	ErrDescriptorMalformed = errors.New("descriptor sidecar malformed")

	// ErrIntegrityMismatch indicates fetched or stored bytes disagree in
	// length with the descriptor's declared size.
	ErrIntegrityMismatch = errors.New("artifact size integrity mismatch")

	// ErrArtifactNotFoundRemote indicates the remote endpoint returned a
	// non-success response for the artifact.
	ErrArtifactNotFoundRemote = errors.New("artifact not found in remote store")

	// ErrArtifactUnavailable indicates no tier produced the artifact.
	ErrArtifactUnavailable = errors.New("artifact unavailable")

	// ErrObjectNotFound indicates an object is absent from a local
	// content-addressed store.
	ErrObjectNotFound = errors.New("object not found")
)

// ArtifactError represents an error resolving one artifact of a model
type ArtifactError struct {
	Name      string
	Extension string
	Op        string
	Err       error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact operation %s failed for %s.%s: %v", e.Op, e.Name, e.Extension, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}
