package modelartifacts

import "context"

// ContentStore reads objects from a local content-addressed store. A store
// miss is reported as ErrObjectNotFound; a size disagreement with the
// address's declared size is reported as ErrIntegrityMismatch.
type ContentStore interface {
	// Get reads the object at addr and returns its bytes.
	Get(ctx context.Context, addr ContentAddress) ([]byte, error)

	// Root returns the store's root directory, for logging.
	Root() string
}

// Fetcher retrieves an object from a remote store by content address. A
// non-success response is reported as ErrArtifactNotFoundRemote; transport
// failures are wrapped rather than surfaced raw.
type Fetcher interface {
	Fetch(ctx context.Context, addr ContentAddress) ([]byte, error)
}
