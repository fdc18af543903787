package conversion

import "context"

// Transition is the fixed per-slide transform applied by a job.
type Transition struct {
	Type        string
	Duration    float64
	MorphOption string
}

// SlideService is the remote presentation-processing service. Implementations
// authenticate with client credentials and address slides positionally, so
// per-slide mutations must be issued in index order.
type SlideService interface {
	// Authenticate exchanges service credentials for a short-lived access
	// token used by subsequent calls.
	Authenticate(ctx context.Context) error

	// UploadFile places bytes into the service's working storage under name.
	UploadFile(ctx context.Context, name string, data []byte) error

	// ListFiles enumerates the names at the working-storage root.
	ListFiles(ctx context.Context) ([]string, error)

	// SlideCount returns the number of transformable slides in the uploaded
	// artifact.
	SlideCount(ctx context.Context, name string) (int, error)

	// ApplyTransition mutates the slide at the 1-based index in place.
	ApplyTransition(ctx context.Context, name string, slide int, transition Transition) error

	// DownloadFile retrieves the (possibly mutated) artifact bytes from
	// working storage.
	DownloadFile(ctx context.Context, name string) ([]byte, error)
}

// ArtifactStore is the durable object store for finished artifacts.
type ArtifactStore interface {
	// Put writes bytes under key and returns a stable, publicly addressable
	// URL for the stored object.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
