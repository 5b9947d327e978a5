package port

import "context"

// BulletinArchive keeps a copy of each fetched bulletin for audit.
type BulletinArchive interface {
	// Archive stores the document bytes under name and returns the stored
	// location (an S3 URL, a file path, or empty for a no-op archive).
	Archive(ctx context.Context, name string, content []byte) (string, error)
}
