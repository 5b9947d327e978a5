package port

import (
	"context"

	"licencewatch/internal/domain"
)

// DocumentSource resolves and transfers bulletin documents. Implementations
// make no assumption about transport beyond returning the bytes.
type DocumentSource interface {
	// LatestBulletinURL resolves the newest published bulletin of the given
	// variant. Returns domain.ErrNoBulletinFound when the listing carries none.
	LatestBulletinURL(ctx context.Context, variant domain.Variant) (string, error)
	// Fetch downloads the document at url.
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// TableExtractor produces raw tabular blocks from a bulletin document.
// Returns domain.ErrNoTables when the document has no machine-readable
// text tables; an empty result with nil error means extraction ran and
// found nothing wrong, just nothing tabular either.
type TableExtractor interface {
	Extract(ctx context.Context, doc *domain.SourceDocument) ([]domain.RawTable, error)
}
