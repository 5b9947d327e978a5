package discover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"licencewatch/internal/config"
	"licencewatch/internal/domain"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<h1>Licences granted in 2024</h1>
<ul>
<li><a href="/media/feb/marketing_authorisations_granted_feb.pdf">February</a></li>
<li><a href="/media/jan/marketing_authorisations_granted_jan.pdf">January</a></li>
<li><a href="/media/feb/parallel_import_licences_granted_feb.pdf">February PI</a></li>
<li><a href="https://example.org/unrelated.pdf">Unrelated</a></li>
</ul>
</body></html>`

func newTestSource(t *testing.T, handler http.HandlerFunc) (*HTTPSource, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.HarvestConfig{
		StandardListingURL:       srv.URL + "/publications/ma-",
		ParallelImportListingURL: srv.URL + "/publications/pi-",
		Year:                     "2024",
	}
	return NewHTTPSource(cfg), srv
}

func TestLatestBulletinURL_FirstMatchWins(t *testing.T) {
	var requested string
	src, srv := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		w.Write([]byte(listingHTML))
	})

	url, err := src.LatestBulletinURL(context.Background(), domain.VariantStandard)
	require.NoError(t, err)

	// Listings run newest-first: the first matching anchor is the latest
	// bulletin, and relative hrefs resolve against the listing URL.
	assert.Equal(t, srv.URL+"/media/feb/marketing_authorisations_granted_feb.pdf", url)
	assert.Equal(t, "/publications/ma-2024", requested)
}

func TestLatestBulletinURL_VariantSelectsNeedle(t *testing.T) {
	src, srv := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingHTML))
	})

	url, err := src.LatestBulletinURL(context.Background(), domain.VariantParallelImport)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/media/feb/parallel_import_licences_granted_feb.pdf", url)
}

func TestLatestBulletinURL_NoMatchingAnchor(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/other.pdf">Other</a></body></html>`))
	})

	_, err := src.LatestBulletinURL(context.Background(), domain.VariantStandard)
	assert.ErrorIs(t, err, domain.ErrNoBulletinFound)
}

func TestLatestBulletinURL_ListingNotFound(t *testing.T) {
	src, _ := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := src.LatestBulletinURL(context.Background(), domain.VariantStandard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_ReturnsBody(t *testing.T) {
	src, srv := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bulletin.pdf" {
			w.Write([]byte("%PDF-1.4 fake"))
			return
		}
		http.NotFound(w, r)
	})

	content, err := src.Fetch(context.Background(), srv.URL+"/bulletin.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), content)
}

func TestFetch_NonOKStatus(t *testing.T) {
	src, srv := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := src.Fetch(context.Background(), srv.URL+"/bulletin.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

func TestFirstMatchingAnchor_CaseInsensitive(t *testing.T) {
	html := `<html><body><a href="/Marketing_Authorisations_Granted_mar.PDF">March</a></body></html>`
	src, srv := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	})

	url, err := src.LatestBulletinURL(context.Background(), domain.VariantStandard)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/Marketing_Authorisations_Granted_mar.PDF", url)
}
