package catalog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-spatial/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airbusgeo/up42-go/catalog"
	"github.com/airbusgeo/up42-go/common"
	"github.com/airbusgeo/up42-go/service"
	"github.com/airbusgeo/up42-go/service/mockapi"
	"github.com/airbusgeo/up42-go/session"
)

var square = geom.Polygon{{{2, 48}, {3, 48}, {3, 49}, {2, 49}, {2, 48}}}

func newCatalog(t *testing.T) (*mockapi.Server, *catalog.Catalog) {
	srv := mockapi.New()
	t.Cleanup(srv.Close)
	srv.Authorize("abc")
	return srv, catalog.New(session.FromToken("abc", mockapi.WorkspaceID, session.WithEndpoint(srv.URL)))
}

// addScenes adds n PHR scenes, one per day from 2026-01-01, with a cloud cover of i*4%
func addScenes(srv *mockapi.Server, n int) {
	for i := 0; i < n; i++ {
		d := time.Date(2026, 1, 1+i, 10, 30, 0, 0, time.UTC)
		srv.AddScene(fmt.Sprintf("DS_PHR1A_%s_FR1_PX_E002N48_0101_%02d", d.Format("20060102103000"), i), "phr", d, float64(i*4), [4]float64{2.2, 48.2, 2.8, 48.8})
	}
}

func TestRepresentation(t *testing.T) {
	srv, _ := newCatalog(t)
	s := session.FromToken("abc", "")
	c := catalog.New(s)
	assert.Equal(t, "Catalog(session="+s.String()+")", c.String())
	assert.Equal(t, c.String(), c.String())
	assert.Same(t, s, c.Session())
	assert.Empty(t, srv.Requests())
}

func TestSearchParameters(t *testing.T) {
	params, err := catalog.SearchParameters(square, "2026-01-01", "2026-01-31", []string{"pleiades", "pneo-tasking", "phr"}, 20, 0, "-acquisitionDate")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultLimit, params.Limit)
	assert.Equal(t, "2026-01-01T00:00:00Z/2026-01-31T23:59:59Z", params.Datetime)
	assert.Equal(t, []string{"phr", "pneo-tasking"}, params.Collections)
	assert.Equal(t, 20., params.Query[common.TagCloudCover]["lte"])
	assert.Equal(t, []catalog.SortBy{{Field: "properties.datetime", Direction: "desc"}}, params.SortBy)

	b, err := json.Marshal(params)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"intersects":{`)
	assert.Contains(t, string(b), `"Polygon"`)
	assert.NotContains(t, string(b), `"token"`)

	params, err = catalog.SearchParameters(square, "2026-01-01", "2026-01-31", []string{"phr"}, -1, 100, "cloudCoverage")
	require.NoError(t, err)
	assert.Nil(t, params.Query)
	assert.Equal(t, 100, params.Limit)
	assert.Equal(t, "asc", params.SortBy[0].Direction)
}

func TestSearchParametersInvalid(t *testing.T) {
	tests := []struct {
		name        string
		aoi         interface{}
		start, end  string
		collections []string
		limit       int
		sortBy      string
	}{
		{"limit", square, "2026-01-01", "2026-01-31", []string{"phr"}, catalog.MaxLimit + 1, ""},
		{"collections", square, "2026-01-01", "2026-01-31", nil, 10, ""},
		{"period", square, "2026-02-01", "2026-01-31", []string{"phr"}, 10, ""},
		{"date", square, "not a date", "2026-01-31", []string{"phr"}, 10, ""},
		{"sort", square, "2026-01-01", "2026-01-31", []string{"phr"}, 10, "size"},
		{"geometry", "POLYGON ((0 0))", "2026-01-01", "2026-01-31", []string{"phr"}, 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.SearchParameters(tt.aoi, tt.start, tt.end, tt.collections, 20, tt.limit, tt.sortBy)
			assert.Error(t, err)
		})
	}
	_, err := catalog.SearchParameters(42, "2026-01-01", "2026-01-31", []string{"phr"}, 20, 10, "")
	assert.ErrorIs(t, err, service.ErrInvalidGeometry)
}

func TestSearch(t *testing.T) {
	srv, c := newCatalog(t)
	addScenes(srv, 25)
	ctx := context.Background()

	params, err := catalog.SearchParameters(square, "2026-01-01", "2026-01-31", []string{"phr"}, -1, 25, "")
	require.NoError(t, err)
	fc, err := c.Search(ctx, mockapi.Host, params)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 25)
	for _, f := range fc.Features {
		assert.Equal(t, mockapi.Host, f.Properties[common.TagHost])
		assert.True(t, strings.HasPrefix(f.Properties[common.TagID].(string), "DS_PHR1A_"))
	}

	// Truncated to the limit
	params.Limit = 15
	fc, err = c.Search(ctx, mockapi.Host, params)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 15)

	// Filters
	params, err = catalog.SearchParameters(square, "2026-01-01", "2026-01-10", []string{"phr"}, 20, 100, "")
	require.NoError(t, err)
	fc, err = c.Search(ctx, mockapi.Host, params)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 6)

	scenes, err := catalog.Scenes(fc)
	require.NoError(t, err)
	for _, s := range scenes {
		assert.LessOrEqual(t, s.CloudCover, 20.)
		assert.Equal(t, common.PHR, s.Constellation)
		assert.Equal(t, "phr", s.Collection)
		assert.Equal(t, 10, s.Datetime.Hour())
		assert.False(t, s.Datetime.After(time.Date(2026, 1, 10, 23, 59, 59, 0, time.UTC)))
	}

	params, err = catalog.SearchParameters(square, "2026-01-01", "2026-01-31", []string{"sentinel-2"}, -1, 10, "")
	require.NoError(t, err)
	fc, err = c.Search(ctx, mockapi.Host, params)
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}

func TestSearchRemoteError(t *testing.T) {
	_, c := newCatalog(t)
	_, err := c.Search(context.Background(), mockapi.Host, catalog.SearchParams{Collections: []string{"phr"}})
	status, ok := service.RemoteStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, err.Error(), "intersects or bbox is required")

	_, err = c.Search(context.Background(), "", catalog.SearchParams{})
	assert.Error(t, err)
}

func TestDownloadQuicklooks(t *testing.T) {
	srv, c := newCatalog(t)
	addScenes(srv, 2)
	ctx := context.Background()
	dir := t.TempDir()

	params, err := catalog.SearchParameters(square, "2026-01-01", "2026-01-31", []string{"phr"}, -1, 10, "")
	require.NoError(t, err)
	fc, err := c.Search(ctx, mockapi.Host, params)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	ids := []string{fc.Features[0].Properties[common.TagID].(string), fc.Features[1].Properties[common.TagID].(string)}
	files, err := c.DownloadQuicklooks(ctx, mockapi.Host, append(ids, ids[0]), dir)
	require.NoError(t, err)
	require.Len(t, files, 2, "duplicated ids are downloaded once")
	data, err := os.ReadFile(catalog.QuicklookPath(dir, ids[0]))
	require.NoError(t, err)
	assert.Contains(t, string(data), ids[0])

	// Failures are merged, successful downloads are returned
	files, err = c.DownloadQuicklooks(ctx, mockapi.Host, append(ids, "unknown-1", "unknown-2"), t.TempDir())
	assert.Len(t, files, 2)
	require.Error(t, err)
	status, ok := service.RemoteStatus(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, err.Error(), "unknown-1")
	assert.Contains(t, err.Error(), "unknown-2")
}

func TestCollectionsAndDataProducts(t *testing.T) {
	_, c := newCatalog(t)
	ctx := context.Background()

	collections, err := c.Collections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 2)
	assert.Equal(t, "phr", collections[0].Name)
	assert.Equal(t, mockapi.Host, collections[0].HostName)

	products, err := c.DataProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, mockapi.DataProductID, products[0].ID)
}
