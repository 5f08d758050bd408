// Package catalog searches the archive catalogs (STAC) and downloads quicklooks.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-spatial/geom/encoding/geojson"

	"github.com/airbusgeo/up42-go/common"
	"github.com/airbusgeo/up42-go/service"
	"github.com/airbusgeo/up42-go/service/geometry"
	"github.com/airbusgeo/up42-go/service/log"
	"github.com/airbusgeo/up42-go/session"
)

// Limits of the number of results of a search
const (
	DefaultLimit = 10
	MaxLimit     = 10000
)

// Catalog is the feature module of the catalog search
type Catalog struct {
	session session.Authenticator
}

// New binds a Catalog module to the session. It never fails and sends no request.
func New(s session.Authenticator) *Catalog {
	return &Catalog{session: s}
}

func (c *Catalog) String() string {
	return fmt.Sprintf("Catalog(session=%s)", c.session)
}

// Session returns the session the module is bound to
func (c *Catalog) Session() session.Authenticator {
	return c.session
}

// SortBy is a sort criterion of a STAC search
type SortBy struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// SearchParams is the body of a STAC search
type SearchParams struct {
	Intersects  *geometry.QueryGeometry           `json:"intersects,omitempty"`
	BBox        []float64                         `json:"bbox,omitempty"`
	Datetime    string                            `json:"datetime,omitempty"`
	Collections []string                          `json:"collections,omitempty"`
	Limit       int                               `json:"limit"`
	Query       map[string]map[string]interface{} `json:"query,omitempty"`
	SortBy      []SortBy                          `json:"sortby,omitempty"`
	Token       string                            `json:"token,omitempty"`
}

// sortFields maps the user-friendly sort criteria to the STAC properties
var sortFields = map[string]string{
	"acquisitionDate": "properties." + common.TagDatetime,
	"cloudCoverage":   "properties." + common.TagCloudCover,
	"resolution":      "properties." + common.TagResolution,
}

// SearchParameters builds the parameters of a catalog search.
// aoi is any vector accepted by geometry.AnyVectorToFC (several features are merged).
// start and end are time.Time or strings (a date-only end includes the whole day).
// Collections may be given as constellation aliases (e.g. "pleiades").
// maxCloudCover is in percent (ignored if negative or >= 100).
// limit defaults to DefaultLimit and must not exceed MaxLimit.
// sortBy is one of acquisitionDate, cloudCoverage, resolution (empty: no sort); prefixed by "-" for a descending order.
func SearchParameters(aoi, start, end interface{}, collections []string, maxCloudCover float64, limit int, sortBy string) (SearchParams, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return SearchParams{}, fmt.Errorf("SearchParameters: limit must be <= %d, got %d", MaxLimit, limit)
	}
	if len(collections) == 0 {
		return SearchParams{}, fmt.Errorf("SearchParameters: at least one collection is required")
	}
	qg, err := geometry.ToQueryGeometry(aoi, geometry.OpIntersects, geometry.SquashUnion)
	if err != nil {
		return SearchParams{}, fmt.Errorf("SearchParameters.%w", err)
	}
	datetime, err := service.FormatTimePeriod(start, end)
	if err != nil {
		return SearchParams{}, fmt.Errorf("SearchParameters.%w", err)
	}

	params := SearchParams{
		Intersects: &qg,
		Datetime:   datetime,
		Limit:      limit,
	}
	for _, c := range collections {
		params.Collections = append(params.Collections, common.CollectionName(c))
	}
	params.Collections = service.Unique(params.Collections)
	if maxCloudCover >= 0 && maxCloudCover < 100 {
		params.Query = map[string]map[string]interface{}{
			common.TagCloudCover: {"lte": maxCloudCover},
		}
	}
	if sortBy != "" {
		direction := "asc"
		if strings.HasPrefix(sortBy, "-") {
			direction, sortBy = "desc", sortBy[1:]
		}
		field, ok := sortFields[sortBy]
		if !ok {
			return SearchParams{}, fmt.Errorf("SearchParameters: unsupported sort criterion %q", sortBy)
		}
		params.SortBy = []SortBy{{Field: field, Direction: direction}}
	}
	return params, nil
}

type link struct {
	Rel    string          `json:"rel"`
	Href   string          `json:"href"`
	Method string          `json:"method"`
	Body   json.RawMessage `json:"body"`
}

// next returns the parameters and the url of the next page
func (l link) next(params SearchParams) (SearchParams, string, error) {
	if len(l.Body) > 0 {
		var body struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(l.Body, &body); err != nil {
			return params, "", fmt.Errorf("next.Unmarshal: %w", err)
		}
		params.Token = body.Token
		return params, l.Href, nil
	}
	u, err := url.Parse(l.Href)
	if err != nil {
		return params, "", fmt.Errorf("next.Parse: %w", err)
	}
	params.Token = u.Query().Get("token")
	return params, l.Href, nil
}

// Search queries the catalog of the host and returns at most params.Limit features.
// The STAC id of each feature is stored in properties["id"] and the host in properties["host"].
func (c *Catalog) Search(ctx context.Context, host string, params SearchParams) (geojson.FeatureCollection, error) {
	if host == "" {
		return geojson.FeatureCollection{}, fmt.Errorf("Search: empty host")
	}
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}
	limit := params.Limit
	path := "/catalog/hosts/" + url.PathEscape(host) + "/stac/search"

	result := geojson.FeatureCollection{Features: []geojson.Feature{}}
	for page := 0; ; page++ {
		var raw json.RawMessage
		if err := c.session.Do(ctx, http.MethodPost, path, params, &raw); err != nil {
			return geojson.FeatureCollection{}, fmt.Errorf("Search[%s]: %w", host, err)
		}
		fc, err := service.UnmarshalFeatureCollection(raw)
		if err != nil {
			return geojson.FeatureCollection{}, fmt.Errorf("Search[%s].%w", host, err)
		}
		for _, f := range fc.Features {
			f.Properties[common.TagHost] = host
		}
		result.Features = removeDoubleEntries(append(result.Features, fc.Features...))

		var links struct {
			Links []link `json:"links"`
		}
		if err := json.Unmarshal(raw, &links); err != nil {
			return geojson.FeatureCollection{}, fmt.Errorf("Search[%s].Links: %w", host, err)
		}
		var nextLink *link
		for i, l := range links.Links {
			if l.Rel == "next" {
				nextLink = &links.Links[i]
			}
		}
		if len(result.Features) >= limit || len(fc.Features) == 0 || nextLink == nil {
			break
		}
		if params, path, err = nextLink.next(params); err != nil {
			return geojson.FeatureCollection{}, fmt.Errorf("Search[%s].%w", host, err)
		}
		log.Logger(ctx).Sugar().Debugf("search %s: page %d, %d results", host, page+1, len(result.Features))
	}

	if len(result.Features) > limit {
		result.Features = result.Features[:limit]
	}
	if len(result.Features) == 0 {
		log.Logger(ctx).Sugar().Warnf("search %s: no results", host)
	}
	return result, nil
}

// Collection of the catalog
type Collection struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Type       string `json:"type"`
	HostName   string `json:"hostName"`
	Restricted bool   `json:"restricted"`
}

// Collections returns the collections available for the account
func (c *Catalog) Collections(ctx context.Context) ([]Collection, error) {
	var envelope common.DataEnvelope
	if err := c.session.Do(ctx, http.MethodGet, "/collections", nil, &envelope); err != nil {
		return nil, fmt.Errorf("Collections: %w", err)
	}
	var collections []Collection
	if err := json.Unmarshal(envelope.Data, &collections); err != nil {
		return nil, fmt.Errorf("Collections.Unmarshal: %w", err)
	}
	return collections, nil
}

// DataProduct is an orderable product of a collection
type DataProduct struct {
	ID                   string                 `json:"id"`
	CollectionName       string                 `json:"collectionName"`
	ProductConfiguration map[string]interface{} `json:"productConfiguration"`
}

// DataProducts returns the data products available for the account
func (c *Catalog) DataProducts(ctx context.Context) ([]DataProduct, error) {
	var envelope common.DataEnvelope
	if err := c.session.Do(ctx, http.MethodGet, "/data-products", nil, &envelope); err != nil {
		return nil, fmt.Errorf("DataProducts: %w", err)
	}
	var products []DataProduct
	if err := json.Unmarshal(envelope.Data, &products); err != nil {
		return nil, fmt.Errorf("DataProducts.Unmarshal: %w", err)
	}
	return products, nil
}
