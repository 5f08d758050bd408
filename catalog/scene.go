package catalog

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/geojson"

	"github.com/airbusgeo/up42-go/common"
)

// Scene is a typed view of a feature returned by Search
type Scene struct {
	ID            string
	Host          string
	Collection    string
	SceneID       string
	Datetime      time.Time
	CloudCover    float64
	Constellation common.Constellation
	Geometry      geom.Geometry
	Properties    map[string]interface{}
}

// NewScene parses the properties of a feature returned by Search
func NewScene(f geojson.Feature) (Scene, error) {
	s := Scene{Geometry: f.Geometry.Geometry, Properties: f.Properties}
	var ok bool
	if s.ID, ok = f.Properties[common.TagID].(string); !ok {
		return Scene{}, fmt.Errorf("NewScene: failed to parse id: %v", f.Properties[common.TagID])
	}
	s.Host, _ = f.Properties[common.TagHost].(string)
	s.Collection, _ = f.Properties[common.TagCollection].(string)
	s.SceneID, _ = f.Properties[common.TagSceneID].(string)
	s.CloudCover, _ = f.Properties[common.TagCloudCover].(float64)

	if datetime, ok := f.Properties[common.TagDatetime].(string); ok {
		d, err := dateparse.ParseAny(datetime)
		if err != nil {
			return Scene{}, fmt.Errorf("NewScene[%s]: failed to parse datetime: %w", s.ID, err)
		}
		s.Datetime = d.UTC()
	}

	if constellation, ok := f.Properties[common.TagConstellation].(string); ok {
		s.Constellation = common.GetConstellationFromString(constellation)
	}
	if s.Constellation == common.Unknown {
		s.Constellation = common.GetConstellationFromSceneId(s.SceneID)
	}
	return s, nil
}

// Scenes parses all the features of the collection
func Scenes(fc geojson.FeatureCollection) ([]Scene, error) {
	scenes := make([]Scene, 0, len(fc.Features))
	for _, f := range fc.Features {
		s, err := NewScene(f)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}
	return scenes, nil
}

// removeDoubleEntries removes the features that appear twice in the results (the catalog may be updated between two pages).
// The most recent acquisition is kept.
func removeDoubleEntries(features []geojson.Feature) []geojson.Feature {
	identifiers := map[interface{}]int{}

	j := 0
	for _, f := range features {
		id, ok := f.Properties[common.TagID]
		if !ok {
			features[j] = f
			j++
			continue
		}
		if k, ok := identifiers[id]; !ok {
			features[j] = f
			identifiers[id] = j
			j++
		} else if fmt.Sprint(features[k].Properties[common.TagDatetime]) < fmt.Sprint(f.Properties[common.TagDatetime]) {
			features[k] = f
		}
	}

	return features[0:j]
}
