package common

// Feature properties of catalog results
const (
	TagID            = "id"
	TagCollection    = "collection"
	TagDatetime      = "datetime"
	TagCloudCover    = "eo:cloud_cover"
	TagResolution    = "resolution"
	TagConstellation = "constellation"
	TagSceneID       = "sceneId"
	TagHost          = "host"
)
