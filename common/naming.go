package common

import (
	"strings"
)

//go:generate go run github.com/dmarkham/enumer -json -type Constellation

// Constellation defines the kind of satellites
type Constellation int

const (
	Unknown   Constellation = iota
	PHR                     // Pleiades
	PNEO                    // Pleiades Neo
	SPOT                    // SPOT 6/7
	Sentinel2               // Copernicus Sentinel-2
	BlackSky                // BlackSky Global
	Capella                 // Capella SAR
	TerraSARX               // TerraSAR-X / TanDEM-X
)

// GetConstellationFromString returns the constellation from the user input
func GetConstellationFromString(input string) Constellation {
	switch strings.ToLower(strings.ReplaceAll(input, "_", "-")) {
	case "phr", "pleiades":
		return PHR
	case "pneo", "pleiades-neo", "pleiadesneo":
		return PNEO
	case "spot", "spot6", "spot7":
		return SPOT
	case "sentinel2", "sentinel-2", "s2":
		return Sentinel2
	case "blacksky", "blacksky-global":
		return BlackSky
	case "capella", "capella-sar":
		return Capella
	case "terrasar", "terrasar-x", "tsx", "tandem-x":
		return TerraSARX
	}
	return GetConstellationFromSceneId(input)
}

// GetConstellationFromSceneId guesses the constellation from the identifier of a scene
func GetConstellationFromSceneId(sceneID string) Constellation {
	switch {
	case strings.HasPrefix(sceneID, "DS_PHR"):
		return PHR
	case strings.HasPrefix(sceneID, "DS_PNEO"):
		return PNEO
	case strings.HasPrefix(sceneID, "DS_SPOT"):
		return SPOT
	case strings.HasPrefix(sceneID, "S2"):
		return Sentinel2
	}
	return Unknown
}

// CollectionName returns the name of the catalog collection of the constellation (empty if unknown)
func (c Constellation) CollectionName() string {
	switch c {
	case PHR:
		return "phr"
	case PNEO:
		return "pneo"
	case SPOT:
		return "spot"
	case Sentinel2:
		return "sentinel-2"
	case BlackSky:
		return "blacksky-global"
	case Capella:
		return "capella-sar"
	case TerraSARX:
		return "terrasar-x"
	}
	return ""
}

// CollectionName returns the collection name of the input: a constellation alias or an already valid collection name
func CollectionName(input string) string {
	if name := GetConstellationFromString(input).CollectionName(); name != "" {
		return name
	}
	return input
}
