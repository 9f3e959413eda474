package assets

import (
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/vignette/engine/assets/loaders"
)

type AssetType uint8

const (
	AssetTypeNone AssetType = iota
	AssetTypeConfig
	AssetTypeShader
	AssetTypeImage
	AssetTypeFont
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeConfig:
		return "config"
	case AssetTypeShader:
		return "shader"
	case AssetTypeImage:
		return "image"
	case AssetTypeFont:
		return "font"
	default:
		return "none"
	}
}

// Loader reads the file at path. The concrete type of the returned value
// depends on the loader.
type Loader interface {
	Load(path string) (interface{}, error)
}

func defaultLoaders() map[AssetType]Loader {
	return map[AssetType]Loader{
		AssetTypeConfig: &loaders.BinaryLoader{},
		AssetTypeShader: &loaders.ShaderLoader{},
		AssetTypeImage:  &loaders.ImageLoader{},
		AssetTypeFont:   &loaders.BinaryLoader{},
	}
}

func determineAssetType(path string) AssetType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return AssetTypeConfig
	case ".spv":
		return AssetTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return AssetTypeImage
	case ".ttf", ".otf":
		return AssetTypeFont
	default:
		return AssetTypeNone
	}
}
