package graphics

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"gridcaster/internal/logger"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"gopkg.in/yaml.v3"
)

// ManifestEntry binds an image file to a texture ID and name.
type ManifestEntry struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Manifest is the on-disk texture list.
type Manifest struct {
	Textures []ManifestEntry `yaml:"textures"`
}

// LoadManifest starts from the built-in set and overlays every manifest
// entry. Paths are relative to the manifest file. An image that is missing
// or fails to decode is replaced by a placeholder and logged; only a broken
// manifest is an error.
func LoadManifest(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read texture manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse texture manifest %s: %w", path, err)
	}

	reg := Builtin()
	base := filepath.Dir(path)
	seen := make(map[int]string, len(m.Textures))
	for _, e := range m.Textures {
		if e.Name == "" {
			return nil, fmt.Errorf("texture manifest %s: entry %d has no name", path, e.ID)
		}
		if prev, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("texture manifest %s: id %d used by %q and %q", path, e.ID, prev, e.Name)
		}
		seen[e.ID] = e.Name

		tex, err := loadImage(e.Name, filepath.Join(base, e.Path))
		if err != nil {
			logger.Warn("texture fallback to placeholder",
				zap.String("name", e.Name),
				zap.Int("id", e.ID),
				zap.Error(err),
			)
			tex = Placeholder(e.Name)
		}
		if err := reg.Register(e.ID, tex); err != nil {
			return nil, fmt.Errorf("texture manifest %s: %w", path, err)
		}
	}

	logger.Info("textures loaded", zap.String("manifest", path), zap.Int("entries", len(m.Textures)), zap.Int("ids", reg.Len()))
	return reg, nil
}

func loadImage(name, path string) (*Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(name, img), nil
}
