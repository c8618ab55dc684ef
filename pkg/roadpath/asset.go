package roadpath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an on-disk encoding for path assets.
type Format string

// Supported asset formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for asset files with an unrecognized extension.
var ErrUnknownFormat = errors.New("unknown path asset format")

// FormatOf picks the asset format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Parse decodes and validates a path asset.
func Parse(data []byte, format Format) (*Path, error) {
	p := &Path{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, p)
	case FormatTOML:
		err = toml.Unmarshal(data, p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s path: %w", format, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	return p, nil
}

// Load reads a path asset, choosing the format from the file extension.
func Load(path string) (*Path, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Marshal encodes the path in the given format.
func (p *Path) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(p)
	case FormatTOML:
		return toml.Marshal(p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// SaveTo writes the path to a file, choosing the format from the extension.
func (p *Path) SaveTo(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := p.Marshal(format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
