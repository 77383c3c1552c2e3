package manifest

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matsim-eth/python-matsim/errors"
)

// Format is a manifest serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the serialization from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.NewInvalidManifestError("unsupported manifest extension %q (json, yaml, yml, toml)", filepath.Ext(path))
	}
}

// Decode reads and validates a manifest.
func Decode(r io.Reader, format Format) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&m)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &m)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = errors.Newf("unknown keys: %v", undecoded)
			}
		}
	default:
		return nil, errors.NewInvalidManifestError("unknown manifest format %q", format)
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode %s manifest", format), errors.ErrInvalidManifest)
	}

	if err := Validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open manifest %s", path)
	}
	defer f.Close()

	m, err := Decode(f, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	if m.Scope == "" {
		m.Scope = filepath.Base(path)
	}
	return m, nil
}

// Encode writes m in the given format.
func Encode(w io.Writer, m *Manifest, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(m)
	default:
		return errors.NewInvalidManifestError("unknown manifest format %q", format)
	}
}

// Validate checks the manifest is self-consistent: supported format,
// unique non-empty names, known kinds, and enclosing/inner references that
// point at declared types and agree with each other.
func Validate(m *Manifest) error {
	if m.Format != FormatVersion {
		return errors.NewInvalidManifestError("unsupported manifest format %d (want %d)", m.Format, FormatVersion)
	}

	declared := make(map[string]*TypeSpec, len(m.Types))
	for i := range m.Types {
		t := &m.Types[i]
		if t.Name == "" {
			return errors.NewInvalidManifestError("type #%d has no name", i)
		}
		if declared[t.Name] != nil {
			return errors.NewInvalidManifestError("type %s declared twice", t.Name)
		}
		declared[t.Name] = t

		switch t.Kind {
		case "", KindClass, KindInterface, KindEnum:
		default:
			return errors.NewInvalidManifestError("type %s has unknown kind %q", t.Name, t.Kind)
		}
	}

	for _, t := range m.Types {
		if t.Enclosing != "" {
			outer := declared[t.Enclosing]
			if outer == nil {
				return errors.NewInvalidManifestError("type %s is enclosed by undeclared %s", t.Name, t.Enclosing)
			}
			if !slices.Contains(outer.Inner, t.Name) {
				return errors.NewInvalidManifestError("type %s is enclosed by %s, which does not list it as inner", t.Name, t.Enclosing)
			}
		}
		for _, in := range t.Inner {
			spec := declared[in]
			if spec == nil {
				return errors.NewInvalidManifestError("type %s lists undeclared inner type %s", t.Name, in)
			}
			if spec.Enclosing != t.Name {
				return errors.NewInvalidManifestError("type %s lists inner type %s, which is enclosed by %q", t.Name, in, spec.Enclosing)
			}
		}
	}
	return nil
}
