package meshdoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshops/internal/logger"
	"github.com/Faultbox/meshops/pkg/mesh"
)

// Decode reads one document from r.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Document
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding mesh: %w", err)
	}
	return &d, nil
}

// Encode writes d to w.
func Encode(w io.Writer, d *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding mesh: %w", err)
	}
	return enc.Close()
}

// Load reads the mesh at path. A document without a name is named after
// the file.
func Load(path string) (*Document, *mesh.Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = stem(path)
	}
	data, err := doc.Data()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	a := data.View()
	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("triangles", a.TriangleCount()),
		zap.Int("vertices", a.VertexCount()),
		zap.Stringer("attributes", a.Flags()))
	return doc, data, nil
}

// Save writes d to path, creating its directory.
func Save(path string, d *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, d); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Debug("mesh saved",
		zap.String("path", path),
		zap.Int("triangles", len(d.Triangles.Vertices)),
		zap.Int("slices", len(d.Slices)))
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
