package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"focustrack/internal/modules/hook/domain"
	hookout "focustrack/internal/modules/hook/port/out"
)

type manifestFile struct {
	Hooks []domain.Manifest `yaml:"hooks"`
}

// FileManifestStore reads hooks.yaml. Relative binary paths resolve against
// the directory holding the file.
type FileManifestStore struct {
	path string
}

func NewFileManifestStore(path string) hookout.ManifestStore {
	return &FileManifestStore{path: path}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read hook manifests: %w", err)
	}
	var file manifestFile
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("decode hook manifests: %w", err)
	}
	base := filepath.Dir(s.path)
	for i := range file.Hooks {
		if file.Hooks[i].Binary != "" && !filepath.IsAbs(file.Hooks[i].Binary) {
			file.Hooks[i].Binary = filepath.Clean(filepath.Join(base, file.Hooks[i].Binary))
		}
	}
	if file.Hooks == nil {
		return []domain.Manifest{}, nil
	}
	return file.Hooks, nil
}
