package definition

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfields/pkg/model"
)

// ErrNotFound is returned by Store.Form for an unknown id.
var ErrNotFound = errors.New("definition: form not found")

// Store holds loaded form definitions keyed by id.
type Store struct {
	forms map[string]model.FormDefinition
}

type documentFile struct {
	Forms map[string]model.FormDefinition `json:"forms" yaml:"forms"`

	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Fields      []model.Field     `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

// Parse decodes a JSON or YAML document. source names the document in error
// messages and provides the id of a single-form document that has none.
func Parse(data []byte, source string) ([]model.FormDefinition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("definition: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("definition: parse %s: invalid JSON or YAML", source)
		}
	}

	var forms []model.FormDefinition
	if len(doc.Forms) > 0 {
		ids := make([]string, 0, len(doc.Forms))
		for id := range doc.Forms {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			form := doc.Forms[id]
			if form.ID == "" {
				form.ID = id
			}
			forms = append(forms, form)
		}
	}
	if len(doc.Fields) > 0 {
		id := doc.ID
		if id == "" {
			id = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
		}
		forms = append(forms, model.FormDefinition{
			ID:          id,
			Title:       doc.Title,
			Description: doc.Description,
			Fields:      doc.Fields,
			Metadata:    doc.Metadata,
		})
	}
	if len(forms) == 0 {
		return nil, fmt.Errorf("definition: file %s defines no forms", source)
	}

	for idx := range forms {
		normalised, err := normaliseForm(forms[idx], source)
		if err != nil {
			return nil, err
		}
		forms[idx] = normalised
	}
	return forms, nil
}

// LoadFile parses a single definition file into a store.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", path, err)
	}
	store := &Store{forms: make(map[string]model.FormDefinition)}
	if err := store.add(data, path); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFS walks fsys and parses every .json, .yaml and .yml file. A nil fsys
// yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]model.FormDefinition)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDefinitionFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("definition: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (model.FormDefinition, error) {
	if s != nil {
		if form, ok := s.forms[id]; ok {
			return form, nil
		}
	}
	return model.FormDefinition{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// IDs returns the registered form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func (s *Store) add(data []byte, source string) error {
	forms, err := Parse(data, source)
	if err != nil {
		return err
	}
	for _, form := range forms {
		if _, exists := s.forms[form.ID]; exists {
			return fmt.Errorf("definition: duplicate form %q (file %s)", form.ID, source)
		}
		s.forms[form.ID] = form
	}
	return nil
}

func normaliseForm(form model.FormDefinition, source string) (model.FormDefinition, error) {
	form.ID = strings.TrimSpace(form.ID)
	if form.ID == "" {
		return form, fmt.Errorf("definition: file %s defines a form with an empty id", source)
	}
	seen := make(map[string]struct{}, len(form.Fields))
	for idx := range form.Fields {
		name := strings.TrimSpace(form.Fields[idx].Name)
		if name == "" {
			return form, fmt.Errorf("definition: form %q (file %s) field %d has no name", form.ID, source, idx)
		}
		if _, exists := seen[name]; exists {
			return form, fmt.Errorf("definition: form %q (file %s) defines duplicate field %q", form.ID, source, name)
		}
		seen[name] = struct{}{}
		form.Fields[idx].Name = name
		form.Fields[idx].Widget = strings.ToLower(strings.TrimSpace(form.Fields[idx].Widget))
	}
	return form, nil
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
