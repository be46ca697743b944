// Package repository implements the file-backed store for model schema
// documents. A document is one YAML file holding a models collection; the
// repository owns file-level load/save and record-level CRUD by name.
//
// The repository is synchronous and single-writer by design: a load
// followed by a save is not atomic with respect to other writers, and
// concurrent callers targeting the same document can lose updates. It never
// logs or prints; all errors surface to the caller.
package repository

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/leapstack-labs/schemakit/internal/schema"
)

// CollectionKey is the single recognized top-level key. Other top-level
// keys pass through load/save untouched.
const CollectionKey = "models"

// DefaultExt is the extension used when generating a new document name.
const DefaultExt = ".yml"

// Repository manages the documents under one base directory.
type Repository struct {
	dir string
}

// New returns a Repository rooted at dir, creating the directory (including
// parents) if missing. Idempotent; an existing directory is not an error.
func New(dir string) (*Repository, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("creating schemas directory: %w", err)
	}
	return &Repository{dir: dir}, nil
}

// Dir returns the base directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Resolve turns a bare document name into a path under the base directory.
// Paths that already carry a directory are returned unchanged.
func (r *Repository) Resolve(document string) string {
	if filepath.Dir(document) == "." {
		return filepath.Join(r.dir, document)
	}
	return document
}

// ListDocuments returns every .yml and .yaml file in the base directory, in
// filesystem-enumeration order. Callers must not depend on the ordering.
func (r *Repository) ListDocuments() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("reading schemas directory: %w", err)
	}
	var docs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yml", ".yaml":
			docs = append(docs, filepath.Join(r.dir, e.Name()))
		}
	}
	return docs, nil
}

// Load reads and parses a document. A missing file and an empty or null
// document both yield an empty mapping, not an error. Malformed YAML yields
// a *ParseError carrying the parser message.
func (r *Repository) Load(path string) (*schema.Mapping, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return schema.NewMapping(), nil
	}
	if err != nil {
		return nil, err
	}
	doc, err := schema.Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// Save serializes the mapping and writes it to path, overwriting existing
// content. Key order matches insertion order. The write goes through a temp
// file and rename so a failure never truncates the existing document.
func (r *Repository) Save(doc *schema.Mapping, path string) error {
	data, err := schema.Encode(doc)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CreateModel appends a new record to the target document, creating the
// document and its models collection as needed. The target is fileName when
// given, otherwise "<name>.yml". Returns the resolved document path.
func (r *Repository) CreateModel(name string, fields *schema.Mapping, fileName string) (string, error) {
	if fileName == "" {
		fileName = name + DefaultExt
	}
	path := r.Resolve(fileName)
	doc, err := r.Load(path)
	if err != nil {
		return "", err
	}
	models, _ := collection(doc)
	for _, item := range models {
		if schema.RecordName(item) == name {
			return "", &DuplicateModelError{Name: name, Document: filepath.Base(path)}
		}
	}
	var rec any = schema.NewRecord(name, fields)
	doc.Set(CollectionKey, append(models, rec))
	if err := r.Save(doc, path); err != nil {
		return "", err
	}
	return path, nil
}

// UpdateModel replaces the first record named name with a fresh record built
// from newFields. This is a full replacement, not a field-level merge:
// fields missing from newFields are dropped.
func (r *Repository) UpdateModel(document, name string, newFields *schema.Mapping) error {
	path := r.Resolve(document)
	doc, err := r.Load(path)
	if err != nil {
		return err
	}
	models, ok := collection(doc)
	if !ok {
		return &NotFoundError{Document: filepath.Base(path)}
	}
	for i, item := range models {
		if schema.RecordName(item) == name {
			models[i] = schema.NewRecord(name, newFields)
			doc.Set(CollectionKey, models)
			return r.Save(doc, path)
		}
	}
	return &NotFoundError{Name: name, Document: filepath.Base(path)}
}

// DeleteModel removes every record named name from the document. When the
// collection becomes empty the document file is deleted from disk instead
// of writing a near-empty document.
func (r *Repository) DeleteModel(document, name string) error {
	path := r.Resolve(document)
	doc, err := r.Load(path)
	if err != nil {
		return err
	}
	models, ok := collection(doc)
	if !ok {
		return &NotFoundError{Document: filepath.Base(path)}
	}
	kept := make([]any, 0, len(models))
	for _, item := range models {
		if schema.RecordName(item) != name {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(models) {
		return &NotFoundError{Name: name, Document: filepath.Base(path)}
	}
	if len(kept) == 0 {
		return os.Remove(path)
	}
	doc.Set(CollectionKey, kept)
	return r.Save(doc, path)
}

// Validate reports whether the mapping looks like a model schema document:
// it has a models key whose value is a sequence of mappings that each carry
// a name. Pure predicate; load and save never call it.
func Validate(doc *schema.Mapping) bool {
	if doc == nil {
		return false
	}
	v, ok := doc.Get(CollectionKey)
	if !ok {
		return false
	}
	seq, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range seq {
		rec, ok := item.(*schema.Mapping)
		if !ok || !rec.Has("name") {
			return false
		}
	}
	return true
}

// collection returns the models sequence. ok is false when the key is
// absent or its value is not a sequence.
func collection(doc *schema.Mapping) ([]any, bool) {
	v, ok := doc.Get(CollectionKey)
	if !ok {
		return nil, false
	}
	seq, ok := v.([]any)
	if !ok {
		return nil, false
	}
	return seq, true
}
