package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fchimpan/sticky/internal/widget"
)

const documentVersion = 1

type record struct {
	widget.State `yaml:",inline"`
	UpdatedAt    time.Time `yaml:"updated_at"`
}

// UnmarshalYAML starts from the default state so that slots missing from the
// file keep their declared defaults.
func (r *record) UnmarshalYAML(n *yaml.Node) error {
	type plain record
	p := plain{State: widget.DefaultState()}
	if err := n.Decode(&p); err != nil {
		return err
	}
	*r = record(p)
	return nil
}

type document struct {
	Version int               `yaml:"version"`
	Widgets map[string]record `yaml:"widgets"`
}

// FileStore keeps every instance in one YAML file. Writes replace the file
// atomically, so readers always see the last complete write.
type FileStore struct {
	path string
	now  func() time.Time

	mu        sync.Mutex
	lastWrite time.Time // mod time of our own last write, for the watcher
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(ctx context.Context, id string) (widget.State, error) {
	if err := ctx.Err(); err != nil {
		return widget.State{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return widget.State{}, err
	}
	r, ok := doc.Widgets[id]
	if !ok {
		return widget.DefaultState(), fmt.Errorf("load %s: %w", id, ErrNotFound)
	}
	return r.State, nil
}

func (f *FileStore) Save(ctx context.Context, id string, s widget.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return fmt.Errorf("instance id must be set")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.Widgets[id] = record{State: s, UpdatedAt: f.now().UTC()}
	return f.write(doc)
}

func (f *FileStore) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	doc, err := f.read()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(doc.Widgets))
	for id, r := range doc.Widgets {
		out = append(out, Entry{ID: id, State: r.State, UpdatedAt: r.UpdatedAt})
	}
	sortEntries(out)
	return out, nil
}

// read must be called with f.mu held. A missing file is an empty document.
func (f *FileStore) read() (document, error) {
	doc := document{Version: documentVersion, Widgets: map[string]record{}}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("failed to read state file: %w", err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, &DecodeError{Path: f.path, cause: err}
	}
	if doc.Version > documentVersion {
		return doc, &DecodeError{Path: f.path, cause: fmt.Errorf("unsupported version %d", doc.Version)}
	}
	if doc.Widgets == nil {
		doc.Widgets = map[string]record{}
	}
	doc.Version = documentVersion
	return doc, nil
}

// write must be called with f.mu held.
func (f *FileStore) write(doc document) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".sticky-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	if fi, err := os.Stat(f.path); err == nil {
		f.lastWrite = fi.ModTime()
	}
	return nil
}

// ownWrite reports whether the file on disk is the one we last wrote.
func (f *FileStore) ownWrite() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	fi, err := os.Stat(f.path)
	if err != nil {
		return false
	}
	return !f.lastWrite.IsZero() && fi.ModTime().Equal(f.lastWrite)
}
