package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fchimpan/sticky/internal/palette"
	"github.com/fchimpan/sticky/internal/widget"
)

func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return start.Add(time.Duration(n) * time.Minute)
	}
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs := NewFileStore(filepath.Join(t.TempDir(), "state", "notes.yaml"))
	fs.now = fixedClock(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	return fs
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()

	fs := newTestFileStore(t)
	st, err := fs.Load(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if st != widget.DefaultState() {
		t.Fatalf("expected default state, got %+v", st)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := newTestFileStore(t)
	want := widget.State{Text: "buy milk\nand eggs", Open: false, Color: palette.Red, Size: palette.Medium, Mode: true}
	if err := fs.Save(ctx, "a", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := fs.Save(ctx, "b", widget.DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := NewFileStore(fs.Path()).Load(ctx, "a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}

	entries, err := fs.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "b" || entries[1].ID != "a" {
		t.Fatalf("expected newest first, got %+v", entries)
	}
}

func TestFileStore_MissingSlotsTakeDefaults(t *testing.T) {
	t.Parallel()

	fs := newTestFileStore(t)
	if err := os.MkdirAll(filepath.Dir(fs.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	doc := "version: 1\nwidgets:\n  x:\n    text: hello\n    size: 25\n"
	if err := os.WriteFile(fs.Path(), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := fs.Load(context.Background(), "x")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := widget.DefaultState()
	want.Text = "hello"
	want.Size = palette.ExtraSmall
	if st != want {
		t.Fatalf("got %+v want %+v", st, want)
	}
}

func TestFileStore_DecodeError(t *testing.T) {
	t.Parallel()

	fs := newTestFileStore(t)
	if err := os.MkdirAll(filepath.Dir(fs.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.Path(), []byte("widgets: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := fs.Load(context.Background(), "x")
	if !IsDecodeError(err) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if !IsDecodeError(fmt.Errorf("wrap: %w", err)) {
		t.Fatalf("expected wrapped DecodeError to match")
	}
	if !strings.Contains(err.Error(), fs.Path()) {
		t.Fatalf("error should name the file: %v", err)
	}
	if err := fs.Save(context.Background(), "x", widget.DefaultState()); !IsDecodeError(err) {
		t.Fatalf("save must not overwrite a corrupt file, got %v", err)
	}
}

func TestFileStore_RejectsNewerVersion(t *testing.T) {
	t.Parallel()

	fs := newTestFileStore(t)
	if err := os.MkdirAll(filepath.Dir(fs.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fs.Path(), []byte("version: 9\nwidgets: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := fs.List(context.Background()); !IsDecodeError(err) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestFileStore_SaveRequiresID(t *testing.T) {
	t.Parallel()

	if err := newTestFileStore(t).Save(context.Background(), "", widget.DefaultState()); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestFileStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestFileStore(t).Load(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := NewMemoryStore()
	ms.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	if _, err := ms.Load(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	st := widget.DefaultState()
	st.Text = "x"
	if err := ms.Save(ctx, "a", st); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := ms.Save(ctx, "b", widget.DefaultState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := ms.Load(ctx, "a")
	if err != nil || got != st {
		t.Fatalf("load: %+v %v", got, err)
	}
	entries, _ := ms.List(ctx)
	if len(entries) != 2 || entries[0].ID != "b" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ms := NewMemoryStore()
	ms.now = fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	id, st, created, err := Resolve(ctx, ms, "")
	if err != nil || !created || id == "" || st != widget.DefaultState() {
		t.Fatalf("empty store: id=%q created=%v st=%+v err=%v", id, created, st, err)
	}

	saved := widget.DefaultState()
	saved.Color = palette.Blue
	_ = ms.Save(ctx, "old", widget.DefaultState())
	_ = ms.Save(ctx, "new", saved)

	id, st, created, err = Resolve(ctx, ms, "")
	if err != nil || created || id != "new" || st != saved {
		t.Fatalf("latest: id=%q created=%v st=%+v err=%v", id, created, st, err)
	}

	id, _, created, err = Resolve(ctx, ms, "old")
	if err != nil || created || id != "old" {
		t.Fatalf("explicit: id=%q created=%v err=%v", id, created, err)
	}

	id, st, created, err = Resolve(ctx, ms, "fresh")
	if err != nil || !created || id != "fresh" || st != widget.DefaultState() {
		t.Fatalf("explicit new: id=%q created=%v st=%+v err=%v", id, created, st, err)
	}
}
