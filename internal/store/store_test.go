package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dshills/inkwell/internal/snapshot"
)

func testSnapshot(text string) snapshot.Snapshot {
	return snapshot.Snapshot{
		Version: snapshot.Version,
		Blocks: []snapshot.BlockRecord{
			{Key: "a", Type: "header-one", Text: "Title", Styles: []snapshot.StyleRecord{}},
			{Key: "b", Type: "normal", Text: text, Styles: []snapshot.StyleRecord{{Start: 0, End: 1, Tag: "BOLD"}}},
		},
	}
}

func TestStores(t *testing.T) {
	dir := t.TempDir()
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"diskv":  NewDiskvStore(filepath.Join(dir, "kv"), "notes"),
		"file":   NewFileStore(filepath.Join(dir, "doc", "notes.json")),
	}

	for name, st := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, err := st.Load(ctx); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound before save, got %v", err)
			}

			want := testSnapshot("hello")
			if err := st.Save(ctx, want); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := st.Load(ctx)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("expected %+v, got %+v", want, got)
			}

			next := testSnapshot("changed")
			if err := st.Save(ctx, next); err != nil {
				t.Fatalf("second Save failed: %v", err)
			}
			got, _ = st.Load(ctx)
			if got.Blocks[1].Text != "changed" {
				t.Errorf("expected overwritten text, got %q", got.Blocks[1].Text)
			}
		})
	}
}

func TestStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := NewMemoryStore()
	if err := st.Save(ctx, testSnapshot("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if _, err := st.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := os.WriteFile(path, []byte(`{"blocks":`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).Load(context.Background())
	if !errors.Is(err, snapshot.ErrMalformedSnapshot) {
		t.Errorf("expected ErrMalformedSnapshot, got %v", err)
	}
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewFileStore(filepath.Join(dir, "doc.json"))
	if err := st.Save(context.Background(), testSnapshot("x")); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "doc.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only doc.json, got %v", names)
	}
}

func TestDiskvStoreNamedDocuments(t *testing.T) {
	ctx := context.Background()
	base := NewDiskvStore(t.TempDir(), "")
	if base.Name() != DefaultDocument {
		t.Errorf("expected default name, got %q", base.Name())
	}

	other := base.WithName("other")
	if err := base.Save(ctx, testSnapshot("one")); err != nil {
		t.Fatal(err)
	}
	if err := other.Save(ctx, testSnapshot("two")); err != nil {
		t.Fatal(err)
	}

	names := base.List(ctx)
	if !reflect.DeepEqual(names, []string{"default", "other"}) {
		t.Errorf("unexpected names %v", names)
	}

	if err := other.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := other.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := other.Delete(); err != nil {
		t.Errorf("deleting a missing document should succeed, got %v", err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		kind Kind
		path string
		want any
		err  error
	}{
		{KindMemory, "", &MemoryStore{}, nil},
		{"", "", &MemoryStore{}, nil},
		{KindFile, filepath.Join(dir, "a.json"), &FileStore{}, nil},
		{KindDiskv, dir, &DiskvStore{}, nil},
		{KindFile, "", nil, ErrNoPath},
		{KindDiskv, "", nil, ErrNoPath},
		{"bolt", dir, nil, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			st, err := Open(tt.kind, tt.path, "")
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if reflect.TypeOf(st) != reflect.TypeOf(tt.want) {
				t.Errorf("expected %T, got %T", tt.want, st)
			}
		})
	}
}

func TestFileStoreWatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st := NewFileStore(filepath.Join(t.TempDir(), "doc.json"))
	events, err := st.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := st.Save(context.Background(), testSnapshot("x")); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatal("events closed before change was seen")
			}
			if ev.Type == EventChanged && ev.Path == st.Path() {
				cancel()
				for range events {
				}
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventChanged.String() != "changed" || EventRemoved.String() != "removed" || EventError.String() != "error" {
		t.Error("unexpected event type names")
	}
	if EventType(42).String() != "unknown" {
		t.Error("expected unknown for out of range type")
	}
}
