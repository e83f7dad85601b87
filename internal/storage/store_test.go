package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/fundbridge/dealroom/internal/config"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := New(config.StorageConfig{Dir: t.TempDir(), BaseURL: "/files/"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	content := "pitch deck contents"
	key, url, size, err := store.Save("deck.pdf", strings.NewReader(content))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Errorf("key lost extension: %s", key)
	}
	if url != "/files/"+key {
		t.Errorf("url = %s, want /files/%s", url, key)
	}

	r, err := store.Open(key)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != content {
		t.Errorf("read %q, want %q", data, content)
	}
}

func TestSaveKeysUnique(t *testing.T) {
	store, err := New(config.StorageConfig{Dir: t.TempDir(), BaseURL: "/files"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	key1, _, _, err := store.Save("deck.pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	key2, _, _, err := store.Save("deck.pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if key1 == key2 {
		t.Errorf("same filename produced same key: %s", key1)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := New(config.StorageConfig{Dir: t.TempDir(), BaseURL: "/files"})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, err := store.Open("../etc/passwd"); err == nil {
		t.Error("traversal key accepted")
	}
	if _, err := store.Open("a/b"); err == nil {
		t.Error("nested key accepted")
	}
}
