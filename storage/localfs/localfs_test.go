package localfs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rowseal/rowseal/cidutil"
	"github.com/rowseal/rowseal/storage"
)

func TestStore_PutGetHas(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := []byte(`{"index":0,"row":["addr1","100"],"proof":[]}`)

	id, err := st.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("expected defined CID")
	}
	if !st.Has(id) {
		t.Fatalf("Has: expected true")
	}
	got, err := st.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch")
	}

	// Idempotent re-put.
	again, err := st.Put(payload)
	if err != nil {
		t.Fatalf("re-Put: %v", err)
	}
	if !again.Equals(id) {
		t.Fatalf("re-Put returned a different CID")
	}
}

func TestStore_GetMissing(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	id, err := cidutil.ArtifactCIDRaw([]byte("never stored"))
	if err != nil {
		t.Fatalf("ArtifactCIDRaw: %v", err)
	}
	if _, err := st.Get(id); !storage.IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if st.Has(id) {
		t.Fatalf("Has: expected false")
	}
}

func TestStore_CorruptedArtifactFailsClosed(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	payload := []byte("artifact bytes")
	id, err := st.Put(payload)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Flip a byte on disk behind the store's back.
	path := filepath.Join(dir, id.String()[:2], id.String())
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	if err := os.WriteFile(path, []byte("artifact bytez"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := st.Get(id); err != storage.ErrCIDMismatch {
		t.Fatalf("want ErrCIDMismatch, got %v", err)
	}
}
