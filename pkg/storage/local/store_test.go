package local

import (
	"context"
	"io"
	"strings"
	"testing"

	pkgerrors "github.com/electrostorehq/backend/pkg/errors"
)

func TestSaveAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	name, err := store.Save(ctx, "images/products", "photo.PNG", strings.NewReader("fake-png-bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("expected lowered extension, got %q", name)
	}

	rc, err := store.Open(ctx, "images/products", name)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "fake-png-bytes" {
		t.Fatalf("unexpected contents %q", data)
	}
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Save(context.Background(), "images/products", "malware.exe", strings.NewReader("x"))
	if err == nil {
		t.Fatalf("expected extension rejection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.Open(context.Background(), "images/products", "nope.png")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	name, err := store.Save(ctx, "images/users", "avatar.jpg", strings.NewReader("jpg"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Remove(ctx, "images/users", name); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := store.Remove(ctx, "images/users", name); err != nil {
		t.Fatalf("second remove should be a no-op: %v", err)
	}
}
