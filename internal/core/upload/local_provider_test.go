package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestProvider(t *testing.T) *LocalProvider {
	t.Helper()
	p, err := NewLocalProvider(t.TempDir(), "http://localhost:8080/")
	if err != nil {
		t.Fatalf("NewLocalProvider failed: %v", err)
	}
	return p
}

func TestLocalUploadAndOpen(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	res, err := p.Upload(ctx, strings.NewReader("%PDF-1.4 body"), "answer.pdf", &UploadOptions{Folder: "pdfs", PublicID: "abc"})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if res.PublicID != "pdfs/abc.pdf" {
		t.Errorf("PublicID = %q", res.PublicID)
	}
	if res.URL != "http://localhost:8080/files/pdfs/abc.pdf" {
		t.Errorf("URL = %q", res.URL)
	}
	if res.Size != int64(len("%PDF-1.4 body")) || res.Format != "pdf" {
		t.Errorf("unexpected result: %+v", res)
	}

	rc, err := p.Open(ctx, res.PublicID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.4 body" {
		t.Errorf("content = %q", data)
	}
}

func TestLocalUploadNoOverwrite(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	opts := &UploadOptions{Folder: "x", PublicID: "same"}

	if _, err := p.Upload(ctx, strings.NewReader("1"), "a.txt", opts); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if _, err := p.Upload(ctx, strings.NewReader("2"), "a.txt", opts); err == nil {
		t.Fatal("expected error on duplicate upload")
	}

	opts.Overwrite = true
	if _, err := p.Upload(ctx, strings.NewReader("3"), "a.txt", opts); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}

func TestLocalUploadMaxSize(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.Upload(context.Background(), strings.NewReader("0123456789"), "big.png", &UploadOptions{MaxSize: 4})
	if err == nil {
		t.Fatal("expected size error")
	}

	entries, _ := os.ReadDir(filepath.Join(p.BasePath(), "uploads"))
	if len(entries) != 0 {
		t.Errorf("oversize file left behind: %v", entries)
	}
}

func TestLocalDeleteAndTraversal(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	res, err := p.Upload(ctx, strings.NewReader("x"), "a.png", nil)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if err := p.Delete(ctx, res.PublicID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := p.Delete(ctx, res.PublicID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := p.Open(ctx, "../../etc/passwd"); err == nil {
		t.Error("path traversal should be rejected")
	}
}

func TestPurgeOlderThan(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	oldRes, _ := p.Upload(ctx, strings.NewReader("old"), "old.pdf", nil)
	newRes, _ := p.Upload(ctx, strings.NewReader("new"), "new.pdf", nil)

	past := time.Now().Add(-48 * time.Hour)
	oldPath := filepath.Join(p.BasePath(), filepath.FromSlash(oldRes.PublicID))
	if err := os.Chtimes(oldPath, past, past); err != nil {
		t.Fatalf("Chtimes failed: %v", err)
	}

	removed, err := p.PurgeOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeOlderThan failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := p.Open(ctx, newRes.PublicID); err != nil {
		t.Errorf("recent file should survive: %v", err)
	}
}

func TestDetectContentType(t *testing.T) {
	if DetectContentType(".PDF") != "application/pdf" {
		t.Error("pdf not detected")
	}
	if DetectContentType(".bin") != "application/octet-stream" {
		t.Error("unknown extension should be octet-stream")
	}
}
