package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeBucket is a minimal path-style S3 endpoint: /<bucket>/<key>
type fakeBucket struct {
	mu      sync.Mutex
	bucket  string
	objects map[string]string
	puts    int
	deletes int
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	prefix := "/" + b.bucket + "/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		writeS3Error(w, http.StatusNotFound, "NoSuchBucket", "The specified bucket does not exist")
		return
	}
	key := strings.TrimPrefix(r.URL.Path, prefix)

	switch r.Method {
	case http.MethodPut:
		b.puts++
		io.Copy(io.Discard, r.Body)
		if _, exists := b.objects[key]; exists && r.Header.Get("If-None-Match") == "*" {
			writeS3Error(w, http.StatusPreconditionFailed, "PreconditionFailed", "At least one of the pre-conditions you specified did not hold")
			return
		}
		b.objects[key] = ""
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := b.objects[key]
		if !ok {
			writeS3Error(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, body)
	case http.MethodDelete:
		b.deletes++
		delete(b.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeS3Error(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>`+code+`</Code><Message>`+message+`</Message></Error>`)
}

func newTestS3Provider(t *testing.T, publicBaseURL string) (*S3Provider, *fakeBucket, string) {
	t.Helper()

	// Keep the developer's ~/.aws profile out of the test
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")

	bucket := &fakeBucket{bucket: "grader", objects: map[string]string{}}
	srv := httptest.NewServer(bucket)
	t.Cleanup(srv.Close)

	p, err := NewS3Provider(context.Background(), S3Config{
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Region:          "us-east-1",
		Bucket:          "grader",
		Endpoint:        srv.URL,
		PublicBaseURL:   publicBaseURL,
	})
	if err != nil {
		t.Fatalf("NewS3Provider failed: %v", err)
	}
	return p, bucket, srv.URL
}

func TestS3UploadURLUsesEndpoint(t *testing.T) {
	p, bucket, endpoint := newTestS3Provider(t, "")
	ctx := context.Background()

	res, err := p.Upload(ctx, strings.NewReader("%PDF-1.4 body"), "answer.pdf", &UploadOptions{Folder: "pdfs", PublicID: "abc"})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if res.PublicID != "pdfs/abc.pdf" {
		t.Errorf("PublicID = %q", res.PublicID)
	}
	if res.URL != endpoint+"/grader/pdfs/abc.pdf" {
		t.Errorf("URL = %q, expected %q", res.URL, endpoint+"/grader/pdfs/abc.pdf")
	}
	if strings.Contains(res.URL, "amazonaws.com") {
		t.Errorf("URL %q points at AWS although an endpoint is configured", res.URL)
	}
	if res.Size != int64(len("%PDF-1.4 body")) || res.Format != "pdf" {
		t.Errorf("unexpected result: %+v", res)
	}
	if _, ok := bucket.objects["pdfs/abc.pdf"]; !ok {
		t.Errorf("object not stored, bucket has %v", bucket.objects)
	}
}

func TestS3PublicBaseURLOverride(t *testing.T) {
	p, _, _ := newTestS3Provider(t, "https://cdn.example.com/answers/")

	if got := p.GetURL("images/x.png"); got != "https://cdn.example.com/answers/images/x.png" {
		t.Errorf("GetURL = %q", got)
	}
}

func TestS3DefaultAWSURL(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "config"))

	p, err := NewS3Provider(context.Background(), S3Config{
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Region:          "eu-west-1",
		Bucket:          "grader",
	})
	if err != nil {
		t.Fatalf("NewS3Provider failed: %v", err)
	}
	if got := p.GetURL("a.pdf"); got != "https://grader.s3.eu-west-1.amazonaws.com/a.pdf" {
		t.Errorf("GetURL = %q", got)
	}
}

func TestS3UploadNoOverwrite(t *testing.T) {
	p, _, _ := newTestS3Provider(t, "")
	ctx := context.Background()
	opts := &UploadOptions{Folder: "x", PublicID: "same"}

	if _, err := p.Upload(ctx, strings.NewReader("1"), "a.txt", opts); err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	if _, err := p.Upload(ctx, strings.NewReader("2"), "a.txt", opts); err == nil {
		t.Error("second upload should fail without Overwrite")
	}

	opts.Overwrite = true
	if _, err := p.Upload(ctx, strings.NewReader("3"), "a.txt", opts); err != nil {
		t.Errorf("overwrite upload failed: %v", err)
	}
}

func TestS3UploadTooLarge(t *testing.T) {
	p, bucket, _ := newTestS3Provider(t, "")

	_, err := p.Upload(context.Background(), strings.NewReader("0123456789"), "big.png", &UploadOptions{MaxSize: 4})
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Fatalf("expected size error, got %v", err)
	}
	if bucket.puts != 0 {
		t.Errorf("oversize file reached the bucket (%d PUTs)", bucket.puts)
	}
}

func TestS3OpenAndDelete(t *testing.T) {
	p, bucket, _ := newTestS3Provider(t, "")
	ctx := context.Background()
	bucket.objects["images/seed.png"] = "png-bytes"

	rc, err := p.Open(ctx, "images/seed.png")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "png-bytes" {
		t.Errorf("content = %q", data)
	}

	if err := p.Delete(ctx, "images/seed.png"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if bucket.deletes != 1 {
		t.Errorf("deletes = %d", bucket.deletes)
	}

	if _, err := p.Open(ctx, "images/seed.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestS3OpenMissing(t *testing.T) {
	p, _, _ := newTestS3Provider(t, "")

	if _, err := p.Open(context.Background(), "missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestS3RequiresBucket(t *testing.T) {
	if _, err := NewS3Provider(context.Background(), S3Config{Region: "us-east-1"}); err == nil {
		t.Error("expected error without bucket")
	}
}
