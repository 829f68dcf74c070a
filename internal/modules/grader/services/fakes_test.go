package services

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/pdftext"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/similarity"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/answer-grader-be/internal/modules/grader/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const pdfHeader = "%PDF-1.4\n"

type fakeOCRProvider struct {
	text string
	err  error
}

func (p *fakeOCRProvider) ExtractText(ctx context.Context, imageData []byte) (*ocr.OCRResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &ocr.OCRResult{Text: p.text, Confidence: 0.9}, nil
}

func (p *fakeOCRProvider) GetProviderName() string { return "fake" }

// fakeExtractor treats everything after the PDF header as the page text
type fakeExtractor struct {
	calls int
	err   error
}

func (e *fakeExtractor) ExtractFile(ctx context.Context, path string) (string, error) {
	return "", errors.New("not implemented")
}

func (e *fakeExtractor) ExtractBytes(ctx context.Context, data []byte) (string, error) {
	e.calls++
	if e.err != nil {
		return "", e.err
	}
	if !pdftext.IsPDF(data) {
		return "", pdftext.ErrNotPDF
	}
	return strings.TrimSpace(strings.TrimPrefix(string(data), pdfHeader)), nil
}

type fakeConversionRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.Conversion
	createErr error
}

func newFakeConversionRepo() *fakeConversionRepo {
	return &fakeConversionRepo{rows: make(map[string]*models.Conversion)}
}

func (r *fakeConversionRepo) Create(c *models.Conversion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.rows[c.ID.String()] = c
	return nil
}

func (r *fakeConversionRepo) GetByID(id string) (*models.Conversion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

type fakeEvaluationRepo struct {
	mu   sync.Mutex
	rows []*models.Evaluation
}

func (r *fakeEvaluationRepo) Create(e *models.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.rows = append(r.rows, e)
	return nil
}

func (r *fakeEvaluationRepo) GetByID(id string) (*models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if e.ID.String() == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEvaluationRepo) List(limit, offset int) ([]models.Evaluation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]models.Evaluation, 0, len(r.rows))
	for _, e := range r.rows {
		all = append(all, *e)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return []models.Evaluation{}, total, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func newTestStorage(t *testing.T) *upload.Service {
	t.Helper()
	provider, err := upload.NewLocalProvider(t.TempDir(), "http://localhost:8080")
	if err != nil {
		t.Fatalf("NewLocalProvider failed: %v", err)
	}
	return upload.NewService(provider)
}

// failingFolderProvider rejects uploads into one folder
type failingFolderProvider struct {
	upload.Provider
	folder string
}

func (p *failingFolderProvider) Upload(ctx context.Context, file io.Reader, filename string, options *upload.UploadOptions) (*upload.UploadResult, error) {
	if options != nil && options.Folder == p.folder {
		return nil, errors.New("bucket unavailable")
	}
	return p.Provider.Upload(ctx, file, filename, options)
}

// storedFiles lists every regular file under dir
func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("failed to walk %s: %v", dir, err)
	}
	return files
}

func newTestEvaluationService(extractor pdftext.Extractor) (*EvaluationService, *fakeEvaluationRepo) {
	repo := &fakeEvaluationRepo{}
	svc := NewEvaluationService(extractor, similarity.NewScorer(similarity.DefaultOptions()), repo, export.NewService(export.TextPDFOptions{}))
	return svc, repo
}
