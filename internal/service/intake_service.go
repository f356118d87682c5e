package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"mentorsurvey/internal/metrics"
	"mentorsurvey/internal/model"
	"mentorsurvey/internal/repository"
	"mentorsurvey/internal/storage"
)

var ErrUploadsDisabled = errors.New("document uploads are not configured")

const (
	DefaultLatestLimit = 1
	MaxLatestLimit     = 100
)

// DocumentSource serves previously uploaded intake documents.
type DocumentSource interface {
	Open(ctx context.Context, id string) (*storage.Document, error)
}

// IntakeService stores client project proposals.
type IntakeService struct {
	repo      repository.IntakeRepo
	uploader  storage.Uploader
	documents DocumentSource
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type IntakeOption func(*IntakeService)

func WithUploader(u storage.Uploader) IntakeOption {
	return func(s *IntakeService) {
		s.uploader = u
	}
}

func WithDocumentSource(d DocumentSource) IntakeOption {
	return func(s *IntakeService) {
		s.documents = d
	}
}

func WithIntakeMetrics(m *metrics.Metrics) IntakeOption {
	return func(s *IntakeService) {
		s.metrics = m
	}
}

func WithIntakeLogger(logger *slog.Logger) IntakeOption {
	return func(s *IntakeService) {
		s.logger = logger
	}
}

func NewIntakeService(repo repository.IntakeRepo, opts ...IntakeOption) *IntakeService {
	s := &IntakeService{
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and stores form, returning its id.
func (s *IntakeService) Submit(ctx context.Context, form *model.IntakeForm) (string, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return "", err
	}
	return s.insert(ctx, form)
}

// SubmitWithDocuments validates form, uploads files and stores the form with
// the uploaded URLs as its supplementary documents.
func (s *IntakeService) SubmitWithDocuments(ctx context.Context, form *model.IntakeForm, files []storage.File) (string, []string, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return "", nil, err
	}

	urls := []string{}
	if len(files) > 0 {
		if s.uploader == nil {
			return "", nil, ErrUploadsDisabled
		}
		uploaded, err := s.uploader.Upload(ctx, files)
		if err != nil {
			return "", nil, fmt.Errorf("upload documents: %w", err)
		}
		urls = uploaded
		form.SupplementaryDocuments = uploaded
	}

	id, err := s.insert(ctx, form)
	if err != nil {
		return "", nil, err
	}
	return id, urls, nil
}

func (s *IntakeService) insert(ctx context.Context, form *model.IntakeForm) (string, error) {
	id, err := s.repo.Insert(ctx, form)
	if err != nil {
		return "", fmt.Errorf("save intake form: %w", err)
	}
	s.metrics.IncrementIntakes()
	s.logger.Info("intake form received",
		"intake_id", id,
		"company", form.CompanyName,
		"documents", len(form.SupplementaryDocuments))
	return id, nil
}

// Latest returns the newest forms. limit is clamped to [1, MaxLatestLimit].
func (s *IntakeService) Latest(ctx context.Context, limit int) ([]*model.IntakeForm, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	if limit > MaxLatestLimit {
		limit = MaxLatestLimit
	}
	return s.repo.Latest(ctx, limit)
}

// OpenDocument streams an uploaded document.
func (s *IntakeService) OpenDocument(ctx context.Context, id string) (*storage.Document, error) {
	if s.documents == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrDocumentNotFound, id)
	}
	return s.documents.Open(ctx, id)
}
