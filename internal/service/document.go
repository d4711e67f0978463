package service

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"netbelge/internal/model"
	"netbelge/internal/repository"
	"netbelge/internal/storage"
	"netbelge/internal/storagepath"
)

// DocumentInput carries the writable fields of a document. Time is optional
// and accepts HH:MM or HH:MM:SS.
type DocumentInput struct {
	DepartmentID   string
	DocumentTypeID string
	Title          string
	Date           time.Time
	Time           *string
	DocumentNo     string
	Description    string
}

func (in DocumentInput) validate() error {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.DepartmentID, validation.Required),
		validation.Field(&in.DocumentTypeID, validation.Required),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Date, validation.Required),
		validation.Field(&in.DocumentNo, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return err
	}
	if _, err := storagepath.ValidateLiteral(in.DocumentNo); err != nil {
		return fmt.Errorf("document_no: %w", err)
	}
	return nil
}

// parseClock normalizes an optional time of day to model.TimeLayout.
func parseClock(v *string) (*string, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	for _, layout := range []string{model.TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, *v); err == nil {
			out := t.Format(model.TimeLayout)
			return &out, nil
		}
	}
	return nil, ErrInvalidTime
}

// DocumentQuery filters a document listing. Zero values are ignored.
type DocumentQuery struct {
	DepartmentID   string
	DocumentTypeID string
	Search         string
	DateFrom       *time.Time
	DateTo         *time.Time
	Limit          int
	Offset         int
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	Create(ctx context.Context, in DocumentInput) (*model.Document, error)
	Update(ctx context.Context, id string, in DocumentInput) (*model.Document, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, q DocumentQuery) (*ListResult[model.Document], error)

	// Delete removes the stored files of the document, then the document itself.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	repo        repository.DocumentRepository
	types       repository.DocumentTypeRepository
	departments repository.DepartmentRepository
	files       repository.DocumentFileRepository
	store       storage.Storage
	logger      *zap.Logger
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(
	repo repository.DocumentRepository,
	types repository.DocumentTypeRepository,
	departments repository.DepartmentRepository,
	files repository.DocumentFileRepository,
	store storage.Storage,
	logger *zap.Logger,
) DocumentService {
	return &documentService{
		repo:        repo,
		types:       types,
		departments: departments,
		files:       files,
		store:       store,
		logger:      logger,
	}
}

// prepare validates in and checks that the referenced rows exist.
func (s *documentService) prepare(ctx context.Context, in DocumentInput) (*string, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	clock, err := parseClock(in.Time)
	if err != nil {
		return nil, err
	}
	if _, err := s.departments.FindByID(ctx, in.DepartmentID); err != nil {
		return nil, translate(err, "department")
	}
	if _, err := s.types.FindByID(ctx, in.DocumentTypeID); err != nil {
		return nil, translate(err, "document type")
	}
	return clock, nil
}

func (s *documentService) Create(ctx context.Context, in DocumentInput) (*model.Document, error) {
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	clock, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		ID:             uuid.NewString(),
		DepartmentID:   in.DepartmentID,
		DocumentTypeID: in.DocumentTypeID,
		Title:          in.Title,
		Date:           in.Date,
		Time:           clock,
		DocumentNo:     in.DocumentNo,
		Description:    in.Description,
	}
	doc.Stamp(actorID, time.Now().UTC())

	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		return nil, translate(err, "document")
	}
	return stored, nil
}

func (s *documentService) Update(ctx context.Context, id string, in DocumentInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "document")
	}
	clock, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	doc.DepartmentID = in.DepartmentID
	doc.DocumentTypeID = in.DocumentTypeID
	doc.Title = in.Title
	doc.Date = in.Date
	doc.Time = clock
	doc.DocumentNo = in.DocumentNo
	doc.Description = in.Description
	doc.Stamp(actorID, time.Now().UTC())

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, translate(err, "document")
	}
	return doc, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "document")
	}
	return doc, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, q DocumentQuery) (*ListResult[model.Document], error) {
	res, err := s.repo.List(ctx, repository.DocumentFilter{
		DepartmentID:   q.DepartmentID,
		DocumentTypeID: q.DocumentTypeID,
		Search:         q.Search,
		DateFrom:       q.DateFrom,
		DateTo:         q.DateTo,
	}, pageQuery(q.Limit, q.Offset))
	if err != nil {
		return nil, err
	}
	return &ListResult[model.Document]{Items: res.Items, Total: res.Total}, nil
}

// Delete removes stored files first; if that fails the rows are kept so no
// object loses its reference.
func (s *documentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	ctx, span := tracer.Start(ctx, "DocumentService.Delete")
	defer span.End()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translate(err, "document")
	}
	keys, err := s.files.StoragePaths(ctx, repository.FileScope{DocumentID: id})
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}
	return s.repo.Delete(ctx, id)
}
