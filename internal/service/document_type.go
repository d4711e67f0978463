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

// DocumentTypeInput carries the writable fields of a document type. Path is a
// template and may contain placeholders.
type DocumentTypeInput struct {
	DepartmentID string
	Name         string
	Path         string
	Description  string
}

func (in DocumentTypeInput) validate() error {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.DepartmentID, validation.Required),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&in.Path, validation.Required),
	); err != nil {
		return err
	}
	if _, err := storagepath.ValidateTemplate(in.Path); err != nil {
		return fmt.Errorf("path: %w", err)
	}
	return nil
}

// SectionInput carries the writable fields of a document section.
type SectionInput struct {
	Name        string
	Description string
}

func (in SectionInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
	)
}

// DocumentTypeQuery filters a document type listing.
type DocumentTypeQuery struct {
	DepartmentID string
	Search       string
	Limit        int
	Offset       int
}

// DocumentTypeService manages document types and their sections. Returned
// types have their Department chain loaded so FullPath is complete.
type DocumentTypeService interface {
	Create(ctx context.Context, in DocumentTypeInput) (*model.DocumentType, error)
	Update(ctx context.Context, id string, in DocumentTypeInput) (*model.DocumentType, error)
	Get(ctx context.Context, id string) (*model.DocumentType, error)
	List(ctx context.Context, q DocumentTypeQuery) (*ListResult[model.DocumentType], error)
	// Delete removes the type, its documents and their stored files.
	Delete(ctx context.Context, id string) error

	AddSection(ctx context.Context, documentTypeID string, in SectionInput) (*model.DocumentSection, error)
	UpdateSection(ctx context.Context, id string, in SectionInput) (*model.DocumentSection, error)
	DeleteSection(ctx context.Context, id string) error
	ListSections(ctx context.Context, documentTypeID string) ([]model.DocumentSection, error)
}

type documentTypeService struct {
	repo        repository.DocumentTypeRepository
	sections    repository.DocumentSectionRepository
	departments repository.DepartmentRepository
	files       repository.DocumentFileRepository
	store       storage.Storage
	logger      *zap.Logger
}

// NewDocumentTypeService constructs a new DocumentTypeService.
func NewDocumentTypeService(
	repo repository.DocumentTypeRepository,
	sections repository.DocumentSectionRepository,
	departments repository.DepartmentRepository,
	files repository.DocumentFileRepository,
	store storage.Storage,
	logger *zap.Logger,
) DocumentTypeService {
	return &documentTypeService{
		repo:        repo,
		sections:    sections,
		departments: departments,
		files:       files,
		store:       store,
		logger:      logger,
	}
}

func (s *documentTypeService) Create(ctx context.Context, in DocumentTypeInput) (*model.DocumentType, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	dept, err := s.departments.FindByID(ctx, in.DepartmentID)
	if err != nil {
		return nil, translate(err, "department")
	}

	t := &model.DocumentType{
		ID:           uuid.NewString(),
		DepartmentID: in.DepartmentID,
		Name:         in.Name,
		Path:         in.Path,
		Description:  in.Description,
	}
	t.Stamp(actorID, time.Now().UTC())

	stored, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, translate(err, "document type")
	}
	stored.Department = dept
	return stored, nil
}

func (s *documentTypeService) Update(ctx context.Context, id string, in DocumentTypeInput) (*model.DocumentType, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "document type")
	}
	dept, err := s.departments.FindByID(ctx, in.DepartmentID)
	if err != nil {
		return nil, translate(err, "department")
	}

	t.DepartmentID = in.DepartmentID
	t.Name = in.Name
	t.Path = in.Path
	t.Description = in.Description
	t.Stamp(actorID, time.Now().UTC())

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, translate(err, "document type")
	}
	t.Department = dept
	return t, nil
}

func (s *documentTypeService) Get(ctx context.Context, id string) (*model.DocumentType, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return s.load(ctx, id)
}

// load returns the document type with its department chain.
func (s *documentTypeService) load(ctx context.Context, id string) (*model.DocumentType, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "document type")
	}
	if t.Department, err = s.departments.FindByID(ctx, t.DepartmentID); err != nil {
		return nil, translate(err, "department")
	}
	return t, nil
}

func (s *documentTypeService) List(ctx context.Context, q DocumentTypeQuery) (*ListResult[model.DocumentType], error) {
	res, err := s.repo.List(ctx, repository.DocumentTypeFilter{
		DepartmentID: q.DepartmentID,
		Search:       q.Search,
	}, pageQuery(q.Limit, q.Offset))
	if err != nil {
		return nil, err
	}
	if len(res.Items) > 0 {
		all, err := s.departments.All(ctx)
		if err != nil {
			return nil, err
		}
		index := model.LinkDepartments(all)
		for i := range res.Items {
			res.Items[i].Department = index[res.Items[i].DepartmentID]
		}
	}
	return &ListResult[model.DocumentType]{Items: res.Items, Total: res.Total}, nil
}

func (s *documentTypeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	ctx, span := tracer.Start(ctx, "DocumentTypeService.Delete")
	defer span.End()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translate(err, "document type")
	}
	keys, err := s.files.StoragePaths(ctx, repository.FileScope{DocumentTypeID: id})
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	removeObjects(ctx, s.store, s.logger, keys)
	return nil
}

func (s *documentTypeService) AddSection(ctx context.Context, documentTypeID string, in SectionInput) (*model.DocumentSection, error) {
	if documentTypeID == "" {
		return nil, ErrIDRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, documentTypeID); err != nil {
		return nil, translate(err, "document type")
	}

	sec := &model.DocumentSection{
		ID:             uuid.NewString(),
		DocumentTypeID: documentTypeID,
		Name:           in.Name,
		Description:    in.Description,
	}
	sec.Stamp(actorID, time.Now().UTC())

	stored, err := s.sections.Create(ctx, sec)
	if err != nil {
		return nil, translate(err, "document section")
	}
	return stored, nil
}

func (s *documentTypeService) UpdateSection(ctx context.Context, id string, in SectionInput) (*model.DocumentSection, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	sec, err := s.sections.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "document section")
	}
	sec.Name = in.Name
	sec.Description = in.Description
	sec.Stamp(actorID, time.Now().UTC())

	if err := s.sections.Update(ctx, sec); err != nil {
		return nil, translate(err, "document section")
	}
	return sec, nil
}

func (s *documentTypeService) DeleteSection(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.sections.FindByID(ctx, id); err != nil {
		return translate(err, "document section")
	}
	return s.sections.Delete(ctx, id)
}

func (s *documentTypeService) ListSections(ctx context.Context, documentTypeID string) ([]model.DocumentSection, error) {
	if documentTypeID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.repo.FindByID(ctx, documentTypeID); err != nil {
		return nil, translate(err, "document type")
	}
	return s.sections.ListByDocumentType(ctx, documentTypeID)
}
