package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"netbelge/internal/model"
	"netbelge/internal/repository"
	"netbelge/internal/storage"
)

// FileUpload describes an incoming attachment.
type FileUpload struct {
	DocumentID  string
	Filename    string
	ContentType string
	Size        int64
	Content     string
}

func (in FileUpload) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.DocumentID, validation.Required),
		validation.Field(&in.Filename, validation.Required, validation.Length(1, 255)),
		validation.Field(&in.Size, validation.Min(int64(0))),
	)
}

// DocumentFileService stores and serves the attachments of documents.
type DocumentFileService interface {
	// Upload records the file under the document's upload path and then
	// stores r there. The row is removed again if the object write fails.
	Upload(ctx context.Context, r io.Reader, in FileUpload) (*model.DocumentFile, error)
	List(ctx context.Context, documentID string) ([]model.DocumentFile, error)
	Get(ctx context.Context, id string) (*model.DocumentFile, error)
	// DownloadURL returns a presigned GET URL for the stored object.
	DownloadURL(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}

type documentFileService struct {
	repo          repository.DocumentFileRepository
	documents     repository.DocumentRepository
	types         repository.DocumentTypeRepository
	departments   repository.DepartmentRepository
	store         storage.Storage
	presignExpiry time.Duration
}

// NewDocumentFileService constructs a new DocumentFileService.
func NewDocumentFileService(
	repo repository.DocumentFileRepository,
	documents repository.DocumentRepository,
	types repository.DocumentTypeRepository,
	departments repository.DepartmentRepository,
	store storage.Storage,
	presignExpiry time.Duration,
) DocumentFileService {
	return &documentFileService{
		repo:          repo,
		documents:     documents,
		types:         types,
		departments:   departments,
		store:         store,
		presignExpiry: presignExpiry,
	}
}

// baseName strips any client-side directories from an uploaded file name.
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// withSuffix inserts a short random suffix before the extension.
func withSuffix(filename string) string {
	ext := path.Ext(filename)
	return strings.TrimSuffix(filename, ext) + "_" + uuid.NewString()[:7] + ext
}

func (s *documentFileService) Upload(ctx context.Context, r io.Reader, in FileUpload) (*model.DocumentFile, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	in.Filename = baseName(in.Filename)
	if err := in.validate(); err != nil {
		return nil, err
	}
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "DocumentFileService.Upload")
	defer span.End()

	stored, err := s.reserve(ctx, in, actorID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("storage.key", stored.StoragePath))

	_, err = s.store.Put(ctx, stored.StoragePath, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.Filename,
		},
	})
	if err != nil {
		if delErr := s.repo.Delete(ctx, stored.ID); delErr != nil {
			return nil, fmt.Errorf("upload to storage: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	return stored, nil
}

// reserve inserts the metadata row before any bytes are written. The unique
// storage_path column decides which upload owns a key, so an object is only
// ever written by the upload whose row holds it. A key claimed between the
// lookup and the insert is retried once with a suffixed file name.
func (s *documentFileService) reserve(ctx context.Context, in FileUpload, actorID string) (*model.DocumentFile, error) {
	doc, docType, err := s.uploadTarget(ctx, in.DocumentID)
	if err != nil {
		return nil, err
	}

	name := in.Filename
	taken, err := s.repo.StoragePathExists(ctx, doc.UploadPath(docType, name))
	if err != nil {
		return nil, err
	}
	if taken {
		name = withSuffix(in.Filename)
	}

	for attempt := 0; ; attempt++ {
		key := doc.UploadPath(docType, name)
		f := &model.DocumentFile{
			ID:          uuid.NewString(),
			DocumentID:  in.DocumentID,
			Filename:    path.Base(key),
			StoragePath: key,
			Size:        in.Size,
			ContentType: in.ContentType,
			Content:     in.Content,
		}
		f.Stamp(actorID, time.Now().UTC())

		stored, err := s.repo.Create(ctx, f)
		if errors.Is(err, repository.ErrConflict) && attempt == 0 {
			name = withSuffix(in.Filename)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("db save failed: %w", translate(err, "document file"))
		}
		return stored, nil
	}
}

// uploadTarget loads the document with its type and the type's department
// chain, which together determine the upload path.
func (s *documentFileService) uploadTarget(ctx context.Context, documentID string) (*model.Document, *model.DocumentType, error) {
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		return nil, nil, translate(err, "document")
	}
	docType, err := s.types.FindByID(ctx, doc.DocumentTypeID)
	if err != nil {
		return nil, nil, translate(err, "document type")
	}
	if docType.Department, err = s.departments.FindByID(ctx, docType.DepartmentID); err != nil {
		return nil, nil, translate(err, "department")
	}
	return doc, docType, nil
}

func (s *documentFileService) List(ctx context.Context, documentID string) ([]model.DocumentFile, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if _, err := s.documents.FindByID(ctx, documentID); err != nil {
		return nil, translate(err, "document")
	}
	return s.repo.ListByDocument(ctx, documentID)
}

func (s *documentFileService) Get(ctx context.Context, id string) (*model.DocumentFile, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "document file")
	}
	return f, nil
}

func (s *documentFileService) DownloadURL(ctx context.Context, id string) (string, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.PresignGet(ctx, f.StoragePath, s.presignExpiry)
}

// Delete removes the object, then the row.
func (s *documentFileService) Delete(ctx context.Context, id string) error {
	f, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, f.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
