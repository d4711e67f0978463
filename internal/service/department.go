package service

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"netbelge/internal/model"
	"netbelge/internal/repository"
	"netbelge/internal/storage"
)

// DepartmentInput carries the writable fields of a department.
type DepartmentInput struct {
	Name        string
	ParentID    *string
	Description string
}

func (in DepartmentInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.ParentID, validation.NilOrNotEmpty),
	)
}

// DepartmentQuery filters a department listing. RootsOnly takes precedence over ParentID.
type DepartmentQuery struct {
	ParentID  *string
	RootsOnly bool
	Search    string
	Limit     int
	Offset    int
}

// DepartmentService manages the department tree.
type DepartmentService interface {
	Create(ctx context.Context, in DepartmentInput) (*model.Department, error)
	// Update renames and/or re-parents a department. Moving a department under
	// itself or a descendant fails with ErrCycle.
	Update(ctx context.Context, id string, in DepartmentInput) (*model.Department, error)
	// Get returns the department with its ancestors linked.
	Get(ctx context.Context, id string) (*model.Department, error)
	// List returns a page of departments, each with its ancestors linked.
	List(ctx context.Context, q DepartmentQuery) (*ListResult[model.Department], error)
	// Tree returns every department as a forest ordered by name.
	Tree(ctx context.Context) ([]*model.DepartmentNode, error)
	// Delete removes the department, everything below it and their stored files.
	Delete(ctx context.Context, id string) error
}

type departmentService struct {
	repo   repository.DepartmentRepository
	files  repository.DocumentFileRepository
	store  storage.Storage
	logger *zap.Logger
}

// NewDepartmentService constructs a new DepartmentService.
func NewDepartmentService(repo repository.DepartmentRepository, files repository.DocumentFileRepository, store storage.Storage, logger *zap.Logger) DepartmentService {
	return &departmentService{repo: repo, files: files, store: store, logger: logger}
}

func (s *departmentService) Create(ctx context.Context, in DepartmentInput) (*model.Department, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	actorID, err := actorFrom(ctx)
	if err != nil {
		return nil, err
	}

	var parent *model.Department
	if in.ParentID != nil {
		if parent, err = s.repo.FindByID(ctx, *in.ParentID); err != nil {
			return nil, translate(err, "parent department")
		}
	}

	d := &model.Department{
		ID:          uuid.NewString(),
		Name:        in.Name,
		ParentID:    in.ParentID,
		Description: in.Description,
	}
	d.RefreshPath()
	d.Stamp(actorID, time.Now().UTC())

	stored, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, translate(err, "department")
	}
	stored.Parent = parent
	return stored, nil
}

func (s *departmentService) Update(ctx context.Context, id string, in DepartmentInput) (*model.Department, error) {
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

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "department")
	}

	if !sameParent(d.ParentID, in.ParentID) {
		parent, err := s.newParent(ctx, id, in.ParentID)
		if err != nil {
			return nil, err
		}
		d.Parent = parent
	}

	d.Name = in.Name
	d.ParentID = in.ParentID
	d.Description = in.Description
	d.RefreshPath()
	d.Stamp(actorID, time.Now().UTC())

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, translate(err, "department")
	}
	return d, nil
}

// newParent loads the requested parent after checking the move keeps the
// tree acyclic. A nil parentID makes the department a root.
func (s *departmentService) newParent(ctx context.Context, id string, parentID *string) (*model.Department, error) {
	if parentID == nil {
		return nil, nil
	}
	if *parentID == id {
		return nil, ErrCycle
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if model.IsDescendant(model.LinkDepartments(all), id, *parentID) {
		return nil, ErrCycle
	}

	parent, err := s.repo.FindByID(ctx, *parentID)
	if err != nil {
		return nil, translate(err, "parent department")
	}
	return parent, nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *departmentService) Get(ctx context.Context, id string) (*model.Department, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "department")
	}
	return d, nil
}

func (s *departmentService) List(ctx context.Context, q DepartmentQuery) (*ListResult[model.Department], error) {
	res, err := s.repo.List(ctx, repository.DepartmentFilter{
		ParentID:  q.ParentID,
		RootsOnly: q.RootsOnly,
		Search:    q.Search,
	}, pageQuery(q.Limit, q.Offset))
	if err != nil {
		return nil, err
	}
	if len(res.Items) == 0 {
		return &ListResult[model.Department]{Items: res.Items, Total: res.Total}, nil
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	index := model.LinkDepartments(all)
	for i := range res.Items {
		if p := res.Items[i].ParentID; p != nil {
			res.Items[i].Parent = index[*p]
		}
	}
	return &ListResult[model.Department]{Items: res.Items, Total: res.Total}, nil
}

func (s *departmentService) Tree(ctx context.Context) ([]*model.DepartmentNode, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return model.BuildDepartmentTree(all), nil
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	ctx, span := tracer.Start(ctx, "DepartmentService.Delete")
	defer span.End()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return translate(err, "department")
	}
	keys, err := s.files.StoragePaths(ctx, repository.FileScope{DepartmentID: id})
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	removeObjects(ctx, s.store, s.logger, keys)
	return nil
}
