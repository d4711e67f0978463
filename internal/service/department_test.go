package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"netbelge/internal/auth"
	"netbelge/internal/model"
	"netbelge/internal/repository"
	repoMocks "netbelge/internal/repository/mocks"
	storeMocks "netbelge/internal/storage/mocks"
)

func strPtr(s string) *string { return &s }

func actorCtx() context.Context {
	return auth.WithActor(context.Background(), "actor-1")
}

// departmentChain returns a root "a" with child "b" and grandchild "c".
func departmentChain() []model.Department {
	return []model.Department{
		{ID: "a", Name: "Genel Müdürlük", Path: "genel-mudurluk"},
		{ID: "b", Name: "Yazı İşleri", Path: "yazi-isleri", ParentID: strPtr("a")},
		{ID: "c", Name: "Arşiv", Path: "arsiv", ParentID: strPtr("b")},
	}
}

type departmentDeps struct {
	repo  *repoMocks.MockDepartmentRepository
	files *repoMocks.MockDocumentFileRepository
	store *storeMocks.MockStorage
}

func newDepartmentService(t *testing.T, logger *zap.Logger) (DepartmentService, departmentDeps) {
	t.Helper()
	deps := departmentDeps{
		repo:  new(repoMocks.MockDepartmentRepository),
		files: new(repoMocks.MockDocumentFileRepository),
		store: new(storeMocks.MockStorage),
	}
	t.Cleanup(func() {
		deps.repo.AssertExpectations(t)
		deps.files.AssertExpectations(t)
		deps.store.AssertExpectations(t)
	})
	return NewDepartmentService(deps.repo, deps.files, deps.store, logger), deps
}

func TestDepartmentService_Create(t *testing.T) {
	t.Run("root department gets normalized path", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		var captured *model.Department
		deps.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Department")).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*model.Department) }).
			Return(&model.Department{ID: "new", Name: "Üsküdar İdare", Path: "uskudar-idare"}, nil)

		d, err := svc.Create(actorCtx(), DepartmentInput{Name: "Üsküdar İdare"})

		require.NoError(t, err)
		assert.Equal(t, "uskudar-idare", d.FullPath())
		require.NotNil(t, captured)
		assert.Equal(t, "uskudar-idare", captured.Path)
		assert.Equal(t, "actor-1", captured.CreatedBy)
		assert.False(t, captured.CreatedAt.IsZero())
	})

	t.Run("child department links parent", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		parent := &model.Department{ID: "a", Name: "Genel Müdürlük", Path: "genel-mudurluk"}
		deps.repo.On("FindByID", mock.Anything, "a").Return(parent, nil)
		deps.repo.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Department) bool {
			return d.ParentID != nil && *d.ParentID == "a" && d.Path == "hukuk"
		})).Return(&model.Department{ID: "b", Name: "Hukuk", Path: "hukuk", ParentID: strPtr("a")}, nil)

		d, err := svc.Create(actorCtx(), DepartmentInput{Name: "Hukuk", ParentID: strPtr("a")})

		require.NoError(t, err)
		assert.Equal(t, "genel-mudurluk/hukuk", d.FullPath())
	})

	t.Run("missing parent", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		deps.repo.On("FindByID", mock.Anything, "nope").Return(nil, sql.ErrNoRows)

		_, err := svc.Create(actorCtx(), DepartmentInput{Name: "Hukuk", ParentID: strPtr("nope")})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		deps.repo.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: uq_departments_name_parent", repository.ErrConflict))

		_, err := svc.Create(actorCtx(), DepartmentInput{Name: "Hukuk"})

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newDepartmentService(t, zap.NewNop())

		_, err := svc.Create(actorCtx(), DepartmentInput{Name: ""})

		var verrs validation.Errors
		require.True(t, errors.As(err, &verrs))
		assert.Contains(t, verrs, "Name")
	})

	t.Run("requires actor", func(t *testing.T) {
		svc, _ := newDepartmentService(t, zap.NewNop())

		_, err := svc.Create(context.Background(), DepartmentInput{Name: "Hukuk"})

		assert.ErrorIs(t, err, ErrActorRequired)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	t.Run("moving under a descendant is a cycle", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		deps.repo.On("FindByID", mock.Anything, "a").Return(&departmentChain()[0], nil)
		deps.repo.On("All", mock.Anything).Return(departmentChain(), nil)

		_, err := svc.Update(actorCtx(), "a", DepartmentInput{Name: "Genel Müdürlük", ParentID: strPtr("c")})

		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("moving under itself is a cycle", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		deps.repo.On("FindByID", mock.Anything, "a").Return(&departmentChain()[0], nil)

		_, err := svc.Update(actorCtx(), "a", DepartmentInput{Name: "Genel Müdürlük", ParentID: strPtr("a")})

		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("rename and move to root", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		chain := departmentChain()
		index := model.LinkDepartments(chain)
		deps.repo.On("FindByID", mock.Anything, "c").Return(index["c"], nil)
		deps.repo.On("Update", mock.Anything, mock.MatchedBy(func(d *model.Department) bool {
			return d.ID == "c" && d.ParentID == nil && d.Path == "eski-arsiv" && d.UpdatedBy == "actor-1"
		})).Return(nil)

		d, err := svc.Update(actorCtx(), "c", DepartmentInput{Name: "Eski Arşiv"})

		require.NoError(t, err)
		assert.Equal(t, "eski-arsiv", d.FullPath())
	})

	t.Run("same parent skips cycle check", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		index := model.LinkDepartments(departmentChain())
		deps.repo.On("FindByID", mock.Anything, "c").Return(index["c"], nil)
		deps.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

		d, err := svc.Update(actorCtx(), "c", DepartmentInput{Name: "Arşiv 2", ParentID: strPtr("b")})

		require.NoError(t, err)
		assert.Equal(t, "genel-mudurluk/yazi-isleri/arsiv-2", d.FullPath())
	})

	t.Run("not found", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		deps.repo.On("FindByID", mock.Anything, "x").Return(nil, sql.ErrNoRows)

		_, err := svc.Update(actorCtx(), "x", DepartmentInput{Name: "X"})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("id required", func(t *testing.T) {
		svc, _ := newDepartmentService(t, zap.NewNop())
		_, err := svc.Update(actorCtx(), "", DepartmentInput{Name: "X"})
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestDepartmentService_ListAndTree(t *testing.T) {
	svc, deps := newDepartmentService(t, zap.NewNop())
	chain := departmentChain()

	deps.repo.On("List", mock.Anything, repository.DepartmentFilter{Search: "ar"}, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.Department]{Items: []model.Department{chain[2]}, Total: 1}, nil)
	deps.repo.On("All", mock.Anything).Return(departmentChain(), nil)

	res, err := svc.List(context.Background(), DepartmentQuery{Search: "ar"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "genel-mudurluk/yazi-isleri/arsiv", res.Items[0].FullPath())

	tree, err := svc.Tree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "a", tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "genel-mudurluk/yazi-isleri", tree[0].Children[0].FullPath)
}

func TestDepartmentService_Delete(t *testing.T) {
	t.Run("removes rows then objects", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		svc, deps := newDepartmentService(t, zap.New(core))

		deps.repo.On("FindByID", mock.Anything, "a").Return(&departmentChain()[0], nil)
		deps.files.On("StoragePaths", mock.Anything, repository.FileScope{DepartmentID: "a"}).
			Return([]string{"genel-mudurluk/x.pdf", "genel-mudurluk/y.pdf"}, nil)
		deps.repo.On("Delete", mock.Anything, "a").Return(nil)
		deps.store.On("Delete", mock.Anything, "genel-mudurluk/x.pdf").Return(errors.New("unreachable"))
		deps.store.On("Delete", mock.Anything, "genel-mudurluk/y.pdf").Return(nil)

		err := svc.Delete(context.Background(), "a")

		require.NoError(t, err)
		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "storage_cleanup_failed", entry.Message)
		assert.Equal(t, "genel-mudurluk/x.pdf", entry.ContextMap()["storage_path"])
	})

	t.Run("not found", func(t *testing.T) {
		svc, deps := newDepartmentService(t, zap.NewNop())
		deps.repo.On("FindByID", mock.Anything, "x").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(context.Background(), "x"), ErrNotFound)
	})
}
