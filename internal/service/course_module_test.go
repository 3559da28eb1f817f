package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/campushub/campushub/internal/domain/model"
	apperrors "github.com/campushub/campushub/internal/errors"
	"github.com/campushub/campushub/internal/mocks"
)

func newCourseModuleService(t *testing.T) (*CourseModuleService, *mocks.MockCourseModuleRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockCourseModuleRepository(ctrl)
	svc, err := NewCourseModuleService(CourseModuleServiceOptions{Modules: repo})
	require.NoError(t, err)
	return svc, repo
}

func TestCourseModuleService_Create(t *testing.T) {
	t.Parallel()
	svc, repo := newCourseModuleService(t)
	ctx := context.Background()

	req := &model.CreateCourseModuleRequest{
		Code:     "CS101",
		Title:    "Introduction to Programming",
		Lecturer: "Dr. Grace Hopper",
	}
	want := &model.CourseModule{ID: "m-1", Code: "CS101", Title: "Introduction to Programming"}

	repo.EXPECT().Create(ctx, req).Return(want, nil).Times(1)

	module, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, want, module)
}

func TestCourseModuleService_Create_InvalidRequest(t *testing.T) {
	t.Parallel()
	svc, _ := newCourseModuleService(t)

	_, err := svc.Create(context.Background(), &model.CreateCourseModuleRequest{Title: "no code"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCourseModuleService_Create_DuplicateCode(t *testing.T) {
	t.Parallel()
	svc, repo := newCourseModuleService(t)
	ctx := context.Background()

	req := &model.CreateCourseModuleRequest{Code: "CS101", Title: "Duplicate"}
	repo.EXPECT().Create(ctx, req).Return(nil, apperrors.ConflictField("code", "Module code already exists")).Times(1)

	_, err := svc.Create(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestCourseModuleService_Update(t *testing.T) {
	t.Parallel()
	svc, repo := newCourseModuleService(t)
	ctx := context.Background()

	title := "Advanced Programming"
	req := model.UpdateCourseModuleRequest{Title: &title}
	want := &model.CourseModule{ID: "m-1", Title: title}

	repo.EXPECT().Update(ctx, "m-1", req).Return(want, nil).Times(1)

	module, err := svc.Update(ctx, "m-1", req)
	require.NoError(t, err)
	assert.Equal(t, title, module.Title)
}

func TestCourseModuleService_Update_BlankTitleRejected(t *testing.T) {
	t.Parallel()
	svc, _ := newCourseModuleService(t)

	blank := "  "
	_, err := svc.Update(context.Background(), "m-1", model.UpdateCourseModuleRequest{Title: &blank})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCourseModuleService_GetListDelete(t *testing.T) {
	t.Parallel()
	svc, repo := newCourseModuleService(t)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, "m-1").Return(&model.CourseModule{ID: "m-1"}, nil).Times(1)
	repo.EXPECT().List(ctx, 10, 20).Return([]*model.CourseModule{{ID: "m-1"}}, nil).Times(1)
	repo.EXPECT().Delete(ctx, "m-1").Return(true, nil).Times(1)

	module, err := svc.GetByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", module.ID)

	list, err := svc.List(ctx, 10, 20)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	ok, err := svc.Delete(ctx, "m-1")
	require.NoError(t, err)
	assert.True(t, ok)
}
