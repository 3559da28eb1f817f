// Package mocks provides mock implementations for testing campushub services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository interfaces in internal/ports. To regenerate mocks after
// interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	userRepo := mocks.NewMockUserRepository(ctrl)
//	userRepo.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(user, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/campushub/campushub/internal/ports UserRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_repository_mock.go github.com/campushub/campushub/internal/ports SessionRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_cache_mock.go github.com/campushub/campushub/internal/ports SessionCache

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=course_module_repository_mock.go github.com/campushub/campushub/internal/ports CourseModuleRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=blog_post_repository_mock.go github.com/campushub/campushub/internal/ports BlogPostRepository
