package usecase

import (
	"context"

	"parkspot/internal/domain/auth"
	"parkspot/internal/domain/user"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/errs"
)

//go:generate mockgen -source=user.go -destination=../../tests/mock/usecase/user_mock.go -package=usecasemock

type UserUseCase interface {
	// ResolveToken maps an opaque bearer credential to its active user.
	ResolveToken(ctx context.Context, token string) (*user.User, error)
	// ListUsers returns every active user. Admin-only.
	ListUsers(ctx context.Context, scope auth.Scope) ([]*user.User, error)
}

type userUseCaseImpl struct {
	users UserRepository
}

func NewUserUseCase(users UserRepository) UserUseCase {
	return &userUseCaseImpl{users: users}
}

func (u *userUseCaseImpl) ResolveToken(ctx context.Context, token string) (*user.User, error) {
	if token == "" {
		return nil, errs.ErrInvalidToken
	}

	resolved, err := u.users.FindByToken(ctx, token)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidToken
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return resolved, nil
}

func (u *userUseCaseImpl) ListUsers(ctx context.Context, scope auth.Scope) ([]*user.User, error) {
	if !scope.IsAdmin() {
		return nil, errs.ErrPermissionDenied
	}

	users, err := u.users.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return users, nil
}
