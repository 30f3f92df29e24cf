package user

import "social-service/internal/shared/apperr"

type Service interface {
	Resolve(in ResolveRequest) (*User, error)
	CurrentUser(authID string) (*User, error)
	GetByID(id uint) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service {
	return &service{repo: r}
}

func (s *service) Resolve(in ResolveRequest) (*User, error) {
	if in.AuthID == "" || in.Email == "" {
		return nil, apperr.Validationf("missing authId or email")
	}
	u := &User{
		AuthID:    in.AuthID,
		Email:     in.Email,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
	}
	return s.repo.Upsert(u)
}

func (s *service) CurrentUser(authID string) (*User, error) {
	return s.repo.FindByAuthID(authID)
}

func (s *service) GetByID(id uint) (*User, error) {
	return s.repo.FindByID(id)
}
