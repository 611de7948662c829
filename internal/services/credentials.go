package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/models"
	"github.com/dmitrijs2005/pocketkeeper/internal/store"
)

// CredentialService stores account logins. Passwords are kept as given.
type CredentialService interface {
	Add(ctx context.Context, c models.AccountCredential) (models.AccountCredential, error)
	Get(ctx context.Context, id string) (models.AccountCredential, error)
	List(ctx context.Context) ([]models.AccountCredential, error)
	Update(ctx context.Context, id string, patch func(*models.AccountCredential)) (models.AccountCredential, error)
	Delete(ctx context.Context, id string) error
}

type credentialService struct {
	credentials store.Repository[models.AccountCredential]
}

func NewCredentialService(credentials store.Repository[models.AccountCredential]) CredentialService {
	return &credentialService{credentials: credentials}
}

func validateCredential(c *models.AccountCredential) error {
	c.Title = strings.TrimSpace(c.Title)
	c.Service = strings.TrimSpace(c.Service)
	c.Email = strings.TrimSpace(c.Email)
	if c.Title == "" || c.Service == "" {
		return invalid("Error", "Title and service are required")
	}
	return nil
}

func (s *credentialService) Add(ctx context.Context, c models.AccountCredential) (models.AccountCredential, error) {
	if err := validateCredential(&c); err != nil {
		return models.AccountCredential{}, err
	}
	created, err := s.credentials.Create(ctx, c)
	if err != nil {
		return models.AccountCredential{}, fmt.Errorf("failed to add account: %w", err)
	}
	return created, nil
}

func (s *credentialService) Get(ctx context.Context, id string) (models.AccountCredential, error) {
	c, ok, err := s.credentials.GetByID(ctx, id)
	if err != nil {
		return models.AccountCredential{}, err
	}
	if !ok {
		return models.AccountCredential{}, fmt.Errorf("account %s: %w", id, common.ErrorNotFound)
	}
	return c, nil
}

func (s *credentialService) List(ctx context.Context) ([]models.AccountCredential, error) {
	return s.credentials.GetAll(ctx)
}

// Update applies patch and rejects the result if it drops a required field.
func (s *credentialService) Update(ctx context.Context, id string, patch func(*models.AccountCredential)) (models.AccountCredential, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.AccountCredential{}, err
	}
	patch(&current)
	if err := validateCredential(&current); err != nil {
		return models.AccountCredential{}, err
	}

	return s.credentials.Update(ctx, id, func(c *models.AccountCredential) {
		c.Title = current.Title
		c.Service = current.Service
		c.Email = current.Email
		c.Password = current.Password
	})
}

func (s *credentialService) Delete(ctx context.Context, id string) error {
	return s.credentials.Delete(ctx, id)
}
