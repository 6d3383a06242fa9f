package users

import (
	"fmt"

	"inventory/internal/repository"
	custom_error "inventory/pkg/errors"
	"inventory/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type UserRepository interface {
	GetByLDAP(ldap string) (*models.User, error)
	GetUser(id int) (*models.User, error)
	GetUsers() ([]models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

var userColumns = []interface{}{
	"user_id", "ldap", "full_name", "email", "role", "department", "active",
}

// GetByLDAP resolves an active user by their ldap handle. Inactive users are
// treated as absent so they cannot receive new checkouts.
func (r *userRepositoryImpl) GetByLDAP(ldap string) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select(userColumns...).
		From("users").
		Where(goqu.Ex{"ldap": ldap, "active": true})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, custom_error.WrapStoreError("failed to get user", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("user", ldap)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select(userColumns...).
		From("users").
		Where(goqu.Ex{"user_id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, custom_error.WrapStoreError("failed to get user", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("user", fmt.Sprintf("%d", id))
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	query := r.repository.GoquDBWrapper.
		Select(userColumns...).
		From("users").
		Where(goqu.Ex{"active": true}).
		Order(goqu.I("full_name").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, custom_error.WrapStoreError("error executing SQL statement", err)
	}

	return users, nil
}

