package lmsapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/academia/core/user"
)

type UserRepository struct {
	c *Client
}

func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{c: c}
}

var _ user.Repository = (*UserRepository)(nil)

func (repo *UserRepository) Login(ctx context.Context, email, password string) (user.User, error) {
	var resp struct {
		Success bool     `json:"success"`
		User    *userDTO `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	errs := statusErrors{
		400: user.ErrInvalidCredentials,
		401: user.ErrInvalidCredentials,
		404: user.ErrInvalidCredentials,
	}
	if err := repo.c.post(ctx, "/user/login", body, &resp, errs); err != nil {
		return user.User{}, err
	}
	if !resp.Success || resp.User == nil || resp.User.ID == "" {
		return user.User{}, user.ErrInvalidCredentials
	}
	return resp.User.toUser(), nil
}

func (repo *UserRepository) Register(ctx context.Context, nu user.NewUser) (user.User, error) {
	var resp struct {
		User *userDTO `json:"user"`
	}
	body := map[string]string{"name": nu.Name, "email": nu.Email, "password": nu.Password}
	errs := statusErrors{400: user.ErrEmailExists, 409: user.ErrEmailExists}
	if err := repo.c.post(ctx, "/user/register", body, &resp, errs); err != nil {
		return user.User{}, err
	}
	if resp.User == nil {
		return user.User{}, errors.New("registering user: empty response")
	}
	return resp.User.toUser(), nil
}

func (repo *UserRepository) GetUser(ctx context.Context, id string) (user.User, error) {
	var resp struct {
		User *userDTO `json:"user"`
	}
	body := map[string]string{"id": id}
	errs := statusErrors{400: user.ErrNotFound, 404: user.ErrNotFound}
	if err := repo.c.post(ctx, "/user/get-user", body, &resp, errs); err != nil {
		return user.User{}, err
	}
	if resp.User == nil {
		return user.User{}, user.ErrNotFound
	}
	return resp.User.toUser(), nil
}

func (repo *UserRepository) QueryAllStudents(ctx context.Context) ([]user.User, error) {
	var resp struct {
		User []userDTO `json:"user"`
	}
	if err := repo.c.get(ctx, "/user/getAllstudents", &resp, nil); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	users := make([]user.User, 0, len(resp.User))
	for _, dto := range resp.User {
		users = append(users, dto.toUser())
	}
	return users, nil
}

func (repo *UserRepository) Enroll(ctx context.Context, userID, courseID string) error {
	body := map[string]string{"userId": userID, "courseId": courseID}
	return repo.c.post(ctx, "/user/enrollCourse", body, nil, statusErrors{404: user.ErrNotFound, 409: user.ErrAlreadyEnrolled})
}

func (repo *UserRepository) Unenroll(ctx context.Context, userID, courseID string) error {
	body := map[string]string{"userId": userID, "courseId": courseID}
	return repo.c.post(ctx, "/user/removeEnroll", body, nil, statusErrors{404: user.ErrNotEnrolled})
}
