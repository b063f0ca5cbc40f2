package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/studioclass/review-api/internal/models"
)

// ErrUserNotFound indicates no account matches the requested username.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is a read-only lookup over the static account table.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

type staticUserRepository struct {
	users map[string]models.User
}

// NewStaticUserRepository indexes the seeded accounts by username.
func NewStaticUserRepository(users []models.User) UserRepository {
	index := make(map[string]models.User, len(users))
	for _, user := range users {
		index[strings.ToLower(user.Username)] = user
	}

	return &staticUserRepository{users: index}
}

func (r *staticUserRepository) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := r.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	return user, nil
}

// SeedUsers returns the classroom's fixed account table: one teacher and three
// students, all sharing the demo password hash.
func SeedUsers() []models.User {
	const demoHash = "$2a$10$2YZiPOFuBJX2wEQ2CBdTpuakyBX6DW1LQAxWe8jEqKB9OrP/6rUbu"

	return []models.User{
		{ID: 1, Username: "teacher", PasswordHash: demoHash, Role: models.RoleTeacher},
		{ID: 2, Username: "student1", PasswordHash: demoHash, Role: models.RoleStudent},
		{ID: 3, Username: "student2", PasswordHash: demoHash, Role: models.RoleStudent},
		{ID: 4, Username: "student3", PasswordHash: demoHash, Role: models.RoleStudent},
	}
}
