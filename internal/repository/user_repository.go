package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mentorloop/mentorloop/internal/model"
	"github.com/mentorloop/mentorloop/internal/repository/base"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{Repository: base.NewRepository(pool)}
}

// ErrUsernameTaken возвращается при попытке занять существующий username
var ErrUsernameTaken = fmt.Errorf("username already taken")

// Create создаёт нового пользователя
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (username, password_hash, display_name, role, bio)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		user.Username,
		user.PasswordHash,
		user.DisplayName,
		user.Role,
		user.Bio,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if base.UniqueViolation(err) != "" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, role, bio, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := r.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Role,
		&user.Bio,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

// GetByUsername получает пользователя по username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, role, bio, created_at
		FROM users
		WHERE username = $1
	`

	var user model.User
	err := r.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Role,
		&user.Bio,
		&user.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return &user, nil
}

// GetMentors получает список всех менторов
func (r *UserRepository) GetMentors(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, username, password_hash, display_name, role, bio, created_at
		FROM users
		WHERE role = $1
		ORDER BY display_name, username
	`

	rows, err := r.Query(ctx, query, model.RoleMentor)
	if err != nil {
		return nil, fmt.Errorf("get mentors: %w", err)
	}
	defer rows.Close()

	var mentors []*model.User
	for rows.Next() {
		var mentor model.User
		err := rows.Scan(
			&mentor.ID,
			&mentor.Username,
			&mentor.PasswordHash,
			&mentor.DisplayName,
			&mentor.Role,
			&mentor.Bio,
			&mentor.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan mentor: %w", err)
		}
		mentors = append(mentors, &mentor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mentors: %w", err)
	}

	return mentors, nil
}
