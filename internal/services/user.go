package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/veljkom/meetlite-api/internal/database"
	"github.com/veljkom/meetlite-api/internal/models"
	"github.com/veljkom/meetlite-api/internal/oauth"
)

// ErrNotFound reports an absent record. Handlers translate it to 404; every
// other error from this service is a storage fault and becomes a 500.
var ErrNotFound = errors.New("record not found")

const userColumns = `id, name, email, profile_picture, is_verified, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// UserUpdate is a partial field set; nil fields are left unchanged.
type UserUpdate struct {
	Name           *string
	ProfilePicture *string
}

// FindOrCreateFromOAuth looks a user up by email and creates one on first
// sign-in. Two racing first sign-ins both resolve to the same row: the insert
// uses ON CONFLICT DO NOTHING against the unique email index, and the loser
// re-reads the winner's row.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	user, err := s.getByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	user = &models.User{}
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, profile_picture, is_verified)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING `+userColumns+`
	`, info.Name, info.Email, nullableString(info.AvatarURL), info.EmailVerified).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePicture,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		// Lost the race; the row exists now.
		return s.getByEmail(ctx, info.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePicture,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Create(ctx context.Context, name, email string, picture *string, verified bool) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, profile_picture, is_verified)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns+`
	`, name, email, picture, verified).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePicture,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET name = COALESCE($1, name),
		    profile_picture = COALESCE($2, profile_picture),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING `+userColumns+`
	`, upd.Name, upd.ProfilePicture, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePicture,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserService) getByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.ProfilePicture,
		&user.IsVerified, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
