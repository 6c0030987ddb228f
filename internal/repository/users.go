package repository

import (
	"context"
	"time"

	"github.com/workhive/backend/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (name, username, email, password_hash, role, location, bio)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, average_rating, created_at, version
	`

	args := []any{user.Name, user.Username, user.Email, user.PasswordHash, user.Role, user.Location, user.Bio}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.AverageRating, &user.CreatedAt, &user.Version); err != nil {
		if cerr, ok := constraintConflict(err, "users_username_key", "username already taken"); ok {
			return cerr
		}
		if cerr, ok := constraintConflict(err, "users_email_key", "email already registered"); ok {
			return cerr
		}
		return err
	}

	return nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT name, username, email, password_hash, role, location, bio, average_rating, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Name, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.Location, &user.Bio, &user.AverageRating, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, notFound(err, "user")
	}

	if err := r.loadFollowEdges(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, location, bio, average_rating, created_at, version
		FROM users WHERE username = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	dst := []any{&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.Location, &user.Bio, &user.AverageRating, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, notFound(err, "user")
	}

	if err := r.loadFollowEdges(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, name, username, password_hash, role, location, bio, average_rating, created_at, version
		FROM users WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{&user.ID, &user.Name, &user.Username, &user.PasswordHash, &user.Role, &user.Location, &user.Bio, &user.AverageRating, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, notFound(err, "user")
	}

	return user, nil
}

func (r *Repository) loadFollowEdges(ctx context.Context, user *domain.User) error {
	query := `SELECT follower_id FROM user_follows WHERE followed_id = $1 ORDER BY follower_id`

	rows, err := r.dbpool.QueryContext(ctx, query, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	user.Followers = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		user.Followers = append(user.Followers, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	query = `SELECT followed_id FROM user_follows WHERE follower_id = $1 ORDER BY followed_id`

	rows, err = r.dbpool.QueryContext(ctx, query, user.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	user.Following = make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		user.Following = append(user.Following, id)
	}

	return rows.Err()
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			name = $1,
			email = $2,
			password_hash = $3,
			location = $4,
			bio = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{user.Name, user.Email, user.PasswordHash, user.Location, user.Bio, user.ID, user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.Version); err != nil {
		if cerr, ok := constraintConflict(err, "users_email_key", "email already registered"); ok {
			return cerr
		}
		return notFound(err, "user")
	}

	return nil
}

func (r *Repository) ListUsers(role *domain.Role) ([]*domain.User, error) {
	query := `
		SELECT id, name, username, email, role, location, bio, average_rating, created_at, version
		FROM users
		WHERE $1::text IS NULL OR role = $1
		ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var roleArg any
	if role != nil {
		roleArg = string(*role)
	}

	rows, err := r.dbpool.QueryContext(ctx, query, roleArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{&user.ID, &user.Name, &user.Username, &user.Email, &user.Role, &user.Location, &user.Bio, &user.AverageRating, &user.CreatedAt, &user.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) CheckEmailIfExists(email string) (bool, error) {
	isExists := false

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)
	`
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&isExists); err != nil {
		return false, err
	}

	return isExists, nil
}

func (r *Repository) FollowUser(followerID, followedID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	// ON CONFLICT keeps the edge set idempotent
	query := `
		INSERT INTO user_follows (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`
	if _, err := r.dbpool.ExecContext(ctx, query, followerID, followedID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UnfollowUser(followerID, followedID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM user_follows WHERE follower_id = $1 AND followed_id = $2`
	if _, err := r.dbpool.ExecContext(ctx, query, followerID, followedID); err != nil {
		return err
	}

	return nil
}
