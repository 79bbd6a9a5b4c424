package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/burrowhq/burrow/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userCols = `id, display_name, avatar, coins, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	var avatar string

	err := scanner.Scan(&u.ID, &u.DisplayName, &avatar, &u.Coins, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Avatar, err = decodeStringMap(avatar)
	if err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}
	return &u, nil
}

// Create inserts a user record. The id normally comes from the identity
// provider; an empty id gets a generated one.
func (s *UserStore) Create(id, displayName string, avatar map[string]string, coins int) (*model.User, error) {
	if id == "" {
		id = uuid.NewString()
	}

	avatarJSON, err := encodeStringMap(avatar)
	if err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO users (id, display_name, avatar, coins) VALUES (?, ?, ?, ?)`,
		id, displayName, avatarJSON, coins,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) UpdateProfile(id, displayName string, avatar map[string]string, coins int) (*model.User, error) {
	avatarJSON, err := encodeStringMap(avatar)
	if err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}

	_, err = s.db.Exec(
		`UPDATE users SET display_name = ?, avatar = ?, coins = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		displayName, avatarJSON, coins, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
