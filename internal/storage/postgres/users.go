package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/krishimitra/krishi/internal/errors"
	"github.com/krishimitra/krishi/internal/logger"
	"github.com/krishimitra/krishi/internal/models"
)

func (s *Store) GetUser(mobile string) (models.UserRecord, error) {
	if s.db == nil {
		return models.UserRecord{}, apperrors.Unavailable("get user", fmt.Errorf("database not loaded"))
	}

	var u models.UserRecord
	err := s.db.QueryRow(`
		SELECT mobile, name, location, password_hash, registered_at
		FROM users WHERE mobile = $1`, mobile).
		Scan(&u.Mobile, &u.Name, &u.Location, &u.PasswordHash, &u.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserRecord{}, apperrors.NotFoundf("user %s", mobile)
	}
	if err != nil {
		return models.UserRecord{}, apperrors.Unavailable("get user", err)
	}

	if err := s.loadChildren(&u); err != nil {
		return models.UserRecord{}, err
	}
	return u, nil
}

func (s *Store) GetAllUsers() ([]models.UserRecord, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("get users", fmt.Errorf("database not loaded"))
	}

	rows, err := s.db.Query(`
		SELECT mobile, name, location, password_hash, registered_at
		FROM users ORDER BY mobile`)
	if err != nil {
		return nil, apperrors.Unavailable("get users", err)
	}
	var users []models.UserRecord
	for rows.Next() {
		var u models.UserRecord
		if err := rows.Scan(&u.Mobile, &u.Name, &u.Location, &u.PasswordHash, &u.RegisteredAt); err != nil {
			rows.Close()
			return nil, apperrors.Unavailable("scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, apperrors.Unavailable("get users", err)
	}
	rows.Close()

	for i := range users {
		if err := s.loadChildren(&users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *Store) loadChildren(u *models.UserRecord) error {
	u.Crops = []models.CropHolding{}
	u.Reminders = []models.Reminder{}

	crops, err := s.db.Query(`
		SELECT name, planting_date, area_acres, added_at
		FROM crops WHERE user_mobile = $1 ORDER BY position`, u.Mobile)
	if err != nil {
		return apperrors.Unavailable("get crops", err)
	}
	defer crops.Close()
	for crops.Next() {
		var c models.CropHolding
		if err := crops.Scan(&c.Name, &c.PlantingDate, &c.AreaAcres, &c.AddedAt); err != nil {
			return apperrors.Unavailable("scan crop", err)
		}
		u.Crops = append(u.Crops, c)
	}
	if err := crops.Err(); err != nil {
		return apperrors.Unavailable("get crops", err)
	}

	reminders, err := s.db.Query(`
		SELECT id, title, date, description, created_at
		FROM reminders WHERE user_mobile = $1 ORDER BY position`, u.Mobile)
	if err != nil {
		return apperrors.Unavailable("get reminders", err)
	}
	defer reminders.Close()
	for reminders.Next() {
		var r models.Reminder
		if err := reminders.Scan(&r.ID, &r.Title, &r.Date, &r.Description, &r.CreatedAt); err != nil {
			return apperrors.Unavailable("scan reminder", err)
		}
		u.Reminders = append(u.Reminders, r)
	}
	if err := reminders.Err(); err != nil {
		return apperrors.Unavailable("get reminders", err)
	}
	return nil
}

// SaveUser replaces the user row and all of its crops and reminders in one transaction.
func (s *Store) SaveUser(u models.UserRecord) error {
	if u.Mobile == "" {
		return apperrors.InvalidArgumentf("user record without mobile")
	}
	if s.db == nil {
		return apperrors.Unavailable("save user", fmt.Errorf("database not loaded"))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Unavailable("begin transaction", err)
	}
	if err := saveUserTx(tx, u); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.Unavailable("commit user", err)
	}
	logger.Debug("Saved user", "mobile", u.Mobile, "crops", len(u.Crops), "reminders", len(u.Reminders))
	return nil
}

// SaveAllUsers replaces the whole user table.
func (s *Store) SaveAllUsers(users []models.UserRecord) error {
	if s.db == nil {
		return apperrors.Unavailable("save users", fmt.Errorf("database not loaded"))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return apperrors.Unavailable("begin transaction", err)
	}
	for _, stmt := range []string{"DELETE FROM reminders", "DELETE FROM crops", "DELETE FROM users"} {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return apperrors.Unavailable("clear users", err)
		}
	}
	for _, u := range users {
		if u.Mobile == "" {
			_ = tx.Rollback()
			return apperrors.InvalidArgumentf("user record without mobile")
		}
		if err := saveUserTx(tx, u); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.Unavailable("commit users", err)
	}
	return nil
}

func saveUserTx(tx *sql.Tx, u models.UserRecord) error {
	_, err := tx.Exec(`
		INSERT INTO users (mobile, name, location, password_hash, registered_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT(mobile) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			password_hash = excluded.password_hash,
			registered_at = excluded.registered_at`,
		u.Mobile, u.Name, u.Location, u.PasswordHash, u.RegisteredAt)
	if err != nil {
		return apperrors.Unavailable("save user", err)
	}

	if _, err := tx.Exec("DELETE FROM crops WHERE user_mobile = $1", u.Mobile); err != nil {
		return apperrors.Unavailable("clear crops", err)
	}
	for i, c := range u.Crops {
		_, err := tx.Exec(`
			INSERT INTO crops (user_mobile, position, name, planting_date, area_acres, added_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			u.Mobile, i, c.Name, c.PlantingDate, c.AreaAcres, c.AddedAt)
		if err != nil {
			return apperrors.Unavailable("save crop", err)
		}
	}

	if _, err := tx.Exec("DELETE FROM reminders WHERE user_mobile = $1", u.Mobile); err != nil {
		return apperrors.Unavailable("clear reminders", err)
	}
	for i, r := range u.Reminders {
		_, err := tx.Exec(`
			INSERT INTO reminders (user_mobile, position, id, title, date, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			u.Mobile, i, r.ID, r.Title, r.Date, r.Description, r.CreatedAt)
		if err != nil {
			return apperrors.Unavailable("save reminder", err)
		}
	}
	return nil
}
