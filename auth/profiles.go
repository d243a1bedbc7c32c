package auth

import (
	"context"
	"database/sql"
	"time"

	"campus-canteen/apperr"
)

type Profile struct {
	UID         string `json:"uid"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	RollNumber  string `json:"roll_number"`
	PhoneNumber string `json:"phone_number"`
	Role        Role   `json:"role" validate:"oneof=student admin"`
}

type PostgresProfiles struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewPostgresProfiles(db *sql.DB, timeout time.Duration) *PostgresProfiles {
	return &PostgresProfiles{DB: db, Timeout: timeout}
}

func (p *PostgresProfiles) EnsureSchema(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			uid          TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			roll_number  TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			role         TEXT NOT NULL DEFAULT 'student' CHECK (role IN ('student', 'admin'))
		)`)
	return err
}

func (p *PostgresProfiles) GetProfile(ctx context.Context, uid string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	var profile Profile
	err := p.DB.QueryRowContext(ctx, `
		SELECT uid, name, email, roll_number, phone_number, role
		FROM users WHERE uid = $1
	`, uid).Scan(&profile.UID, &profile.Name, &profile.Email, &profile.RollNumber, &profile.PhoneNumber, &profile.Role)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return &profile, nil
}

func (p *PostgresProfiles) CreateProfile(ctx context.Context, profile *Profile) error {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO users (uid, name, email, roll_number, phone_number, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, profile.UID, profile.Name, profile.Email, profile.RollNumber, profile.PhoneNumber, profile.Role)
	return apperr.FromStore(err)
}

func (p *PostgresProfiles) ListProfiles(ctx context.Context) ([]Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	rows, err := p.DB.QueryContext(ctx, `
		SELECT uid, name, email, roll_number, phone_number, role
		FROM users ORDER BY name
	`)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		var profile Profile
		if err := rows.Scan(&profile.UID, &profile.Name, &profile.Email, &profile.RollNumber, &profile.PhoneNumber, &profile.Role); err != nil {
			return nil, apperr.FromStore(err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, apperr.FromStore(rows.Err())
}
