package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// profileKey is the fixed key the owner's profile record is stored under.
const profileKey = "profile"

// Profile is the device owner's own profile. Absence of the stored record
// means "no profile yet", which is a meaningful state for callers.
type Profile struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Bio         string    `json:"bio,omitempty"`
	ImageRef    string    `json:"imageUri,omitempty"`
}

// DisplayName returns "First Last" with empty parts trimmed away.
func (p *Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.LastName
	}
}

// SaveProfile serializes and writes the profile under its fixed key,
// overwriting any existing record.
func (db *DB) SaveProfile(p *Profile) error {
	value, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at`,
		profileKey, string(value), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// LoadProfile reads the stored profile. Returns (nil, nil) when no profile
// has been saved yet.
func (db *DB) LoadProfile() (*Profile, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, profileKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal([]byte(value), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &p, nil
}

// DeleteProfile removes the stored profile. Deleting an absent profile is
// a no-op.
func (db *DB) DeleteProfile() error {
	if _, err := db.Exec(`DELETE FROM kv WHERE key = ?`, profileKey); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}
