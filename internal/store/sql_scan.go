package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-onboard/models"
)

// timestamp scans time values returned natively (pgx) or as text (SQLite
// expressions and RETURNING clauses without a declared column type).
type timestamp struct {
	Time  time.Time
	Valid bool
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (t *timestamp) parse(s string) error {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time, t.Valid = parsed, true
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp format %q", s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans the default user projection, optionally followed by the
// password column.
func scanUser(row rowScanner, withPassword bool) (models.User, error) {
	var (
		user      models.User
		role      string
		profileID sql.NullInt64
		createdAt timestamp
		updatedAt timestamp
	)

	dest := []any{&user.UserID, &user.Name, &user.Email, &role, &profileID, &createdAt, &updatedAt}
	if withPassword {
		dest = append(dest, &user.Password)
	}

	if err := row.Scan(dest...); err != nil {
		return models.User{}, err
	}

	user.Role = models.Role(role)
	if profileID.Valid {
		id := profileID.Int64
		user.ProfileID = &id
	}
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return user, nil
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var (
		profile   models.Profile
		createdAt timestamp
		updatedAt timestamp
	)

	err := row.Scan(
		&profile.ProfileID,
		&profile.UserID,
		&profile.ProfilePicURL,
		&profile.CertificatePDFURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.Profile{}, err
	}

	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	return profile, nil
}

// scanUserWithProfile scans a row of the users LEFT JOIN profiles projection.
func scanUserWithProfile(row rowScanner) (models.User, error) {
	var (
		user      models.User
		role      string
		profileID sql.NullInt64
		createdAt timestamp
		updatedAt timestamp

		pID        sql.NullInt64
		pUserID    sql.NullInt64
		pPicURL    sql.NullString
		pCertURL   sql.NullString
		pCreatedAt timestamp
		pUpdatedAt timestamp
	)

	err := row.Scan(
		&user.UserID, &user.Name, &user.Email, &role, &profileID, &createdAt, &updatedAt,
		&pID, &pUserID, &pPicURL, &pCertURL, &pCreatedAt, &pUpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Role = models.Role(role)
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time
	if profileID.Valid {
		id := profileID.Int64
		user.ProfileID = &id
	}

	if pID.Valid {
		user.Profile = &models.Profile{
			ProfileID:         pID.Int64,
			UserID:            pUserID.Int64,
			ProfilePicURL:     pPicURL.String,
			CertificatePDFURL: pCertURL.String,
			CreatedAt:         pCreatedAt.Time,
			UpdatedAt:         pUpdatedAt.Time,
		}
	}

	return user, nil
}
