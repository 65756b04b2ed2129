package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-onboard/models"
)

const (
	usersTable    = "users"
	profilesTable = "profiles"
)

// userColumns is the default projection of a user. It never includes the
// hashed credential.
var userColumns = []string{
	"user_id",
	"name",
	"email",
	"role",
	"profile_id",
	"created_at",
	"updated_at",
}

var profileColumns = []string{
	"profile_id",
	"user_id",
	"profile_pic_url",
	"certificate_pdf_url",
	"created_at",
	"updated_at",
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

func buildFindUserByEmailQuery(ph sq.PlaceholderFormat, email string, withPassword bool) (string, []any, error) {
	columns := userColumns
	if withPassword {
		columns = append(append([]string{}, userColumns...), "password")
	}

	return sq.Select(columns...).
		From(usersTable).
		Where(sq.Eq{"email": email}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildFindUserByIDQuery(ph sq.PlaceholderFormat, userID int64) (string, []any, error) {
	return sq.Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildCreateUserQuery(ph sq.PlaceholderFormat, user models.User) (string, []any, error) {
	return sq.Insert(usersTable).
		Columns("name", "email", "password", "role").
		Values(user.Name, user.Email, user.Password, string(user.Role)).
		Suffix(returning(userColumns)).
		PlaceholderFormat(ph).
		ToSql()
}

func buildSetUserProfileQuery(ph sq.PlaceholderFormat, userID, profileID int64) (string, []any, error) {
	return sq.Update(usersTable).
		Set("profile_id", profileID).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(ph).
		ToSql()
}

func buildListUsersQuery(ph sq.PlaceholderFormat) (string, []any, error) {
	columns := append(prefixed("u", userColumns), prefixed("p", profileColumns)...)

	return sq.Select(columns...).
		From(usersTable + " u").
		LeftJoin(profilesTable + " p ON p.profile_id = u.profile_id").
		OrderBy("u.created_at DESC", "u.user_id DESC").
		PlaceholderFormat(ph).
		ToSql()
}

func buildCreateProfileQuery(ph sq.PlaceholderFormat, profile models.Profile) (string, []any, error) {
	return sq.Insert(profilesTable).
		Columns("user_id", "profile_pic_url", "certificate_pdf_url").
		Values(profile.UserID, profile.ProfilePicURL, profile.CertificatePDFURL).
		Suffix(returning(profileColumns)).
		PlaceholderFormat(ph).
		ToSql()
}
