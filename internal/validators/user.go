package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/mcnijman/go-emailaddress"

	"github.com/MKhiriev/go-onboard/models"
)

// Field name constants used to specify which fields should be validated.
const (
	// FieldName targets the display name (2..50 characters after trimming).
	FieldName = "name"

	// FieldEmail targets the email address.
	FieldEmail = "email"

	// FieldPassword targets the plaintext password (at least 6 characters).
	FieldPassword = "password"

	// FieldRole targets the optional role; empty means USER.
	FieldRole = "role"

	// FieldArtifact targets an uploaded file's content and filename.
	FieldArtifact = "artifact"
)

const (
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 6
	// bcrypt only accepts 72 bytes of input.
	maxPasswordBytes = 72
)

// UserValidator implements the Validator interface for the registration
// and login inputs: RegisterPayload, LoginPayload and Artifact.
type UserValidator struct {
}

// NewUserValidator constructs a new UserValidator and returns it as the
// Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Optional fields restrict validation to the named
// subset.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterPayload:
		return v.validateRegisterPayload(ctx, value, fields...)
	case *models.RegisterPayload:
		return v.validateRegisterPayload(ctx, *value, fields...)
	case models.LoginPayload:
		return v.validateLoginPayload(ctx, value, fields...)
	case *models.LoginPayload:
		return v.validateLoginPayload(ctx, *value, fields...)
	case models.Artifact:
		return v.validateArtifact(value, fields...)
	case *models.Artifact:
		return v.validateArtifact(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterPayload(_ context.Context, payload models.RegisterPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldEmail, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			name := strings.TrimSpace(payload.Name)
			if utf8.RuneCountInString(name) < minNameLength {
				return ErrNameTooShort
			}
			if utf8.RuneCountInString(name) > maxNameLength {
				return ErrNameTooLong
			}
		case FieldEmail:
			if !isValidEmail(payload.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(payload.Password) < minPasswordLength {
				return ErrPasswordTooShort
			}
			if len(payload.Password) > maxPasswordBytes {
				return ErrPasswordTooLong
			}
		case FieldRole:
			if payload.Role != "" && !payload.Role.IsValid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateLoginPayload(_ context.Context, payload models.LoginPayload, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(payload.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if utf8.RuneCountInString(payload.Password) < minPasswordLength {
				return ErrPasswordTooShort
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateArtifact(artifact models.Artifact, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldArtifact}
	}

	for _, f := range fields {
		switch f {
		case FieldArtifact:
			if artifact.IsEmpty() {
				return ErrEmptyArtifact
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	_, err := emailaddress.Parse(email)
	return err == nil
}
