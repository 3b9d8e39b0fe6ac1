package service

import (
	"net/mail"
	"strings"

	"github.com/kikoi/portfolio-backend/internal/apperr"
)

type requiredField struct {
	name  string
	value string
}

// requireFields returns a ValidationError for the first blank field.
func requireFields(fields ...requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return apperr.Missing(f.name)
		}
	}
	return nil
}

// validEmail rejects anything that is not a bare address.
func validEmail(field, addr string) error {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return apperr.Invalid(field, "Invalid email address: "+field)
	}
	return nil
}
