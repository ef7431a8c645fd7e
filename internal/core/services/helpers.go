package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
)

// requireFields returns a validation error naming every blank field.
func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: %s is required", apperrors.ErrValidation, strings.Join(missing, ", "))
}

// normalizePage applies the default limit and clamps the page to sane bounds.
func normalizePage(p domain.Page, defaultLimit, maxLimit int) domain.Page {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
