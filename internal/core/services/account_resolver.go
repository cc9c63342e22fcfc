package services

import (
	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
)

// resolveAccountID walks the override hierarchy for one role and returns the
// first configured account id: line item, then category, then customer (for
// receivable-family roles only), then document fallback. A mandatory role
// with no hit at any level fails; an optional role resolves to "" and the
// caller skips the posting line.
func resolveAccountID(role domain.AccountRole, lc domain.LineContext) (string, error) {
	if lc.ItemAccountID != "" {
		return lc.ItemAccountID, nil
	}
	if lc.CategoryAccountID != "" {
		return lc.CategoryAccountID, nil
	}
	if lc.CustomerAccountID != "" && isReceivableFamily(role) {
		return lc.CustomerAccountID, nil
	}
	if lc.DocumentAccountID != "" {
		return lc.DocumentAccountID, nil
	}
	if role.IsMandatory() {
		return "", &apperrors.MissingAccountConfigError{Role: string(role), Line: lc.Line}
	}
	return "", nil
}

// isReceivableFamily reports whether customer-level defaults apply to a role.
// Customers configure their receivable account only; cost and revenue roles
// never fall back to it.
func isReceivableFamily(role domain.AccountRole) bool {
	return role == domain.RoleReceivable
}
