package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poslite/poslite_backend/internal/apperrors"
	"github.com/poslite/poslite_backend/internal/core/domain"
)

func TestResolveAccountID_Precedence(t *testing.T) {
	tests := []struct {
		name string
		role domain.AccountRole
		lc   domain.LineContext
		want string
	}{
		{
			name: "item override wins over everything",
			role: domain.RoleCOGS,
			lc: domain.LineContext{
				ItemAccountID:     "acc-item",
				CategoryAccountID: "acc-category",
				DocumentAccountID: "acc-document",
			},
			want: "acc-item",
		},
		{
			name: "category default wins over document fallback",
			role: domain.RoleInventory,
			lc: domain.LineContext{
				CategoryAccountID: "acc-category",
				DocumentAccountID: "acc-document",
			},
			want: "acc-category",
		},
		{
			name: "customer default applies to the receivable role",
			role: domain.RoleReceivable,
			lc: domain.LineContext{
				CustomerAccountID: "acc-customer",
				DocumentAccountID: "acc-document",
			},
			want: "acc-customer",
		},
		{
			name: "customer default is ignored for non-receivable roles",
			role: domain.RoleIncome,
			lc: domain.LineContext{
				CustomerAccountID: "acc-customer",
				DocumentAccountID: "acc-document",
			},
			want: "acc-document",
		},
		{
			name: "document fallback is the last resort",
			role: domain.RoleCash,
			lc: domain.LineContext{
				DocumentAccountID: "acc-document",
			},
			want: "acc-document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveAccountID(tt.role, tt.lc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAccountID_MandatoryMissing(t *testing.T) {
	_, err := resolveAccountID(domain.RoleIncome, domain.LineContext{Line: "INV-042"})

	require.Error(t, err)
	var missing *apperrors.MissingAccountConfigError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, string(domain.RoleIncome), missing.Role)
	assert.Equal(t, "INV-042", missing.Line)
}

func TestResolveAccountID_OptionalMissingIsSkipped(t *testing.T) {
	for _, role := range []domain.AccountRole{domain.RoleTaxPayable, domain.RoleWHTReceivable, domain.RoleDiscountAllowed} {
		got, err := resolveAccountID(role, domain.LineContext{Line: "INV-042"})
		require.NoError(t, err, "optional role %s should not fail", role)
		assert.Empty(t, got)
	}
}
