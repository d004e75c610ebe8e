package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/booking-service/internal/domain"
	apperrors "github.com/spec-kit/booking-service/pkg/util/errorutil"
)

func principalWith(role domain.Role, active bool) *Principal {
	return &Principal{Account: &domain.Account{ID: "acc-1", Role: role, Active: active}}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name      string
		principal *Principal
		required  domain.Role
		want      Decision
	}{
		{"nil principal", nil, domain.RoleCustomer, DecisionUnauthenticated},
		{"nil account", &Principal{}, domain.RoleCustomer, DecisionUnauthenticated},
		{"customer on customer route", principalWith(domain.RoleCustomer, true), domain.RoleCustomer, DecisionAllow},
		{"admin on admin route", principalWith(domain.RoleAdmin, true), domain.RoleAdmin, DecisionAllow},
		{"customer on admin route", principalWith(domain.RoleCustomer, true), domain.RoleAdmin, DecisionForbiddenRole},
		{"admin on customer route", principalWith(domain.RoleAdmin, true), domain.RoleCustomer, DecisionForbiddenRole},
		{"inactive customer", principalWith(domain.RoleCustomer, false), domain.RoleCustomer, DecisionForbiddenInactive},
		// role mismatch wins over the active flag
		{"inactive admin on customer route", principalWith(domain.RoleAdmin, false), domain.RoleCustomer, DecisionForbiddenRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Check(tc.principal, tc.required))
		})
	}
}

func TestCheckOwnership(t *testing.T) {
	assert.Equal(t, DecisionAllow, CheckOwnership("acc-1", "acc-1"))
	assert.Equal(t, DecisionForbiddenNotOwner, CheckOwnership("acc-1", "acc-2"))
	assert.Equal(t, DecisionUnauthenticated, CheckOwnership("", "acc-2"))
}

func TestDecisionError(t *testing.T) {
	assert.NoError(t, DecisionError(DecisionAllow))

	err := DecisionError(DecisionUnauthenticated)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Equal(t, "Unauthorized. Please log in.", domainErr.Message)

	err = DecisionError(DecisionForbiddenNotOwner)
	domainErr = apperrors.ToDomainError(err)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Equal(t, "Unauthorized access to booking", domainErr.Message)

	err = DecisionError(DecisionForbiddenInactive)
	domainErr = apperrors.ToDomainError(err)
	assert.Equal(t, 403, domainErr.HTTPStatus)
	assert.Equal(t, "Your account has been deactivated. Please contact support.", domainErr.Message)
}

func TestTokenIssueAndHash(t *testing.T) {
	tm := NewTokenManager(0)

	token, hash, expiresAt := tm.Issue()
	require.NotEmpty(t, token)
	assert.NotContains(t, token, "-")
	assert.Equal(t, HashToken(token), hash)
	assert.NotEqual(t, token, hash)
	assert.False(t, expiresAt.IsZero())

	token2, hash2, _ := tm.Issue()
	assert.NotEqual(t, token, token2)
	assert.NotEqual(t, hash, hash2)
}
