package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ljmonteiro/backoffice/internal/core/domain"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, domain.HasPermission(domain.RoleAdmin, domain.RoleManager))
	assert.True(t, domain.HasPermission(domain.RoleManager, domain.RoleManager))
	assert.True(t, domain.HasPermission(domain.RoleManager, domain.RoleSeller))
	assert.False(t, domain.HasPermission(domain.RoleSeller, domain.RoleManager))
	assert.False(t, domain.HasPermission(domain.RoleCustomer, domain.RoleSeller))
	assert.False(t, domain.HasPermission(domain.UserRole("ghost"), domain.RoleCustomer))
}
