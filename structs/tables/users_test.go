package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserStaffGates(t *testing.T) {
	tests := []struct {
		role      UserRole
		staff     bool
		superuser bool
	}{
		{RoleUser, false, false},
		{RoleAdmin, true, false},
		{RoleSuperAdmin, true, true},
	}

	for _, tt := range tests {
		u := User{Role: tt.role}
		assert.Equal(t, tt.staff, u.IsStaff(), "role %s", tt.role)
		assert.Equal(t, tt.superuser, u.IsSuperuser(), "role %s", tt.role)
	}
}

func TestAddressOverlappingTypes(t *testing.T) {
	t.Run("shipping overlaps shipping and both", func(t *testing.T) {
		a := Address{AddressType: AddressTypeShipping}
		assert.ElementsMatch(t,
			[]AddressType{AddressTypeShipping, AddressTypeBoth},
			a.OverlappingTypes(),
		)
	})

	t.Run("billing overlaps billing and both", func(t *testing.T) {
		a := Address{AddressType: AddressTypeBilling}
		assert.ElementsMatch(t,
			[]AddressType{AddressTypeBilling, AddressTypeBoth},
			a.OverlappingTypes(),
		)
	})

	t.Run("both overlaps everything", func(t *testing.T) {
		a := Address{AddressType: AddressTypeBoth}
		assert.ElementsMatch(t,
			[]AddressType{AddressTypeShipping, AddressTypeBilling, AddressTypeBoth},
			a.OverlappingTypes(),
		)
	})
}
