package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/store_api/internal/models"
)

func TestProductAccess(t *testing.T) {
	owner := int64(7)
	stranger := int64(8)

	active := &models.Product{IsActive: true, CreatedBy: &owner}
	inactive := &models.Product{IsActive: false, CreatedBy: &owner}
	seeded := &models.Product{IsActive: true}

	tests := []struct {
		name    string
		caller  *int64
		product *models.Product
		action  ProductAction
		want    Access
	}{
		{"anonymous views active", nil, active, ActionView, AccessAllow},
		{"stranger views active", &stranger, active, ActionView, AccessAllow},
		{"anonymous views inactive", nil, inactive, ActionView, AccessNotFound},
		{"stranger views inactive", &stranger, inactive, ActionView, AccessNotFound},
		{"owner views inactive", &owner, inactive, ActionView, AccessAllow},
		{"owner modifies", &owner, active, ActionModify, AccessAllow},
		{"owner modifies inactive", &owner, inactive, ActionModify, AccessAllow},
		{"stranger modifies", &stranger, active, ActionModify, AccessForbidden},
		{"anonymous modifies", nil, active, ActionModify, AccessForbidden},
		{"nobody owns seeded product", &owner, seeded, ActionModify, AccessForbidden},
		{"missing product", &owner, nil, ActionView, AccessNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProductAccess(tt.caller, tt.product, tt.action))
		})
	}
}
