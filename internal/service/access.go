package service

import "github.com/GTDGit/store_api/internal/models"

// Access is the outcome of a product access check.
type Access int

const (
	AccessAllow Access = iota
	AccessForbidden
	AccessNotFound
)

// ProductAction is what a caller wants to do with a product.
type ProductAction int

const (
	ActionView ProductAction = iota
	ActionModify
)

// ProductAccess decides whether callerID (nil for anonymous callers) may
// perform action on p.
//
// Active products are visible to everyone. Inactive products are visible only
// to their creator and look absent to anybody else. Modification is allowed
// only to the recorded creator; products without a creator cannot be
// modified through the API.
func ProductAccess(callerID *int64, p *models.Product, action ProductAction) Access {
	if p == nil {
		return AccessNotFound
	}
	owner := callerID != nil && p.IsOwnedBy(*callerID)

	switch action {
	case ActionView:
		if p.IsActive || owner {
			return AccessAllow
		}
		return AccessNotFound
	case ActionModify:
		if owner {
			return AccessAllow
		}
		return AccessForbidden
	}
	return AccessForbidden
}
