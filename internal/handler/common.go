// Package handler implements the HTTP endpoints. Handlers bundle the
// repositories they need, resolve the caller into a scope.Subject and
// defer authorization decisions to the scope package.
package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aurora-nuptials/marketplace/internal/model"
	"github.com/aurora-nuptials/marketplace/internal/repository"
	"github.com/aurora-nuptials/marketplace/internal/scope"
)

// dbCtx bounds a database call to five seconds.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// getUserID extracts the authenticated user id set by the JWT
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
		return v, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the authenticated role set by the JWT middleware.
func getRole(c echo.Context) (model.Role, error) {
	if r, ok := c.Get("role").(model.Role); ok && r.Valid() {
		return r, nil
	}
	return "", errors.New("invalid role in context")
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// SubjectLoader resolves the authenticated request into a
// scope.Subject, loading the role profile and, for vendors, the owned
// venue ids the booking predicates need.
type SubjectLoader struct {
	Couples *repository.CoupleRepo
	Vendors *repository.VendorRepo
}

// Load builds the Subject for the current request. A couple or vendor
// whose profile row is missing gets a Subject with a zero profile id,
// which every ownership predicate rejects.
func (l *SubjectLoader) Load(ctx context.Context, c echo.Context) (scope.Subject, error) {
	uid, err := getUserID(c)
	if err != nil {
		return scope.Subject{}, err
	}
	role, err := getRole(c)
	if err != nil {
		return scope.Subject{}, err
	}

	s := scope.Subject{UserID: uid, Role: role}
	switch role {
	case model.RoleCouple:
		cp, err := l.Couples.GetByUserID(ctx, uid)
		if err != nil && err != sql.ErrNoRows {
			return scope.Subject{}, err
		}
		s.CoupleProfileID = cp.ID
	case model.RoleVendor:
		vp, err := l.Vendors.GetByUserID(ctx, uid)
		if err != nil && err != sql.ErrNoRows {
			return scope.Subject{}, err
		}
		s.VendorProfileID = vp.ID
		if vp.ID != 0 {
			ids, err := l.Vendors.OwnedVenueIDs(ctx, vp.ID)
			if err != nil {
				return scope.Subject{}, err
			}
			s.OwnedVenueIDs = ids
		}
	}
	return s, nil
}
