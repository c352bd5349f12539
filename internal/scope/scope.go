// Package scope derives the mandatory row-visibility predicate for a
// resource from the caller's identity. Every query against a scoped
// resource must carry this predicate; client-supplied filters are ANDed
// on top and can only narrow what the identity is allowed to see.
package scope

import (
	"subite-backend/internal/domain"
)

// Resource identifies a scoped table.
type Resource int

const (
	Vehicles Resource = iota
	Routes
	Users
)

// rule describes what one role may see of one resource.
type rule struct {
	allowed    bool
	ownRows    bool // restrict to rows where driver_id = identity.UserID
	activeOnly bool // restrict to rows where active = true
}

// capabilities is the single source of truth for row visibility. Keeping
// it in one table means no endpoint can accidentally omit a scoping
// clause.
var capabilities = map[Resource]map[domain.Role]rule{
	Vehicles: {
		domain.RoleManager:   {allowed: true},
		domain.RoleDriver:    {allowed: true, ownRows: true},
		domain.RolePassenger: {allowed: true, activeOnly: true},
	},
	Routes: {
		domain.RoleManager:   {allowed: true},
		domain.RoleDriver:    {allowed: true, ownRows: true},
		domain.RolePassenger: {allowed: true},
	},
	Users: {
		domain.RoleManager: {allowed: true},
	},
}

// Predicate is the typed conjunction of visibility conditions plus
// caller-supplied narrowing filters. Zero-valued optional fields are
// omitted from the rendered clause.
type Predicate struct {
	CompanyID int64

	// mandatory role restrictions
	DriverID   int64 // >0: only rows assigned to this driver
	ActiveOnly bool  // only rows with active = true

	// caller filters, AND semantics
	Active *bool
	Status string
	Date   string
	Role   domain.Role

	// single-row lookups
	ID int64
}

// Build produces the mandatory predicate for ident against res. It fails
// with UnauthenticatedError when no identity is attached, and with
// ForbiddenError when the role has no access to the resource or the
// identity has no company to scope by.
func Build(ident *domain.Identity, res Resource) (Predicate, error) {
	if ident == nil {
		return Predicate{}, domain.UnauthenticatedError{}
	}
	r, ok := capabilities[res][ident.Role]
	if !ok || !r.allowed {
		return Predicate{}, domain.ForbiddenError{}
	}
	if ident.CompanyID == nil {
		return Predicate{}, domain.ForbiddenError{Msg: "user must be assigned to a company"}
	}
	p := Predicate{CompanyID: *ident.CompanyID}
	if r.ownRows {
		p.DriverID = ident.UserID
	}
	if r.activeOnly {
		p.ActiveOnly = true
	}
	return p, nil
}

// WithID narrows the predicate to a single row. Lookups that miss are
// indistinguishable from rows outside the caller's scope.
func (p Predicate) WithID(id int64) Predicate {
	p.ID = id
	return p
}

// WithActive ANDs a caller-supplied active filter. A passenger's
// mandatory active=true restriction stays in place, so filtering for
// inactive rows yields an empty page rather than widening visibility.
func (p Predicate) WithActive(active *bool) Predicate {
	p.Active = active
	return p
}

// WithStatus ANDs a status filter for route listings.
func (p Predicate) WithStatus(status string) Predicate {
	p.Status = status
	return p
}

// WithDate ANDs an exact-match date filter for route listings.
func (p Predicate) WithDate(date string) Predicate {
	p.Date = date
	return p
}

// WithRole ANDs a role filter for user listings.
func (p Predicate) WithRole(role domain.Role) Predicate {
	p.Role = role
	return p
}

// Where renders the predicate as a SQL conjunction with placeholder
// arguments, in a fixed field order so identical predicates produce
// identical queries.
func (p Predicate) Where() ([]string, []any) {
	conds := []string{"company_id = ?"}
	args := []any{p.CompanyID}

	if p.ID > 0 {
		conds = append(conds, "id = ?")
		args = append(args, p.ID)
	}
	if p.DriverID > 0 {
		conds = append(conds, "driver_id = ?")
		args = append(args, p.DriverID)
	}
	if p.ActiveOnly {
		conds = append(conds, "active = TRUE")
	}
	if p.Active != nil {
		conds = append(conds, "active = ?")
		args = append(args, *p.Active)
	}
	if p.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, p.Status)
	}
	if p.Date != "" {
		conds = append(conds, "date = ?")
		args = append(args, p.Date)
	}
	if p.Role != "" {
		conds = append(conds, "role = ?")
		args = append(args, string(p.Role))
	}
	return conds, args
}
