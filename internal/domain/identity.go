package domain

// Role is the access level carried by an authenticated user.
type Role string

const (
	RoleManager   Role = "MANAGER"
	RoleDriver    Role = "DRIVER"
	RolePassenger Role = "PASSENGER"
)

// ParseRole validates a role string from a token claim or query filter.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManager, RoleDriver, RolePassenger:
		return Role(s), true
	}
	return "", false
}

// Identity is the verified caller attached to a request by the auth
// middleware. It lives for the duration of one request only.
type Identity struct {
	UserID    int64
	Role      Role
	CompanyID *int64
	Email     string
}

// InCompany reports whether the identity belongs to the given company.
func (i Identity) InCompany(companyID int64) bool {
	return i.CompanyID != nil && *i.CompanyID == companyID
}

// Daily route lifecycle states.
const (
	RouteStatusPending    = "PENDING"
	RouteStatusInProgress = "IN_PROGRESS"
	RouteStatusFinished   = "FINISHED"
	RouteStatusCancelled  = "CANCELLED"
)

// ValidRouteStatus reports whether s is a known daily route status.
func ValidRouteStatus(s string) bool {
	switch s {
	case RouteStatusPending, RouteStatusInProgress, RouteStatusFinished, RouteStatusCancelled:
		return true
	}
	return false
}
