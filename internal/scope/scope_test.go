package scope

import (
	"reflect"
	"testing"

	"subite-backend/internal/domain"
)

func ident(role domain.Role, userID, companyID int64) *domain.Identity {
	return &domain.Identity{UserID: userID, Role: role, CompanyID: &companyID}
}

func TestBuildRequiresIdentity(t *testing.T) {
	_, err := Build(nil, Vehicles)
	if !domain.IsUnauthenticated(err) {
		t.Fatalf("nil identity should be unauthenticated, got %v", err)
	}
}

func TestBuildRequiresCompany(t *testing.T) {
	id := &domain.Identity{UserID: 1, Role: domain.RoleManager}
	_, err := Build(id, Vehicles)
	if !domain.IsForbidden(err) {
		t.Fatalf("identity without company should be forbidden, got %v", err)
	}
}

func TestBuildManagerSeesWholeCompany(t *testing.T) {
	p, err := Build(ident(domain.RoleManager, 1, 7), Vehicles)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if p.CompanyID != 7 {
		t.Fatalf("companyID = %d, want 7", p.CompanyID)
	}
	if p.DriverID != 0 || p.ActiveOnly {
		t.Fatalf("manager predicate should carry no extra restriction: %+v", p)
	}
}

func TestBuildDriverSeesOwnRows(t *testing.T) {
	p, err := Build(ident(domain.RoleDriver, 42, 7), Vehicles)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if p.DriverID != 42 {
		t.Fatalf("driver predicate must pin driver_id to the caller, got %d", p.DriverID)
	}

	p, err = Build(ident(domain.RoleDriver, 42, 7), Routes)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if p.DriverID != 42 {
		t.Fatalf("driver route predicate must pin driver_id, got %d", p.DriverID)
	}
}

func TestBuildPassengerSeesActiveVehiclesOnly(t *testing.T) {
	p, err := Build(ident(domain.RolePassenger, 5, 7), Vehicles)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if !p.ActiveOnly {
		t.Fatalf("passenger vehicle predicate must be active-only")
	}

	p, err = Build(ident(domain.RolePassenger, 5, 7), Routes)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if p.ActiveOnly || p.DriverID != 0 {
		t.Fatalf("passenger route predicate should only scope by company: %+v", p)
	}
}

func TestBuildUsersIsManagerOnly(t *testing.T) {
	if _, err := Build(ident(domain.RoleManager, 1, 7), Users); err != nil {
		t.Fatalf("manager should list users, got %v", err)
	}
	if _, err := Build(ident(domain.RoleDriver, 2, 7), Users); !domain.IsForbidden(err) {
		t.Fatalf("driver listing users should be forbidden, got %v", err)
	}
	if _, err := Build(ident(domain.RolePassenger, 3, 7), Users); !domain.IsForbidden(err) {
		t.Fatalf("passenger listing users should be forbidden, got %v", err)
	}
}

func TestPassengerActiveFilterCannotWiden(t *testing.T) {
	p, err := Build(ident(domain.RolePassenger, 5, 7), Vehicles)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	inactive := false
	p = p.WithActive(&inactive)

	conds, _ := p.Where()
	if !reflect.DeepEqual(conds, []string{"company_id = ?", "active = TRUE", "active = ?"}) {
		t.Fatalf("mandatory active clause must survive the caller filter: %v", conds)
	}
}

func TestWhereRendersFixedOrder(t *testing.T) {
	active := true
	p := Predicate{
		CompanyID: 7,
		DriverID:  42,
		Active:    &active,
		Status:    "PENDING",
		Date:      "2026-09-01",
	}.WithID(3)

	conds, args := p.Where()
	wantConds := []string{"company_id = ?", "id = ?", "driver_id = ?", "active = ?", "status = ?", "date = ?"}
	if !reflect.DeepEqual(conds, wantConds) {
		t.Fatalf("conds = %v, want %v", conds, wantConds)
	}
	wantArgs := []any{int64(7), int64(3), int64(42), true, "PENDING", "2026-09-01"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Fatalf("args = %v, want %v", args, wantArgs)
	}
}

func TestWhereOmitsZeroValuedFilters(t *testing.T) {
	conds, args := Predicate{CompanyID: 7}.Where()
	if !reflect.DeepEqual(conds, []string{"company_id = ?"}) {
		t.Fatalf("conds = %v, want only the company clause", conds)
	}
	if len(args) != 1 || args[0].(int64) != 7 {
		t.Fatalf("args = %v, want [7]", args)
	}
}

func TestNarrowingDoesNotMutateReceiver(t *testing.T) {
	base, err := Build(ident(domain.RoleManager, 1, 7), Routes)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	_ = base.WithStatus("FINISHED").WithDate("2026-09-01")
	if base.Status != "" || base.Date != "" {
		t.Fatalf("narrowing must return a copy, base predicate changed: %+v", base)
	}
}
