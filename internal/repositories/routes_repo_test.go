package repositories

import (
	"testing"
	"time"

	"subite-backend/internal/domain"
	"subite-backend/internal/scope"

	"github.com/DATA-DOG/go-sqlmock"
)

func routeRow(now time.Time, id int64, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "date", "status",
		"last_lat", "last_lng", "last_position_at",
		"v_id", "v_name", "v_plate",
		"d_id", "d_name", "d_email",
	}).AddRow(id, now, now, "2026-09-01", status, nil, nil, nil, 5, "Shuttle", "ABC-123", 42, "Driver", "driver@subite.com")
}

func TestRoutesGetOutOfScopeReadsAsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM daily_routes dr").
		WithArgs(int64(7), int64(3), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := RoutesRepository{DB: db}
	_, err = repo.Get(scope.Predicate{CompanyID: 7, DriverID: 42}.WithID(3))
	if !domain.IsNotFound(err) {
		t.Fatalf("out-of-scope route should be not found, got %v", err)
	}
}

func TestRoutesUpdateStampsPositionTime(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	p := scope.Predicate{CompanyID: 7, DriverID: 42}.WithID(3)

	mock.ExpectQuery("FROM daily_routes dr").
		WithArgs(int64(7), int64(3), int64(42)).
		WillReturnRows(routeRow(now, 3, "PENDING"))
	mock.ExpectExec("last_position_at = NOW").
		WithArgs("IN_PROGRESS", 6.2442, -75.5812, int64(7), int64(3), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM daily_routes dr").
		WithArgs(int64(7), int64(3), int64(42)).
		WillReturnRows(routeRow(now, 3, "IN_PROGRESS"))

	lat, lng := 6.2442, -75.5812
	repo := RoutesRepository{DB: db}
	route, err := repo.Update(p, RouteUpdate{Status: "IN_PROGRESS", LastLat: &lat, LastLng: &lng})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if route.Status != "IN_PROGRESS" {
		t.Fatalf("status = %s, want IN_PROGRESS", route.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoutesUpdateNoFieldsSkipsExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	p := scope.Predicate{CompanyID: 7}.WithID(3)

	mock.ExpectQuery("FROM daily_routes dr").
		WithArgs(int64(7), int64(3)).
		WillReturnRows(routeRow(now, 3, "PENDING"))
	mock.ExpectQuery("FROM daily_routes dr").
		WithArgs(int64(7), int64(3)).
		WillReturnRows(routeRow(now, 3, "PENDING"))

	repo := RoutesRepository{DB: db}
	if _, err := repo.Update(p, RouteUpdate{}); err != nil {
		t.Fatalf("empty update returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRoutesListDateAndStatusFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM daily_routes dr").
		WithArgs(int64(7), "PENDING", "2026-09-01", 20).
		WillReturnRows(routeRow(time.Now(), 3, "PENDING"))

	repo := RoutesRepository{DB: db}
	p := scope.Predicate{CompanyID: 7}.WithStatus("PENDING").WithDate("2026-09-01")
	page, err := repo.List(p, 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].ID != 3 {
		t.Fatalf("unexpected page: %+v", page.Data)
	}
	if page.Data[0].Vehicle == nil || page.Data[0].Vehicle.Plate != "ABC-123" {
		t.Fatalf("vehicle summary not joined: %+v", page.Data[0].Vehicle)
	}
	if page.Data[0].Driver == nil || page.Data[0].Driver.ID != 42 {
		t.Fatalf("driver summary not joined: %+v", page.Data[0].Driver)
	}
}
