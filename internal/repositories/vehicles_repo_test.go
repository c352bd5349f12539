package repositories

import (
	"testing"
	"time"

	"subite-backend/internal/domain"
	"subite-backend/internal/scope"

	"github.com/DATA-DOG/go-sqlmock"
)

func vehicleRows(now time.Time, ids ...int64) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "name", "plate", "active",
		"d_id", "d_name", "d_email",
	})
	for _, id := range ids {
		rows.AddRow(id, now, now, "Shuttle", "ABC-123", true, nil, "", "")
	}
	return rows
}

func TestVehiclesListDriverScopedWithCursor(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("FROM vehicles v").
		WithArgs(int64(7), int64(42), int64(50), 2).
		WillReturnRows(vehicleRows(now, 49, 48))

	repo := VehiclesRepository{DB: db}
	page, err := repo.List(scope.Predicate{CompanyID: 7, DriverID: 42}, 50, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("page size %d, want 2", len(page.Data))
	}
	if page.Data[0].ID != 49 || page.Data[1].ID != 48 {
		t.Fatalf("unexpected order: %d, %d", page.Data[0].ID, page.Data[1].ID)
	}
	if !page.PageInfo.HasNextPage || page.PageInfo.NextCursor != "48" {
		t.Fatalf("pageInfo = %+v, want hasNextPage with cursor 48", page.PageInfo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestVehiclesListEmptyPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM vehicles v").
		WithArgs(int64(7), 20).
		WillReturnRows(vehicleRows(time.Now()))

	repo := VehiclesRepository{DB: db}
	page, err := repo.List(scope.Predicate{CompanyID: 7}, 0, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("empty page must be [], got %v", page.Data)
	}
	if page.PageInfo.HasNextPage || page.PageInfo.NextCursor != "" {
		t.Fatalf("empty page should end the traversal: %+v", page.PageInfo)
	}
}

func TestVehiclesGetOutOfScopeReadsAsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM vehicles v").
		WithArgs(int64(7), int64(3), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := VehiclesRepository{DB: db}
	_, err = repo.Get(scope.Predicate{CompanyID: 7, DriverID: 42}.WithID(3))
	if !domain.IsNotFound(err) {
		t.Fatalf("out-of-scope vehicle should be not found, got %v", err)
	}
}

func TestVehiclesDeleteMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM vehicles").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := VehiclesRepository{DB: db}
	if err := repo.Delete(3, 7); !domain.IsNotFound(err) {
		t.Fatalf("deleting a missing vehicle should be not found, got %v", err)
	}
}

func TestVehiclesExistsInCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(5), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(6), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(0))

	repo := VehiclesRepository{DB: db}
	ok, err := repo.ExistsInCompany(5, 7)
	if err != nil || !ok {
		t.Fatalf("vehicle 5 should exist in company 7, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.ExistsInCompany(6, 7)
	if err != nil || ok {
		t.Fatalf("vehicle 6 should not exist in company 7, got ok=%v err=%v", ok, err)
	}
}
