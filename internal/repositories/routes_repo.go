package repositories

import (
	"database/sql"
	"time"

	"subite-backend/internal/config"
	"subite-backend/internal/domain"
	"subite-backend/internal/pagination"
	"subite-backend/internal/scope"
)

// RouteVehicle is the embedded vehicle summary on route payloads.
type RouteVehicle struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Plate string `json:"plate,omitempty"`
}

// RouteDriver is the embedded driver summary on route payloads.
type RouteDriver struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// DailyRoute is the wire shape of a scheduled trip.
type DailyRoute struct {
	ID             int64         `json:"id"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Date           string        `json:"date"`
	Status         string        `json:"status"`
	LastLat        *float64      `json:"lastLat"`
	LastLng        *float64      `json:"lastLng"`
	LastPositionAt *time.Time    `json:"lastPositionAt"`
	Vehicle        *RouteVehicle `json:"vehicle,omitempty"`
	Driver         *RouteDriver  `json:"driver,omitempty"`
}

// RouteUpdate carries the writable route fields; nil means untouched.
type RouteUpdate struct {
	Status  string
	LastLat *float64
	LastLng *float64
}

type RoutesRepository struct {
	DB *sql.DB
}

func (r RoutesRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const routeColumns = `
	dr.id, dr.created_at, dr.updated_at, DATE_FORMAT(dr.date,'%Y-%m-%d'), dr.status,
	dr.last_lat, dr.last_lng, dr.last_position_at,
	v.id, COALESCE(v.name,''), COALESCE(v.plate,''),
	d.id, COALESCE(d.name,''), COALESCE(d.email,'')`

const routeJoins = `
	FROM daily_routes dr
	LEFT JOIN vehicles v ON v.id = dr.vehicle_id
	LEFT JOIN users d ON d.id = dr.driver_id`

func scanRoute(row interface{ Scan(...any) error }) (DailyRoute, error) {
	var rt DailyRoute
	var lat, lng sql.NullFloat64
	var posAt sql.NullTime
	var vID, dID sql.NullInt64
	var vName, vPlate, dName, dEmail sql.NullString
	err := row.Scan(
		&rt.ID, &rt.CreatedAt, &rt.UpdatedAt, &rt.Date, &rt.Status,
		&lat, &lng, &posAt,
		&vID, &vName, &vPlate,
		&dID, &dName, &dEmail,
	)
	if err != nil {
		return DailyRoute{}, err
	}
	if lat.Valid {
		rt.LastLat = &lat.Float64
	}
	if lng.Valid {
		rt.LastLng = &lng.Float64
	}
	if posAt.Valid {
		rt.LastPositionAt = &posAt.Time
	}
	if vID.Valid {
		rt.Vehicle = &RouteVehicle{ID: vID.Int64, Name: vName.String, Plate: vPlate.String}
	}
	if dID.Valid {
		rt.Driver = &RouteDriver{ID: dID.Int64, Name: dName.String, Email: dEmail.String}
	}
	return rt, nil
}

// List returns one page of daily routes visible under the predicate,
// newest first, with vehicle and driver summaries joined in.
func (r RoutesRepository) List(p scope.Predicate, cursor int64, limit int) (pagination.Page[DailyRoute], error) {
	conds, args := p.Where()
	return pagination.ListPage(conds, args, cursor, limit,
		func(rt DailyRoute) int64 { return rt.ID },
		func(conds []string, args []any, limit int) ([]DailyRoute, error) {
			query := `SELECT ` + routeColumns + routeJoins + `
				WHERE ` + joinAnd(qualify("dr.", conds)) + `
				ORDER BY dr.id DESC LIMIT ?`
			args = append(args, limit)
			rows, err := r.db().Query(query, args...)
			if err != nil {
				return nil, err
			}
			defer rows.Close()

			out := []DailyRoute{}
			for rows.Next() {
				rt, err := scanRoute(rows)
				if err != nil {
					return nil, err
				}
				out = append(out, rt)
			}
			return out, rows.Err()
		})
}

// Get loads a single route under the visibility predicate. A row the
// caller may not see reads as not found.
func (r RoutesRepository) Get(p scope.Predicate) (DailyRoute, error) {
	conds, args := p.Where()
	query := `SELECT ` + routeColumns + routeJoins + `
		WHERE ` + joinAnd(qualify("dr.", conds)) + ` LIMIT 1`
	rt, err := scanRoute(r.db().QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return DailyRoute{}, domain.NotFoundError{Resource: "daily route"}
		}
		return DailyRoute{}, err
	}
	return rt, nil
}

// Create schedules a route for the given company, starting PENDING.
func (r RoutesRepository) Create(companyID int64, date string, vehicleID, driverID *int64) (DailyRoute, error) {
	var vehicleArg, driverArg any
	if vehicleID != nil {
		vehicleArg = *vehicleID
	}
	if driverID != nil {
		driverArg = *driverID
	}
	res, err := r.db().Exec(`
		INSERT INTO daily_routes (company_id, date, vehicle_id, driver_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`, companyID, date, vehicleArg, driverArg, domain.RouteStatusPending)
	if err != nil {
		return DailyRoute{}, err
	}
	id, _ := res.LastInsertId()
	return r.Get(scope.Predicate{CompanyID: companyID}.WithID(id))
}

// Update applies a status change and/or a position report under the
// visibility predicate, stamping last_position_at whenever a coordinate
// arrives. Rows outside the predicate read as not found.
func (r RoutesRepository) Update(p scope.Predicate, upd RouteUpdate) (DailyRoute, error) {
	if _, err := r.Get(p); err != nil {
		return DailyRoute{}, err
	}

	sets := []string{}
	args := []any{}
	if upd.Status != "" {
		sets = append(sets, "status = ?")
		args = append(args, upd.Status)
	}
	if upd.LastLat != nil {
		sets = append(sets, "last_lat = ?")
		args = append(args, *upd.LastLat)
	}
	if upd.LastLng != nil {
		sets = append(sets, "last_lng = ?")
		args = append(args, *upd.LastLng)
	}
	if upd.LastLat != nil || upd.LastLng != nil {
		sets = append(sets, "last_position_at = NOW()")
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = NOW()")
		conds, condArgs := p.Where()
		args = append(args, condArgs...)
		query := `UPDATE daily_routes SET ` + joinComma(sets) + ` WHERE ` + joinAnd(conds)
		if _, err := r.db().Exec(query, args...); err != nil {
			return DailyRoute{}, err
		}
	}
	return r.Get(p)
}
