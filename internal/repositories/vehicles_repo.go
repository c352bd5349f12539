package repositories

import (
	"database/sql"
	"time"

	"subite-backend/internal/config"
	"subite-backend/internal/domain"
	"subite-backend/internal/pagination"
	"subite-backend/internal/scope"

	"github.com/go-sql-driver/mysql"
)

// VehicleDriver is the embedded driver summary on vehicle payloads.
type VehicleDriver struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// VehicleCompany is the embedded company summary on the vehicle detail
// view.
type VehicleCompany struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Vehicle is the wire shape of a vehicle record.
type Vehicle struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Name      string          `json:"name,omitempty"`
	Plate     string          `json:"plate,omitempty"`
	Active    bool            `json:"active"`
	Driver    *VehicleDriver  `json:"driver,omitempty"`
	Company   *VehicleCompany `json:"company,omitempty"`
}

// VehicleInput carries the writable vehicle fields.
type VehicleInput struct {
	Name     string
	Plate    string
	DriverID *int64
	Active   *bool
}

type VehiclesRepository struct {
	DB *sql.DB
}

func (r VehiclesRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const vehicleListColumns = `
	v.id, v.created_at, v.updated_at, COALESCE(v.name,''), COALESCE(v.plate,''), v.active,
	d.id, COALESCE(d.name,''), COALESCE(d.email,'')`

func scanVehicle(row interface{ Scan(...any) error }) (Vehicle, error) {
	var v Vehicle
	var dID sql.NullInt64
	var dName, dEmail sql.NullString
	if err := row.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Name, &v.Plate, &v.Active, &dID, &dName, &dEmail); err != nil {
		return Vehicle{}, err
	}
	if dID.Valid {
		v.Driver = &VehicleDriver{ID: dID.Int64, Name: dName.String, Email: dEmail.String}
	}
	return v, nil
}

// List returns one page of vehicles visible under the predicate, newest
// first, with the assigned driver joined in.
func (r VehiclesRepository) List(p scope.Predicate, cursor int64, limit int) (pagination.Page[Vehicle], error) {
	conds, args := p.Where()
	return pagination.ListPage(conds, args, cursor, limit,
		func(v Vehicle) int64 { return v.ID },
		func(conds []string, args []any, limit int) ([]Vehicle, error) {
			query := `SELECT ` + vehicleListColumns + `
				FROM vehicles v
				LEFT JOIN users d ON d.id = v.driver_id
				WHERE ` + joinAnd(qualify("v.", conds)) + `
				ORDER BY v.id DESC LIMIT ?`
			args = append(args, limit)
			rows, err := r.db().Query(query, args...)
			if err != nil {
				return nil, err
			}
			defer rows.Close()

			out := []Vehicle{}
			for rows.Next() {
				v, err := scanVehicle(rows)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, rows.Err()
		})
}

// Get loads a single vehicle under the visibility predicate. A row the
// caller may not see reads as not found.
func (r VehiclesRepository) Get(p scope.Predicate) (Vehicle, error) {
	conds, args := p.Where()
	query := `SELECT ` + vehicleListColumns + `, c.id, COALESCE(c.name,'')
		FROM vehicles v
		LEFT JOIN users d ON d.id = v.driver_id
		LEFT JOIN companies c ON c.id = v.company_id
		WHERE ` + joinAnd(qualify("v.", conds)) + ` LIMIT 1`

	var v Vehicle
	var dID, cID sql.NullInt64
	var dName, dEmail, cName sql.NullString
	err := r.db().QueryRow(query, args...).Scan(
		&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Name, &v.Plate, &v.Active,
		&dID, &dName, &dEmail, &cID, &cName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
		}
		return Vehicle{}, err
	}
	if dID.Valid {
		v.Driver = &VehicleDriver{ID: dID.Int64, Name: dName.String, Email: dEmail.String}
	}
	if cID.Valid {
		v.Company = &VehicleCompany{ID: cID.Int64, Name: cName.String}
	}
	return v, nil
}

// Create inserts a vehicle owned by the given company.
func (r VehiclesRepository) Create(companyID int64, in VehicleInput) (Vehicle, error) {
	var driverArg any
	if in.DriverID != nil {
		driverArg = *in.DriverID
	}
	res, err := r.db().Exec(`
		INSERT INTO vehicles (name, plate, active, company_id, driver_id, created_at, updated_at)
		VALUES (?, ?, TRUE, ?, ?, NOW(), NOW())
	`, nullIfEmpty(in.Name), nullIfEmpty(in.Plate), companyID, driverArg)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			return Vehicle{}, domain.ConflictError{Resource: "vehicle", Msg: "plate already registered"}
		}
		return Vehicle{}, err
	}
	id, _ := res.LastInsertId()
	return r.Get(scope.Predicate{CompanyID: companyID}.WithID(id))
}

// Update applies a partial update within the owning company; nil fields
// are left untouched.
func (r VehiclesRepository) Update(id, companyID int64, in VehicleInput) (Vehicle, error) {
	sets := []string{}
	args := []any{}
	if in.Name != "" {
		sets = append(sets, "name = ?")
		args = append(args, in.Name)
	}
	if in.Plate != "" {
		sets = append(sets, "plate = ?")
		args = append(args, in.Plate)
	}
	if in.DriverID != nil {
		sets = append(sets, "driver_id = NULLIF(?,0)")
		args = append(args, *in.DriverID)
	}
	if in.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *in.Active)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = NOW()")
		args = append(args, id, companyID)
		_, err := r.db().Exec(`UPDATE vehicles SET `+joinComma(sets)+` WHERE id = ? AND company_id = ?`, args...)
		if err != nil {
			if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
				return Vehicle{}, domain.ConflictError{Resource: "vehicle", Msg: "plate already registered"}
			}
			return Vehicle{}, err
		}
	}
	return r.Get(scope.Predicate{CompanyID: companyID}.WithID(id))
}

// Delete removes a vehicle within the owning company.
func (r VehiclesRepository) Delete(id, companyID int64) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id = ? AND company_id = ?`, id, companyID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

// ExistsInCompany reports whether the vehicle belongs to the company.
// Used to validate route assignments.
func (r VehiclesRepository) ExistsInCompany(vehicleID, companyID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`SELECT COUNT(*) FROM vehicles WHERE id = ? AND company_id = ?`, vehicleID, companyID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
