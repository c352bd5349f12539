package repositories

import (
	"database/sql"
	"time"

	"subite-backend/internal/config"
	"subite-backend/internal/domain"
)

// Company is the wire shape of a company record.
type Company struct {
	ID        int64         `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
	Name      string        `json:"name"`
	Count     *CompanyCount `json:"_count,omitempty"`
}

// CompanyCount carries aggregate sizes shown on the company detail view.
type CompanyCount struct {
	Users    int `json:"users"`
	Vehicles int `json:"vehicles"`
}

type CompaniesRepository struct {
	DB *sql.DB
}

func (r CompaniesRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

// GetByID loads one company with its user and vehicle counts.
func (r CompaniesRepository) GetByID(id int64) (Company, error) {
	var c Company
	err := r.db().QueryRow(`
		SELECT id, created_at, updated_at, name
		FROM companies WHERE id = ? LIMIT 1
	`, id).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return Company{}, domain.NotFoundError{Resource: "company"}
		}
		return Company{}, err
	}

	count := CompanyCount{}
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE company_id = ?`, id).Scan(&count.Users); err != nil {
		return Company{}, err
	}
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM vehicles WHERE company_id = ?`, id).Scan(&count.Vehicles); err != nil {
		return Company{}, err
	}
	c.Count = &count
	return c, nil
}

// Create inserts a company and returns the stored row.
func (r CompaniesRepository) Create(name string) (Company, error) {
	res, err := r.db().Exec(`
		INSERT INTO companies (name, created_at, updated_at) VALUES (?, NOW(), NOW())
	`, name)
	if err != nil {
		return Company{}, err
	}
	id, _ := res.LastInsertId()

	var c Company
	err = r.db().QueryRow(`
		SELECT id, created_at, updated_at, name FROM companies WHERE id = ? LIMIT 1
	`, id).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name)
	return c, err
}

// Update renames a company.
func (r CompaniesRepository) Update(id int64, name string) (Company, error) {
	res, err := r.db().Exec(`
		UPDATE companies SET name = ?, updated_at = NOW() WHERE id = ?
	`, name, id)
	if err != nil {
		return Company{}, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		// RowsAffected is also 0 when the name did not change; confirm
		// existence before reporting not found.
		var exists int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM companies WHERE id = ?`, id).Scan(&exists); err != nil {
			return Company{}, err
		}
		if exists == 0 {
			return Company{}, domain.NotFoundError{Resource: "company"}
		}
	}

	var c Company
	err = r.db().QueryRow(`
		SELECT id, created_at, updated_at, name FROM companies WHERE id = ? LIMIT 1
	`, id).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name)
	return c, err
}
