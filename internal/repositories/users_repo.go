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

// UserCompany is the embedded company summary on user payloads.
type UserCompany struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User is the wire shape of a user record. The password hash never
// leaves the repository.
type User struct {
	ID        int64        `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Email     string       `json:"email"`
	Name      string       `json:"name,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Role      domain.Role  `json:"role"`
	Company   *UserCompany `json:"company,omitempty"`
	CompanyID *int64       `json:"-"`
}

// Credentials is the subset of a user row needed to verify a login.
type Credentials struct {
	User         User
	PasswordHash string
}

type UsersRepository struct {
	DB *sql.DB
}

func (r UsersRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return config.DB
}

const userColumns = `id, created_at, updated_at, email, COALESCE(name,''), COALESCE(phone,''), role, company_id`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	var companyID sql.NullInt64
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Email, &u.Name, &u.Phone, &u.Role, &companyID)
	if err != nil {
		return User{}, err
	}
	if companyID.Valid {
		u.CompanyID = &companyID.Int64
	}
	return u, nil
}

// List returns one page of users visible under the predicate, newest
// first.
func (r UsersRepository) List(p scope.Predicate, cursor int64, limit int) (pagination.Page[User], error) {
	conds, args := p.Where()
	return pagination.ListPage(conds, args, cursor, limit,
		func(u User) int64 { return u.ID },
		func(conds []string, args []any, limit int) ([]User, error) {
			query := `SELECT ` + userColumns + ` FROM users WHERE ` + joinAnd(conds) + ` ORDER BY id DESC LIMIT ?`
			args = append(args, limit)
			rows, err := r.db().Query(query, args...)
			if err != nil {
				return nil, err
			}
			defer rows.Close()

			out := []User{}
			for rows.Next() {
				u, err := scanUser(rows)
				if err != nil {
					return nil, err
				}
				out = append(out, u)
			}
			return out, rows.Err()
		})
}

// GetByID loads a user without any visibility predicate; callers own the
// permission check (self-update, manager same-company).
func (r UsersRepository) GetByID(id int64) (User, error) {
	u, err := scanUser(r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, domain.NotFoundError{Resource: "user"}
		}
		return User{}, err
	}
	return u, nil
}

// GetProfile loads a user together with its company summary.
func (r UsersRepository) GetProfile(id int64) (User, error) {
	var u User
	var companyID sql.NullInt64
	var coID sql.NullInt64
	var coName sql.NullString
	err := r.db().QueryRow(`
		SELECT u.id, u.created_at, u.updated_at, u.email, COALESCE(u.name,''), COALESCE(u.phone,''), u.role, u.company_id,
			c.id, c.name
		FROM users u
		LEFT JOIN companies c ON c.id = u.company_id
		WHERE u.id = ? LIMIT 1
	`, id).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Email, &u.Name, &u.Phone, &u.Role, &companyID, &coID, &coName)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, domain.NotFoundError{Resource: "user"}
		}
		return User{}, err
	}
	if companyID.Valid {
		u.CompanyID = &companyID.Int64
	}
	if coID.Valid {
		u.Company = &UserCompany{ID: coID.Int64, Name: coName.String}
	}
	return u, nil
}

// GetCredentials loads the login row for an email.
func (r UsersRepository) GetCredentials(email string) (Credentials, error) {
	var c Credentials
	var companyID sql.NullInt64
	var coID sql.NullInt64
	var coName sql.NullString
	err := r.db().QueryRow(`
		SELECT u.id, u.created_at, u.updated_at, u.email, COALESCE(u.name,''), COALESCE(u.phone,''), u.role, u.company_id,
			COALESCE(u.password_hash,''), c.id, c.name
		FROM users u
		LEFT JOIN companies c ON c.id = u.company_id
		WHERE u.email = ? LIMIT 1
	`, email).Scan(
		&c.User.ID, &c.User.CreatedAt, &c.User.UpdatedAt, &c.User.Email, &c.User.Name, &c.User.Phone,
		&c.User.Role, &companyID, &c.PasswordHash, &coID, &coName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Credentials{}, domain.NotFoundError{Resource: "user"}
		}
		return Credentials{}, err
	}
	if companyID.Valid {
		c.User.CompanyID = &companyID.Int64
	}
	if coID.Valid {
		c.User.Company = &UserCompany{ID: coID.Int64, Name: coName.String}
	}
	return c, nil
}

// Create inserts a user. Duplicate emails map to a conflict error.
func (r UsersRepository) Create(email, name, phone string, role domain.Role, companyID *int64, passwordHash string) (User, error) {
	var companyArg any
	if companyID != nil {
		companyArg = *companyID
	}
	res, err := r.db().Exec(`
		INSERT INTO users (email, name, phone, role, company_id, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
	`, email, nullIfEmpty(name), nullIfEmpty(phone), string(role), companyArg, passwordHash)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			return User{}, domain.ConflictError{Resource: "user", Msg: "email already in use"}
		}
		return User{}, err
	}
	id, _ := res.LastInsertId()
	return r.GetByID(id)
}

// Update applies a partial update; nil fields are left untouched.
func (r UsersRepository) Update(id int64, name, phone *string, role *domain.Role) (User, error) {
	sets := []string{}
	args := []any{}
	if name != nil {
		sets = append(sets, "name = ?")
		args = append(args, nullIfEmpty(*name))
	}
	if phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, nullIfEmpty(*phone))
	}
	if role != nil {
		sets = append(sets, "role = ?")
		args = append(args, string(*role))
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = NOW()")
		args = append(args, id)
		if _, err := r.db().Exec(`UPDATE users SET `+joinComma(sets)+` WHERE id = ?`, args...); err != nil {
			return User{}, err
		}
	}
	return r.GetByID(id)
}

// IsDriverInCompany reports whether the user exists, is a DRIVER, and
// belongs to the given company. Used to validate driver assignments.
func (r UsersRepository) IsDriverInCompany(driverID, companyID int64) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE id = ? AND company_id = ? AND role = ?
	`, driverID, companyID, string(domain.RoleDriver)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
