package db

import (
	"database/sql"
	"time"

	"subite-backend/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// DevPassword is the password every seeded account gets.
const DevPassword = "subite123"

type seedUser struct {
	email   string
	name    string
	phone   string
	role    string
	company int // index into seeded companies, -1 for none
}

// Seed populates a development database with companies, users, vehicles
// and routes. It is idempotent: when users already exist it does
// nothing.
func Seed(db *sql.DB) error {
	log := logger.Get()

	var existing int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		log.Info().Int("users", existing).Msg("seed skipped, data already present")
		return nil
	}

	companies := []string{"Transportes Medellín", "Transporte Valle", "Transportes Bogotá"}
	companyIDs := make([]int64, 0, len(companies))
	for _, name := range companies {
		res, err := db.Exec(`INSERT INTO companies (name, created_at, updated_at) VALUES (?, NOW(), NOW())`, name)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		companyIDs = append(companyIDs, id)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DevPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []seedUser{
		{"manager@medellin.com", "Carlos Rodríguez", "+57 300 123 4567", "MANAGER", 0},
		{"manager@valle.com", "María González", "+57 310 234 5678", "MANAGER", 1},
		{"manager@bogota.com", "Luis Martínez", "+57 320 345 6789", "MANAGER", 2},
		{"driver1@medellin.com", "Andrés Pérez", "+57 301 111 2222", "DRIVER", 0},
		{"driver2@medellin.com", "Jorge Sánchez", "+57 302 333 4444", "DRIVER", 0},
		{"driver1@valle.com", "Ana Ramírez", "+57 311 555 6666", "DRIVER", 1},
		{"driver1@bogota.com", "Pedro Torres", "+57 321 777 8888", "DRIVER", 2},
		{"passenger1@example.com", "Laura Jiménez", "+57 305 111 1111", "PASSENGER", 0},
		{"passenger2@example.com", "Diego Vargas", "+57 315 222 2222", "PASSENGER", 1},
		{"passenger3@example.com", "Sofia Castro", "+57 325 333 3333", "PASSENGER", 2},
		{"passenger4@example.com", "Miguel Herrera", "+57 306 444 4444", "PASSENGER", 0},
		{"admin@subite.com", "Administrador Sistema", "+57 300 000 0000", "MANAGER", -1},
	}

	userIDs := map[string]int64{}
	for _, u := range users {
		var companyArg any
		if u.company >= 0 {
			companyArg = companyIDs[u.company]
		}
		res, err := db.Exec(`
			INSERT INTO users (email, name, phone, role, company_id, password_hash, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())
		`, u.email, u.name, u.phone, u.role, companyArg, string(hash))
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		userIDs[u.email] = id
	}

	vehicles := []struct {
		name, plate string
		active      bool
		company     int
		driver      string
	}{
		{"Buseta 1", "MED-101", true, 0, "driver1@medellin.com"},
		{"Buseta 2", "MED-102", true, 0, "driver2@medellin.com"},
		{"Buseta 3", "MED-103", false, 0, ""},
		{"Van Valle 1", "VAL-201", true, 1, "driver1@valle.com"},
		{"Bus Bogotá 1", "BOG-301", true, 2, "driver1@bogota.com"},
	}

	vehicleIDs := make([]int64, 0, len(vehicles))
	for _, v := range vehicles {
		var driverArg any
		if v.driver != "" {
			driverArg = userIDs[v.driver]
		}
		res, err := db.Exec(`
			INSERT INTO vehicles (name, plate, active, company_id, driver_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, NOW(), NOW())
		`, v.name, v.plate, v.active, companyIDs[v.company], driverArg)
		if err != nil {
			return err
		}
		id, _ := res.LastInsertId()
		vehicleIDs = append(vehicleIDs, id)
	}

	today := time.Now().Format("2006-01-02")
	routes := []struct {
		company int
		vehicle int
		driver  string
		status  string
	}{
		{0, 0, "driver1@medellin.com", "IN_PROGRESS"},
		{0, 1, "driver2@medellin.com", "PENDING"},
		{1, 3, "driver1@valle.com", "PENDING"},
		{2, 4, "driver1@bogota.com", "FINISHED"},
	}
	for _, rt := range routes {
		_, err := db.Exec(`
			INSERT INTO daily_routes (company_id, date, vehicle_id, driver_id, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, NOW(), NOW())
		`, companyIDs[rt.company], today, vehicleIDs[rt.vehicle], userIDs[rt.driver], rt.status)
		if err != nil {
			return err
		}
	}

	log.Info().
		Int("companies", len(companies)).
		Int("users", len(users)).
		Int("vehicles", len(vehicles)).
		Int("routes", len(routes)).
		Msg("seed completed")
	return nil
}
