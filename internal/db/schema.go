// Package db owns database bootstrap: schema creation and development
// seed data.
package db

import "database/sql"

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		name VARCHAR(255) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		email VARCHAR(255) NOT NULL,
		name VARCHAR(255) NULL,
		phone VARCHAR(64) NULL,
		role ENUM('MANAGER','DRIVER','PASSENGER') NOT NULL,
		password_hash VARCHAR(255) NULL,
		company_id BIGINT UNSIGNED NULL,
		UNIQUE KEY uq_users_email (email),
		KEY idx_users_company (company_id),
		CONSTRAINT fk_users_company FOREIGN KEY (company_id) REFERENCES companies(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		name VARCHAR(255) NULL,
		plate VARCHAR(32) NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		company_id BIGINT UNSIGNED NULL,
		driver_id BIGINT UNSIGNED NULL,
		UNIQUE KEY uq_vehicles_plate (plate),
		KEY idx_vehicles_company (company_id),
		KEY idx_vehicles_driver (driver_id),
		CONSTRAINT fk_vehicles_company FOREIGN KEY (company_id) REFERENCES companies(id),
		CONSTRAINT fk_vehicles_driver FOREIGN KEY (driver_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS daily_routes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		company_id BIGINT UNSIGNED NULL,
		date DATE NOT NULL,
		vehicle_id BIGINT UNSIGNED NULL,
		driver_id BIGINT UNSIGNED NULL,
		status ENUM('PENDING','IN_PROGRESS','FINISHED','CANCELLED') NOT NULL DEFAULT 'PENDING',
		last_lat DOUBLE NULL,
		last_lng DOUBLE NULL,
		last_position_at DATETIME NULL,
		KEY idx_daily_routes_company (company_id),
		KEY idx_daily_routes_driver (driver_id),
		CONSTRAINT fk_daily_routes_company FOREIGN KEY (company_id) REFERENCES companies(id),
		CONSTRAINT fk_daily_routes_vehicle FOREIGN KEY (vehicle_id) REFERENCES vehicles(id),
		CONSTRAINT fk_daily_routes_driver FOREIGN KEY (driver_id) REFERENCES users(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
