package database

import (
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sqlx.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS user_roles (
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		role TEXT NOT NULL CHECK (role IN ('admin','manager','operator')),
		UNIQUE (user_id, role)
	);

	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT NOT NULL PRIMARY KEY,
		number TEXT NOT NULL,
		client TEXT NOT NULL,
		description TEXT,
		start_date TEXT,
		end_date TEXT,
		monthly_value REAL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'ativo' CHECK (status IN ('ativo','encerrado','suspenso')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		cpf TEXT,
		role_title TEXT,
		phone TEXT,
		email TEXT,
		admission_date TEXT,
		salary REAL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'ativo' CHECK (status IN ('ativo','inativo','ferias','afastado')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS vehicles (
		id TEXT NOT NULL PRIMARY KEY,
		plate TEXT NOT NULL,
		model TEXT,
		brand TEXT,
		year INTEGER DEFAULT 0,
		renavam TEXT,
		fuel_type TEXT,
		status TEXT NOT NULL DEFAULT 'ativo' CHECK (status IN ('ativo','manutencao','inativo')),
		contract_id TEXT REFERENCES contracts(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS equipment (
		id TEXT NOT NULL PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		serial_number TEXT,
		location TEXT,
		status TEXT NOT NULL DEFAULT 'operante' CHECK (status IN ('operante','manutencao','inoperante','calibracao')),
		status_changed_at TEXT,
		contract_id TEXT REFERENCES contracts(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS fuel_records (
		id TEXT NOT NULL PRIMARY KEY,
		vehicle_id TEXT NOT NULL REFERENCES vehicles(id),
		employee_id TEXT REFERENCES employees(id),
		record_date TEXT NOT NULL,
		liters REAL DEFAULT 0,
		price_per_liter REAL DEFAULT 0,
		total_value REAL DEFAULT 0,
		odometer INTEGER DEFAULT 0,
		fuel_type TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS mileage_records (
		id TEXT NOT NULL PRIMARY KEY,
		vehicle_id TEXT NOT NULL REFERENCES vehicles(id),
		month TEXT NOT NULL,
		km REAL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS energy_bills (
		id TEXT NOT NULL PRIMARY KEY,
		installation TEXT NOT NULL,
		reference_month TEXT,
		due_date TEXT,
		amount REAL DEFAULT 0,
		consumption_kwh REAL DEFAULT 0,
		paid INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS internet_bills (
		id TEXT NOT NULL PRIMARY KEY,
		provider TEXT NOT NULL,
		reference_month TEXT,
		due_date TEXT,
		amount REAL DEFAULT 0,
		paid INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS invoices (
		id TEXT NOT NULL PRIMARY KEY,
		number TEXT NOT NULL,
		contract_id TEXT REFERENCES contracts(id),
		issue_date TEXT,
		due_date TEXT,
		amount REAL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pendente' CHECK (status IN ('pendente','paga','cancelada')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS inventory (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		quantity REAL DEFAULT 0,
		min_quantity REAL DEFAULT 0,
		unit TEXT,
		location TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS calibrations (
		id TEXT NOT NULL PRIMARY KEY,
		equipment_id TEXT NOT NULL REFERENCES equipment(id),
		last_date TEXT,
		next_date TEXT,
		certificate TEXT,
		provider TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS seals (
		id TEXT NOT NULL PRIMARY KEY,
		code TEXT NOT NULL,
		equipment_id TEXT REFERENCES equipment(id),
		installed_at TEXT,
		status TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS toll_tags (
		id TEXT NOT NULL PRIMARY KEY,
		tag_code TEXT NOT NULL,
		vehicle_id TEXT REFERENCES vehicles(id),
		provider TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sla_metrics (
		id TEXT NOT NULL PRIMARY KEY,
		contract_id TEXT REFERENCES contracts(id),
		reference_month TEXT,
		target REAL DEFAULT 0,
		achieved REAL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS customer_satisfaction (
		id TEXT NOT NULL PRIMARY KEY,
		contract_id TEXT REFERENCES contracts(id),
		survey_date TEXT,
		score REAL DEFAULT 0,
		comments TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS infrastructure_services (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		location TEXT,
		requested_at TEXT,
		resolved_at TEXT,
		status TEXT NOT NULL DEFAULT 'aberto' CHECK (status IN ('aberto','em_andamento','concluido')),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS kanban_columns (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		position INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS pending_issues (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		kanban_column_id TEXT REFERENCES kanban_columns(id),
		assignee TEXT,
		priority TEXT,
		due_date TEXT,
		position INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS audit_log (
		id TEXT NOT NULL PRIMARY KEY,
		actor_id TEXT,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT,
		message TEXT NOT NULL,
		level TEXT NOT NULL DEFAULT 'info',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_status_end ON contracts(status, end_date);
	CREATE INDEX IF NOT EXISTS idx_invoices_status_due ON invoices(status, due_date);
	CREATE INDEX IF NOT EXISTS idx_mileage_vehicle_month ON mileage_records(vehicle_id, month);
	CREATE INDEX IF NOT EXISTS idx_audit_created ON audit_log(created_at);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
