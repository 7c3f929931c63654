package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_type VARCHAR(64) NOT NULL UNIQUE,
		description TEXT NOT NULL,
		permissions JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(128) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password TEXT NOT NULL,
		mobile VARCHAR(32),
		user_type UUID REFERENCES roles(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS waste_bins (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		bin_code VARCHAR(16) NOT NULL UNIQUE,
		name TEXT,
		location TEXT NOT NULL DEFAULT 'warehouse',
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		current_waste_level NUMERIC(12,3) NOT NULL DEFAULT 0,
		threshold_level NUMERIC(12,3),
		capacity NUMERIC(12,3),
		bin_type VARCHAR(32) NOT NULL CHECK (bin_type IN ('Food', 'Paper', 'Plastic')),
		availability BOOLEAN NOT NULL DEFAULT TRUE,
		owner UUID REFERENCES users(id),
		status VARCHAR(32) NOT NULL DEFAULT 'NotPurchased',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	// created_by is TEXT on purpose: legacy rows carry raw creator strings
	// that are not valid UUIDs.
	`CREATE TABLE IF NOT EXISTS garbage (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		waste_weight NUMERIC(12,3) NOT NULL CHECK (waste_weight >= 0),
		garbage_category VARCHAR(64) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Pending',
		bin_id UUID NOT NULL REFERENCES waste_bins(id),
		created_by TEXT NOT NULL,
		updated_by TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_garbage_bin_id ON garbage (bin_id);`,
	`CREATE INDEX IF NOT EXISTS idx_garbage_created_by ON garbage (created_by);`,
	`CREATE INDEX IF NOT EXISTS idx_garbage_created_at ON garbage (created_at);`,
	`CREATE TABLE IF NOT EXISTS garbage_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		garbage_id UUID NOT NULL REFERENCES garbage(id),
		price NUMERIC(12,2) NOT NULL,
		currency VARCHAR(8) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'Pending',
		date_and_time TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS trucks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		truck_code VARCHAR(16) NOT NULL UNIQUE,
		capacity NUMERIC(12,3) NOT NULL,
		current_waste_load NUMERIC(12,3) NOT NULL DEFAULT 0,
		driver UUID NOT NULL REFERENCES users(id),
		status VARCHAR(32) NOT NULL DEFAULT 'Available',
		current_location TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		assigned_route UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS collection_routes (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		truck_id UUID NOT NULL REFERENCES trucks(id),
		delivery_status VARCHAR(32) NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS collection_route_requests (
		route_id UUID NOT NULL REFERENCES collection_routes(id) ON DELETE CASCADE,
		request_id UUID NOT NULL REFERENCES garbage_requests(id),
		PRIMARY KEY (route_id, request_id)
	);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		payment_id VARCHAR(64) NOT NULL,
		order_id VARCHAR(64),
		payhere_amount NUMERIC(12,2),
		payhere_currency VARCHAR(8),
		status_code VARCHAR(8),
		custom_1 TEXT,
		custom_2 TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS bin_payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		payment_id VARCHAR(64) NOT NULL,
		order_id VARCHAR(64),
		payhere_amount NUMERIC(12,2),
		payhere_currency VARCHAR(8),
		status_code VARCHAR(8),
		custom_1 TEXT,
		custom_2 TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS bin_collection_requests (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		bin_id VARCHAR(64) NOT NULL,
		user_id VARCHAR(64) NOT NULL,
		collection_date VARCHAR(32) NOT NULL,
		collection_time VARCHAR(32) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		order_id VARCHAR(64) NOT NULL UNIQUE,
		amount NUMERIC(12,2) NOT NULL,
		payment_status VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
