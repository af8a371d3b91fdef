package storage

import (
	"context"

	"github.com/ecosense/eco-ingest/pkg/entities"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ReadingRepository accepts one structured insert per processed reading.
// Writes are insert-only; duplicate deliveries produce duplicate rows.
type ReadingRepository interface {
	SaveReading(ctx context.Context, record *entities.LogRecord) error
	Close() error
}

type PostgresReadingRepo struct {
	db  *sqlx.DB
	log *logrus.Entry
}

const createReadingsTable = `CREATE TABLE IF NOT EXISTS eco_readings (
	id BIGSERIAL PRIMARY KEY,
	device_id TEXT NOT NULL,
	cwa_type VARCHAR(50) NOT NULL,
	cwa_location VARCHAR(100),
	cwa_temp DOUBLE PRECISION,
	cwa_humidity DOUBLE PRECISION,
	cwa_daily_high DOUBLE PRECISION,
	cwa_daily_low DOUBLE PRECISION,
	local_temp DOUBLE PRECISION,
	local_humidity DOUBLE PRECISION,
	local_gps_lat VARCHAR(20),
	local_gps_long VARCHAR(20),
	recorded_at TIMESTAMPTZ,
	device_status BOOLEAN,
	light_on BOOLEAN,
	detection JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const insertReading = `INSERT INTO eco_readings (
	device_id, cwa_type, cwa_location,
	cwa_temp, cwa_humidity, cwa_daily_high, cwa_daily_low,
	local_temp, local_humidity, local_gps_lat, local_gps_long,
	recorded_at, device_status, light_on, detection
) VALUES (
	:device_id, :cwa_type, :cwa_location,
	:cwa_temp, :cwa_humidity, :cwa_daily_high, :cwa_daily_low,
	:local_temp, :local_humidity, :local_gps_lat, :local_gps_long,
	:recorded_at, :device_status, :light_on, :detection
)`

func NewPostgresReadingRepository(databaseURL string, log *logrus.Entry) (*PostgresReadingRepo, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to postgres")
	}

	repo := &PostgresReadingRepo{db: db, log: log}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	log.Println("postgres connected")
	return repo, nil
}

func (r *PostgresReadingRepo) initializeSchema() error {
	if _, err := r.db.Exec(createReadingsTable); err != nil {
		return errors.Wrap(err, "initialize readings schema")
	}
	return nil
}

func (r *PostgresReadingRepo) SaveReading(ctx context.Context, record *entities.LogRecord) error {
	if _, err := r.db.NamedExecContext(ctx, insertReading, record); err != nil {
		return errors.Wrap(err, "insert reading")
	}
	return nil
}

func (r *PostgresReadingRepo) Close() error {
	return r.db.Close()
}
