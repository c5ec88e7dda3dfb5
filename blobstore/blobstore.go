// Package blobstore fetches binary case documents from the external Postgres
// table by primary key.
package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/casevault/ocrbatch/config"
	"github.com/casevault/ocrbatch/errx"
)

// Error registry for blobstore
var (
	blobErrors = errx.NewRegistry("BLOB")

	ErrNotFound    = blobErrors.Register("NOT_FOUND", errx.TypeNotFound, "Blob not found")
	ErrUnavailable = blobErrors.Register("UNAVAILABLE", errx.TypeUnavailable, "Blob store unavailable")
	ErrQueryFailed = blobErrors.Register("QUERY_FAILED", errx.TypeInternal, "Blob lookup failed")
)

// IsNotFound reports whether the given blob id had no matching row.
func IsNotFound(err error) bool {
	return errx.IsCode(err, ErrNotFound)
}

// IsUnavailable reports whether the store could not be reached at all.
func IsUnavailable(err error) bool {
	return errx.IsCode(err, ErrUnavailable)
}

// Blob is one fetched row: the stored filename and the binary payload.
type Blob struct {
	ID       int64  `db:"cb_serial"`
	Filename string `db:"cb_file_path"`
	Data     []byte `db:"cb_binary"`
}

const fetchQuery = `SELECT cb_serial, cb_file_path, cb_binary FROM case_blob WHERE cb_serial = $1`

// Fetcher looks up blobs by id. Each lookup opens its own connection and
// releases it on every exit path; nothing is held across batch items.
type Fetcher struct {
	dsn string
}

// NewFetcher creates a Fetcher from the database configuration.
func NewFetcher(cfg config.Database) *Fetcher {
	return &Fetcher{dsn: BuildDSN(cfg)}
}

// BuildDSN renders a lib/pq keyword/value connection string.
func BuildDSN(cfg config.Database) string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=disable connect_timeout=%d",
		cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Password,
		int(cfg.ConnectTimeout.Seconds()),
	)
}

// Fetch retrieves one blob by primary key.
func (f *Fetcher) Fetch(ctx context.Context, id int64) (Blob, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", f.dsn)
	if err != nil {
		return Blob{}, blobErrors.NewWithCause(ErrUnavailable, err)
	}
	defer db.Close()

	var blob Blob
	if err := db.GetContext(ctx, &blob, fetchQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Blob{}, blobErrors.New(ErrNotFound).WithDetail("id", id)
		}
		return Blob{}, blobErrors.NewWithCause(ErrQueryFailed, err).WithDetail("id", id)
	}
	return blob, nil
}
