// Package store writes license blocks into a PostGIS table.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/licblocks/internal/rfgf"
)

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

// columns are the attribute columns in insert order. The geometry column
// comes last.
var columns = []string{
	"rfgf_link", "gos_reg_num", "date_register", "license_purpose", "resource_type",
	"license_block_name", "region", "status", "user_info", "licensor",
	"license_doc_requisites", "license_update_info", "license_re_registration_info",
	"license_cancel_order_info", "date_stop_subsoil_usage",
	"limit_conditions_stop_subsoil_usage", "date_license_stop",
	"previous_license_info", "coords_text", "source_gcs",
}

// Store is a PostGIS sink for license blocks.
type Store struct {
	db    *sql.DB
	table string
}

// Open connects to PostgreSQL and targets table.
func Open(dsn, table string) (*Store, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	return &Store{db: db, table: table}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the PostGIS extension and the block table.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis`,
		schemaSQL(s.table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING GIST (geom)`,
			pq.QuoteIdentifier(s.table+"_geom_idx"), pq.QuoteIdentifier(s.table)),
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

// SaveBlocks inserts blocks in a single transaction.
func (s *Store) SaveBlocks(ctx context.Context, blocks []rfgf.Block) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, insertSQL(s.table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, b := range blocks {
		if _, err = stmt.ExecContext(ctx, insertArgs(b)...); err != nil {
			return fmt.Errorf("insert block %q: %w", b.License.GosRegNum, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	log.Info().
		Str("table", s.table).
		Int("blocks", len(blocks)).
		Msg("Blocks saved to PostGIS")

	return nil
}

func schemaSQL(table string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\tid SERIAL PRIMARY KEY", pq.QuoteIdentifier(table))
	for _, c := range columns {
		fmt.Fprintf(&b, ",\n\t%s TEXT NOT NULL DEFAULT ''", c)
	}
	b.WriteString(",\n\tgeom geometry(MultiPolygon, 4326)\n)")

	return b.String()
}

func insertSQL(table string) string {
	params := make([]string, 0, len(columns)+1)
	for i := range columns {
		params = append(params, fmt.Sprintf("$%d", i+1))
	}
	geomParam := fmt.Sprintf("ST_Multi(ST_GeomFromText($%d, 4326))", len(columns)+1)

	return fmt.Sprintf("INSERT INTO %s (%s, geom) VALUES (%s, %s)",
		pq.QuoteIdentifier(table),
		strings.Join(columns, ", "),
		strings.Join(params, ", "),
		geomParam)
}

func insertArgs(b rfgf.Block) []interface{} {
	l := b.License
	return []interface{}{
		l.RfgfLink, l.GosRegNum, l.DateRegister, l.LicensePurpose, l.ResourceType,
		l.LicenseBlockName, l.Region, l.Status, l.UserInfo, l.Licensor,
		l.LicenseDocRequisites, l.LicenseUpdateInfo, l.LicenseReRegistrationInfo,
		l.LicenseCancelOrderInfo, l.DateStopSubsoilUsage,
		l.LimitConditionsStopSubsoilUsage, l.DateLicenseStop,
		l.PreviousLicenseInfo, l.CoordsText, l.SourceGCS,
		wkt.MarshalString(b.Geometry),
	}
}
