// ABOUTME: SQLite implementation of the Gateway contract
// ABOUTME: Backs offline mode and tests with a local relational store
package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/tessaly/vendordesk/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS vendors (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT,
	city TEXT,
	state TEXT,
	zip_code TEXT,
	phone TEXT,
	email TEXT,
	website TEXT,
	notes TEXT,
	contact_preferences TEXT,
	process_notes TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vendors_name ON vendors(name);

CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT,
	description TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
CREATE INDEX IF NOT EXISTS idx_products_type ON products(type);

CREATE TABLE IF NOT EXISTS representatives (
	id TEXT PRIMARY KEY,
	vendor_id TEXT NOT NULL,
	name TEXT NOT NULL,
	email TEXT,
	phone TEXT,
	title TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY (vendor_id) REFERENCES vendors(id)
);

CREATE INDEX IF NOT EXISTS idx_representatives_vendor_id ON representatives(vendor_id);

CREATE TABLE IF NOT EXISTS vendor_products (
	vendor_id TEXT NOT NULL,
	product_id TEXT NOT NULL,
	PRIMARY KEY (vendor_id, product_id),
	FOREIGN KEY (vendor_id) REFERENCES vendors(id),
	FOREIGN KEY (product_id) REFERENCES products(id)
);
`

// tableColumns whitelists the writable columns per table; filter fields
// are validated against the same lists.
var tableColumns = map[string][]string{
	models.TableVendors: {
		"id", "name", "address", "city", "state", "zip_code", "phone",
		"email", "website", "notes", "contact_preferences", "process_notes",
		"created_at",
	},
	models.TableProducts: {
		"id", "name", "type", "description", "created_at",
	},
	models.TableRepresentatives: {
		"id", "vendor_id", "name", "email", "phone", "title", "created_at",
	},
}

// SQLite serves the Gateway contract from a local database file. It is
// the store behind --offline and the in-memory test fixture.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

func Open(path string, log zerolog.Logger) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single connection avoids database locked errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db, log: log}, nil
}

func OpenMemory(log zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db, log: log}, nil
}

func (g *SQLite) Close() error {
	return g.db.Close()
}

func (g *SQLite) FetchAll(ctx context.Context, table string) ([]models.Row, error) {
	if table == models.TableRepresentatives {
		return g.queryRows(ctx, "fetchAll", table, `
			SELECT r.id, r.vendor_id, r.name, r.email, r.phone, r.title,
			       r.created_at, v.name AS vendor_name
			FROM representatives r
			LEFT JOIN vendors v ON v.id = r.vendor_id
			ORDER BY r.created_at`)
	}

	cols, err := columnsFor(table)
	if err != nil {
		return nil, &Error{Op: "fetchAll", Table: table, Err: err}
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at", strings.Join(cols, ", "), table)
	return g.queryRows(ctx, "fetchAll", table, query)
}

func (g *SQLite) FetchFiltered(ctx context.Context, table, field, term string) ([]models.Row, error) {
	cols, err := columnsFor(table)
	if err != nil {
		return nil, &Error{Op: "fetchFiltered", Table: table, Err: err}
	}
	if !contains(cols, field) {
		return nil, &Error{Op: "fetchFiltered", Table: table, Message: "unknown field " + field}
	}

	pattern := "%" + strings.ToLower(term) + "%"
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE LOWER(%s) LIKE ? ORDER BY created_at",
		strings.Join(cols, ", "), table, field)
	return g.queryRows(ctx, "fetchFiltered", table, query, pattern)
}

func (g *SQLite) FetchMatching(ctx context.Context, table, field, value string) ([]models.Row, error) {
	cols, err := columnsFor(table)
	if err != nil {
		return nil, &Error{Op: "fetchMatching", Table: table, Err: err}
	}
	if !contains(cols, field) {
		return nil, &Error{Op: "fetchMatching", Table: table, Message: "unknown field " + field}
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = ? ORDER BY created_at",
		strings.Join(cols, ", "), table, field)
	return g.queryRows(ctx, "fetchMatching", table, query, value)
}

func (g *SQLite) FetchJoined(ctx context.Context, joinTable, filterField, id string) ([]models.Row, error) {
	if joinTable != models.TableVendorProducts {
		return nil, &Error{Op: "fetchJoined", Table: joinTable, Message: "unsupported join table"}
	}

	switch filterField {
	case "product_id":
		return g.queryRows(ctx, "fetchJoined", joinTable, `
			SELECT v.id, v.name, v.address, v.city, v.state, v.zip_code,
			       v.phone, v.email, v.website, v.notes,
			       v.contact_preferences, v.process_notes, v.created_at,
			       p.name AS product_name
			FROM vendor_products vp
			JOIN vendors v ON v.id = vp.vendor_id
			JOIN products p ON p.id = vp.product_id
			WHERE vp.product_id = ?`, id)
	case "vendor_id":
		return g.queryRows(ctx, "fetchJoined", joinTable, `
			SELECT p.id, p.name, p.type, p.description, p.created_at
			FROM vendor_products vp
			JOIN products p ON p.id = vp.product_id
			WHERE vp.vendor_id = ?`, id)
	default:
		return nil, &Error{Op: "fetchJoined", Table: joinTable, Message: "unsupported join filter " + filterField}
	}
}

func (g *SQLite) Insert(ctx context.Context, table string, record models.Row) (models.Row, error) {
	cols, err := columnsFor(table)
	if err != nil {
		return nil, &Error{Op: "insert", Table: table, Err: err}
	}

	// The store assigns identity and timestamps, like the remote does.
	id := uuid.NewString()
	stored := models.Row{"id": id, "created_at": time.Now().UTC().Format(time.RFC3339)}
	for k, v := range record {
		if k == "id" || k == "created_at" || !contains(cols, k) {
			continue
		}
		stored[k] = v
	}

	names := make([]string, 0, len(stored))
	marks := make([]string, 0, len(stored))
	args := make([]any, 0, len(stored))
	for _, col := range cols {
		v, ok := stored[col]
		if !ok {
			continue
		}
		names = append(names, col)
		marks = append(marks, "?")
		args = append(args, v)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(marks, ", "))
	if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
		return nil, &Error{Op: "insert", Table: table, Err: err}
	}

	return g.get(ctx, table, id)
}

func (g *SQLite) Update(ctx context.Context, table, id string, patch models.Row) (models.Row, error) {
	cols, err := columnsFor(table)
	if err != nil {
		return nil, &Error{Op: "update", Table: table, Err: err}
	}

	sets := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch)+1)
	for _, col := range cols {
		if col == "id" || col == "created_at" {
			continue
		}
		v, ok := patch[col]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return g.get(ctx, table, id)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", "))
	res, err := g.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{Op: "update", Table: table, Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, &Error{Op: "update", Table: table, Message: "no row matched id " + id}
	}

	return g.get(ctx, table, id)
}

func (g *SQLite) Delete(ctx context.Context, table, id string) error {
	if _, err := columnsFor(table); err != nil {
		return &Error{Op: "delete", Table: table, Err: err}
	}
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", table)
	if _, err := g.db.ExecContext(ctx, query, id); err != nil {
		return &Error{Op: "delete", Table: table, Err: err}
	}
	return nil
}

// LinkVendorProduct records that a vendor offers a product. The join table
// is read-only for the portal workflows; this exists for seeding and the
// CLI link command.
func (g *SQLite) LinkVendorProduct(ctx context.Context, vendorID, productID string) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO vendor_products (vendor_id, product_id) VALUES (?, ?)`,
		vendorID, productID)
	if err != nil {
		return &Error{Op: "link", Table: models.TableVendorProducts, Err: err}
	}
	return nil
}

func (g *SQLite) get(ctx context.Context, table, id string) (models.Row, error) {
	cols, err := columnsFor(table)
	if err != nil {
		return nil, &Error{Op: "get", Table: table, Err: err}
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", strings.Join(cols, ", "), table)
	rows, err := g.queryRows(ctx, "get", table, query, id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &Error{Op: "get", Table: table, Message: "no row with id " + id}
	}
	return rows[0], nil
}

func (g *SQLite) queryRows(ctx context.Context, op, table, query string, args ...any) ([]models.Row, error) {
	start := time.Now()
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &Error{Op: op, Table: table, Err: err}
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, &Error{Op: op, Table: table, Err: err}
	}

	var out []models.Row
	for rows.Next() {
		values := make([]sql.NullString, len(names))
		scan := make([]any, len(names))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, &Error{Op: op, Table: table, Err: err}
		}
		row := models.Row{}
		for i, name := range names {
			if values[i].Valid {
				row[name] = values[i].String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Op: op, Table: table, Err: err}
	}

	g.log.Debug().
		Str("op", op).
		Str("table", table).
		Int("rows", len(out)).
		Dur("elapsed", time.Since(start)).
		Msg("local query")
	return out, nil
}

func columnsFor(table string) ([]string, error) {
	cols, ok := tableColumns[table]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", table)
	}
	return cols, nil
}

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
