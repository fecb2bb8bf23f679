package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/splice-sistemas/splice-be/internal/importer"
)

// ErrNotFound is returned when a row id does not exist.
var ErrNotFound = errors.New("registro não encontrado")

// DependencyError reports rows in other tables still referencing a record.
type DependencyError struct {
	Count      int64
	References []string // Portuguese labels of the referencing modules
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("registro referenciado por %d registro(s) em: %s", e.Count, strings.Join(e.References, ", "))
}

// ListOptions controls search and pagination.
type ListOptions struct {
	Search string
	Limit  int
	Offset int
}

// ListResult is one page of rows plus the unpaginated total.
type ListResult struct {
	Items []map[string]any `json:"items"`
	Total int64            `json:"total"`
}

// Store is the generic CRUD layer shared by every module descriptor.
type Store struct {
	db *sqlx.DB
}

// NewStore creates a Store over the given database.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// List returns one page of a module's rows, optionally filtered by a
// case-insensitive substring search over the descriptor's search columns.
func (s *Store) List(ctx context.Context, d Descriptor, opts ListOptions) (ListResult, error) {
	where := ""
	var args []any
	if opts.Search != "" && len(d.SearchColumns) > 0 {
		clauses := make([]string, len(d.SearchColumns))
		for i, col := range d.SearchColumns {
			clauses[i] = col + " LIKE ? COLLATE NOCASE"
			args = append(args, "%"+opts.Search+"%")
		}
		where = " WHERE (" + strings.Join(clauses, " OR ") + ")"
	}

	result := ListResult{Items: []map[string]any{}}
	if err := s.db.GetContext(ctx, &result.Total, "SELECT COUNT(*) FROM "+d.Table+where, args...); err != nil {
		return result, err
	}

	query := "SELECT * FROM " + d.Table + where + " ORDER BY created_at DESC, id"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return result, err
	}
	defer rows.Close()

	for rows.Next() {
		item := map[string]any{}
		if err := rows.MapScan(item); err != nil {
			return result, err
		}
		result.Items = append(result.Items, decodeRow(item))
	}
	return result, rows.Err()
}

// Get returns one row by id.
func (s *Store) Get(ctx context.Context, d Descriptor, id string) (map[string]any, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM "+d.Table+" WHERE id = ?", id)
	item := map[string]any{}
	if err := row.MapScan(item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeRow(item), nil
}

// Create inserts a new row from a column->value map; unknown keys are
// silently dropped so clients cannot write outside the declared columns.
func (s *Store) Create(ctx context.Context, d Descriptor, values map[string]any) (map[string]any, error) {
	id := uuid.New().String()
	filtered := dropNulls(s.filterColumns(d, values))
	s.stampStatusChange(d, filtered)

	cols := []string{"id"}
	placeholders := []string{"?"}
	args := []any{id}
	for col, v := range filtered {
		cols = append(cols, col)
		placeholders = append(placeholders, "?")
		args = append(args, v)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}
	return s.Get(ctx, d, id)
}

// Update overwrites the given columns of an existing row.
func (s *Store) Update(ctx context.Context, d Descriptor, id string, values map[string]any) (map[string]any, error) {
	filtered := s.filterColumns(d, values)
	s.stampStatusChange(d, filtered)
	if len(filtered) == 0 {
		return s.Get(ctx, d, id)
	}

	sets := make([]string, 0, len(filtered))
	var args []any
	for col, v := range filtered {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", d.Table, strings.Join(sets, ", ")), args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, d, id)
}

// DependencyCount sums the rows in other tables still referencing id and
// lists the referencing module labels.
func (s *Store) DependencyCount(ctx context.Context, d Descriptor, id string) (*DependencyError, error) {
	var total int64
	var refs []string
	for _, dep := range d.Dependencies {
		var n int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = ?", dep.Table, dep.Column)
		if err := s.db.GetContext(ctx, &n, query, id); err != nil {
			return nil, err
		}
		if n > 0 {
			total += n
			refs = append(refs, dep.Label)
		}
	}
	if total == 0 {
		return nil, nil
	}
	return &DependencyError{Count: total, References: refs}, nil
}

// Delete removes one row. Dependency policy is enforced by the caller,
// which knows the actor's role.
func (s *Store) Delete(ctx context.Context, d Descriptor, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+d.Table+" WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkDelete removes a set of rows in one statement and reports how many
// actually existed.
func (s *Store) BulkDelete(ctx context.Context, d Descriptor, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := sqlx.In("DELETE FROM "+d.Table+" WHERE id IN (?)", ids)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// BulkInsert writes imported rows in a single transaction: the batch either
// lands whole or not at all, mirroring the import contract. Lookup fields
// (vehicle plates, equipment codes) are resolved to foreign keys first;
// unresolved references are stored as NULL rather than failing the batch.
func (s *Store) BulkInsert(ctx context.Context, d Descriptor, rows []importer.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	lookupMaps := make(map[string]map[string]string, len(d.Lookups))
	for _, lk := range d.Lookups {
		resolved, err := s.loadLookup(ctx, lk)
		if err != nil {
			return 0, err
		}
		lookupMaps[lk.Field] = resolved
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	inserted := 0
	for _, row := range rows {
		values := make(map[string]any, len(row))
		for k, v := range row {
			values[k] = v
		}
		for _, lk := range d.Lookups {
			raw, ok := values[lk.Field]
			if !ok {
				continue
			}
			delete(values, lk.Field)
			key, _ := raw.(string)
			if id, found := lookupMaps[lk.Field][strings.TrimSpace(key)]; found {
				values[lk.TargetColumn] = id
			}
		}

		filtered := dropNulls(s.filterColumns(d, values))
		s.stampStatusChange(d, filtered)

		cols := []string{"id"}
		placeholders := []string{"?"}
		args := []any{uuid.New().String()}
		for col, v := range filtered {
			cols = append(cols, col)
			placeholders = append(placeholders, "?")
			args = append(args, v)
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			d.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("falha ao gravar lote importado: %w", err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (s *Store) loadLookup(ctx context.Context, lk Lookup) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT %s, id FROM %s", lk.MatchColumn, lk.Table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return nil, err
		}
		out[strings.TrimSpace(key)] = id
	}
	return out, rows.Err()
}

// filterColumns keeps only declared, writable columns.
func (s *Store) filterColumns(d Descriptor, values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for col, v := range values {
		if col == "id" || col == "created_at" {
			continue
		}
		if d.HasColumn(col) {
			out[col] = v
		}
	}
	return out
}

// dropNulls removes nil values on insert so column defaults apply instead
// of an explicit NULL, which NOT NULL columns would reject.
func dropNulls(values map[string]any) map[string]any {
	for k, v := range values {
		if v == nil {
			delete(values, k)
		}
	}
	return values
}

// stampStatusChange records when a status column was last written, feeding
// the equipment-in-maintenance alert rule.
func (s *Store) stampStatusChange(d Descriptor, values map[string]any) {
	if d.StatusTimestampColumn == "" {
		return
	}
	if _, ok := values["status"]; !ok {
		return
	}
	if v, provided := values[d.StatusTimestampColumn]; provided && v != nil {
		return
	}
	values[d.StatusTimestampColumn] = nowDate()
}

func decodeRow(item map[string]any) map[string]any {
	for k, v := range item {
		if b, ok := v.([]byte); ok {
			item[k] = string(b)
		}
	}
	return item
}
