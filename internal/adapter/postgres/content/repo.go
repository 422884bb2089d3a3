// Package content implements one generic repository for every content kind.
// A Schema describes the table; Repo builds its queries with squirrel.
package content

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Schema describes how a content kind maps onto its table.
type Schema[T any] struct {
	Table  string
	Entity string

	// Columns are the writable columns, in the order Values returns them.
	Columns []string

	// Optional columns; empty means the kind has no such column.
	NaturalKey     string
	CategoryColumn string
	PublishColumn  string
	SortColumn     string

	// SearchColumns are SQL expressions matched with ILIKE by Filter.Query.
	SearchColumns []string

	// Scan reads id, Columns..., created_at, updated_at.
	Scan func(row pgx.Row) (T, error)
	// Values returns the writable column values of an item.
	Values func(item T) []any
}

func (s Schema[T]) selectColumns() []string {
	cols := make([]string, 0, len(s.Columns)+3)
	cols = append(cols, "id")
	cols = append(cols, s.Columns...)
	return append(cols, "created_at", "updated_at")
}

// Repo is a generic repository over one content table.
type Repo[T any] struct {
	db     postgres.Querier
	schema Schema[T]
	sb     sq.StatementBuilderType
}

// New creates a repository for schema.
func New[T any](db postgres.Querier, schema Schema[T]) *Repo[T] {
	return &Repo[T]{
		db:     db,
		schema: schema,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Schema returns the descriptor the repository was built with.
func (r *Repo[T]) Schema() Schema[T] { return r.schema }

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListPublished returns up to limit published rows with id greater than the
// cursor, in id order. nextCursor is the id of the last returned row when
// more rows follow, otherwise "". A malformed cursor starts from the beginning.
func (r *Repo[T]) ListPublished(ctx context.Context, f domain.ContentFilter, limit int, cursor string) ([]T, string, error) {
	if limit < 1 {
		limit = 1
	}
	f.PublishedOnly = true

	q := r.selectBase().Where(r.where(f))
	if after := ParseCursor(cursor); after > 0 {
		q = q.Where(sq.Gt{"id": after})
	}
	q = q.OrderBy("id ASC").Limit(uint64(limit + 1))

	items, ids, err := r.queryWithIDs(ctx, q)
	if err != nil {
		return nil, "", err
	}

	next := ""
	if len(items) > limit {
		items = items[:limit]
		next = strconv.FormatInt(ids[limit-1], 10)
	}
	return items, next, nil
}

// List returns rows matching f in the given order. limit <= 0 means no limit.
func (r *Repo[T]) List(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, limit int) ([]T, error) {
	q := r.selectBase().Where(r.where(f)).OrderBy(r.orderBy(order)...)
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	items, _, err := r.queryWithIDs(ctx, q)
	return items, err
}

// ListAdmin returns every row matching f, published or not, in editorial order.
func (r *Repo[T]) ListAdmin(ctx context.Context, f domain.ContentFilter, limit int) ([]T, error) {
	f.PublishedOnly = false
	return r.List(ctx, f, domain.OrderEditorial, limit)
}

// ListPage returns one numbered page. A page past the end clamps to the last
// page and is re-queried.
func (r *Repo[T]) ListPage(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, page, perPage int) (domain.Page[T], error) {
	if perPage < 1 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}

	total, err := r.Count(ctx, f)
	if err != nil {
		return domain.Page[T]{}, err
	}
	page = domain.ClampPage(page, total, perPage)

	q := r.selectBase().Where(r.where(f)).OrderBy(r.orderBy(order)...).
		Limit(uint64(perPage)).
		Offset(uint64((page - 1) * perPage))
	items, _, err := r.queryWithIDs(ctx, q)
	if err != nil {
		return domain.Page[T]{}, err
	}
	return domain.NewPage(items, page, perPage, total), nil
}

// Count returns the number of rows matching f.
func (r *Repo[T]) Count(ctx context.Context, f domain.ContentFilter) (int, error) {
	sqlStr, args, err := r.sb.Select("count(*)").From(r.schema.Table).Where(r.where(f)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", r.schema.Entity, err)
	}
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, r.schema.Entity, "count")
	}
	return n, nil
}

// GetByID returns the row with id or domain.ErrNotFound.
func (r *Repo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetByIDForUpdate is GetByID with a row lock held until the surrounding
// transaction ends. Outside a transaction the lock is released at once.
func (r *Repo[T]) GetByIDForUpdate(ctx context.Context, id int64) (T, error) {
	var zero T
	sqlStr, args, err := r.selectBase().Where(sq.Eq{"id": id}).Limit(1).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return zero, fmt.Errorf("build %s get for update: %w", r.schema.Entity, err)
	}
	item, err := r.schema.Scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return zero, postgres.MapError(err, r.schema.Entity, id)
	}
	return item, nil
}

// GetByNaturalKey returns the row whose natural key equals key or domain.ErrNotFound.
func (r *Repo[T]) GetByNaturalKey(ctx context.Context, key string) (T, error) {
	if r.schema.NaturalKey == "" {
		var zero T
		return zero, fmt.Errorf("%s has no natural key", r.schema.Entity)
	}
	return r.getOne(ctx, sq.Eq{r.schema.NaturalKey: key}, key)
}

// Exists reports whether a row has column = value, ignoring excludeID.
func (r *Repo[T]) Exists(ctx context.Context, column string, value any, excludeID int64) (bool, error) {
	cond := sq.And{sq.Eq{column: value}}
	if excludeID > 0 {
		cond = append(cond, sq.NotEq{"id": excludeID})
	}
	inner, args, err := r.sb.Select("1").From(r.schema.Table).Where(cond).ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s exists: %w", r.schema.Entity, err)
	}
	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, "SELECT EXISTS("+inner+")", args...).Scan(&exists); err != nil {
		return false, postgres.MapError(err, r.schema.Entity, value)
	}
	return exists, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert stores item and returns the persisted row.
// A natural-key collision returns domain.ErrAlreadyExists.
func (r *Repo[T]) Insert(ctx context.Context, item T) (T, error) {
	q := r.sb.Insert(r.schema.Table).
		Columns(r.schema.Columns...).
		Values(r.schema.Values(item)...).
		Suffix("RETURNING " + strings.Join(r.schema.selectColumns(), ", "))
	return r.writeOne(ctx, q, "new")
}

// Update overwrites the writable columns of row id and bumps updated_at.
// Returns domain.ErrNotFound when the row does not exist.
func (r *Repo[T]) Update(ctx context.Context, id int64, item T) (T, error) {
	values := r.schema.Values(item)
	q := r.sb.Update(r.schema.Table)
	for i, col := range r.schema.Columns {
		q = q.Set(col, values[i])
	}
	q = q.Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(r.schema.selectColumns(), ", "))
	return r.writeOne(ctx, q, id)
}

// SetPublished flips the publish flag of row id.
func (r *Repo[T]) SetPublished(ctx context.Context, id int64, published bool) (T, error) {
	if r.schema.PublishColumn == "" {
		var zero T
		return zero, fmt.Errorf("%s has no publish column", r.schema.Entity)
	}
	q := r.sb.Update(r.schema.Table).
		Set(r.schema.PublishColumn, published).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(r.schema.selectColumns(), ", "))
	return r.writeOne(ctx, q, id)
}

// Delete removes row id and reports whether a row was deleted.
func (r *Repo[T]) Delete(ctx context.Context, id int64) (bool, error) {
	sqlStr, args, err := r.sb.Delete(r.schema.Table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s delete: %w", r.schema.Entity, err)
	}
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, postgres.MapError(err, r.schema.Entity, id)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Query helpers
// ---------------------------------------------------------------------------

func (r *Repo[T]) selectBase() sq.SelectBuilder {
	return r.sb.Select(r.schema.selectColumns()...).From(r.schema.Table)
}

func (r *Repo[T]) where(f domain.ContentFilter) sq.And {
	cond := sq.And{}
	if f.PublishedOnly && r.schema.PublishColumn != "" {
		cond = append(cond, sq.Eq{r.schema.PublishColumn: true})
	}
	if f.Category != "" && r.schema.CategoryColumn != "" {
		cond = append(cond, sq.Eq{r.schema.CategoryColumn: f.Category})
	}
	if q := strings.TrimSpace(f.Query); q != "" && len(r.schema.SearchColumns) > 0 {
		pattern := "%" + escapeLike(q) + "%"
		or := sq.Or{}
		for _, col := range r.schema.SearchColumns {
			or = append(or, sq.ILike{col: pattern})
		}
		cond = append(cond, or)
	}
	return cond
}

func (r *Repo[T]) orderBy(order domain.ListOrder) []string {
	switch order {
	case domain.OrderNewest:
		return []string{"created_at DESC", "id DESC"}
	case domain.OrderOldest:
		return []string{"created_at ASC", "id ASC"}
	case domain.OrderID:
		return []string{"id ASC"}
	case domain.OrderUpdated:
		return []string{"updated_at DESC", "id DESC"}
	}
	var cols []string
	if r.schema.CategoryColumn != "" {
		cols = append(cols, r.schema.CategoryColumn+" ASC")
	}
	if r.schema.SortColumn != "" {
		cols = append(cols, r.schema.SortColumn+" ASC")
	}
	return append(cols, "created_at DESC", "id DESC")
}

func (r *Repo[T]) getOne(ctx context.Context, cond sq.Sqlizer, key any) (T, error) {
	var zero T
	sqlStr, args, err := r.selectBase().Where(cond).Limit(1).ToSql()
	if err != nil {
		return zero, fmt.Errorf("build %s get: %w", r.schema.Entity, err)
	}
	item, err := r.schema.Scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return zero, postgres.MapError(err, r.schema.Entity, key)
	}
	return item, nil
}

func (r *Repo[T]) writeOne(ctx context.Context, q sq.Sqlizer, key any) (T, error) {
	var zero T
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return zero, fmt.Errorf("build %s write: %w", r.schema.Entity, err)
	}
	item, err := r.schema.Scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return zero, postgres.MapError(err, r.schema.Entity, key)
	}
	return item, nil
}

// queryWithIDs runs q and returns the rows plus their ids, which are the
// first selected column.
func (r *Repo[T]) queryWithIDs(ctx context.Context, q sq.SelectBuilder) ([]T, []int64, error) {
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("build %s list: %w", r.schema.Entity, err)
	}
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, nil, postgres.MapError(err, r.schema.Entity, "list")
	}
	defer rows.Close()

	items := []T{}
	var ids []int64
	for rows.Next() {
		rec := &idRecorder{row: rows}
		item, err := r.schema.Scan(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("scan %s: %w", r.schema.Entity, err)
		}
		items = append(items, item)
		ids = append(ids, rec.id)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, postgres.MapError(err, r.schema.Entity, "list")
	}
	return items, ids, nil
}

// idRecorder captures the id column while delegating the scan.
type idRecorder struct {
	row pgx.Row
	id  int64
}

func (s *idRecorder) Scan(dest ...any) error {
	if err := s.row.Scan(dest...); err != nil {
		return err
	}
	if len(dest) > 0 {
		if p, ok := dest[0].(*int64); ok {
			s.id = *p
		}
	}
	return nil
}

// ParseCursor decodes a listing cursor. Malformed or negative input yields 0.
func ParseCursor(cursor string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(cursor), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
