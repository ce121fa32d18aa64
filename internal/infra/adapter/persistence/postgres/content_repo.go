package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"feedgate/internal/domain/entity"
	"feedgate/internal/repository"
)

// ContentRepo is the PostgreSQL-backed read-only view of the CMS content
// store.
type ContentRepo struct {
	db           *sql.DB
	queryBuilder *ContentQueryBuilder
}

// NewContentRepo creates a content repository over the given connection pool.
func NewContentRepo(db *sql.DB) repository.ContentRepository {
	return &ContentRepo{
		db:           db,
		queryBuilder: NewContentQueryBuilder(),
	}
}

// Query returns the ordered selection of published items matching the
// filters. Taxonomy terms and enclosures are loaded in two follow-up queries
// over the selected IDs.
func (repo *ContentRepo) Query(ctx context.Context, filters repository.ContentFilters) ([]*entity.ContentItem, error) {
	where, args := repo.queryBuilder.BuildWhereClause(filters)
	order := repo.queryBuilder.BuildOrderClause(filters.OrderBy, filters.Direction)

	limit := filters.Limit
	if limit <= 0 {
		limit = entity.MaxFeedLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
SELECT c.id, c.content_type, c.title, c.permalink, c.published_at, c.modified_at,
       c.author_name, c.excerpt, c.body_html, c.comment_count
FROM contents c
%s
%s
LIMIT $%d`, where, order, len(args))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]*entity.ContentItem, 0, limit)
	byID := make(map[int64]*entity.ContentItem, limit)
	for rows.Next() {
		var item entity.ContentItem
		if err := rows.Scan(&item.ID, &item.ContentType, &item.Title,
			&item.Permalink, &item.PublishedAt, &item.ModifiedAt,
			&item.AuthorName, &item.Excerpt, &item.BodyHTML,
			&item.CommentCount); err != nil {
			return nil, fmt.Errorf("Query: Scan: %w", err)
		}
		items = append(items, &item)
		byID[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	if err := repo.loadTerms(ctx, byID); err != nil {
		return nil, err
	}
	if err := repo.loadEnclosures(ctx, byID); err != nil {
		return nil, err
	}
	return items, nil
}

// loadTerms attaches category and tag names to the selected items.
func (repo *ContentRepo) loadTerms(ctx context.Context, byID map[int64]*entity.ContentItem) error {
	placeholders, ids := idPlaceholders(byID)
	query := fmt.Sprintf(`
SELECT content_id, taxonomy, term_name
FROM content_terms
WHERE content_id IN (%s) AND taxonomy IN ('category', 'tag')
ORDER BY content_id, term_name`, placeholders)

	rows, err := repo.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("loadTerms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var contentID int64
		var taxonomy, name string
		if err := rows.Scan(&contentID, &taxonomy, &name); err != nil {
			return fmt.Errorf("loadTerms: Scan: %w", err)
		}
		item, ok := byID[contentID]
		if !ok {
			continue
		}
		if taxonomy == "category" {
			item.Categories = append(item.Categories, name)
		} else {
			item.Tags = append(item.Tags, name)
		}
	}
	return rows.Err()
}

// loadEnclosures attaches media attachments to the selected items.
func (repo *ContentRepo) loadEnclosures(ctx context.Context, byID map[int64]*entity.ContentItem) error {
	placeholders, ids := idPlaceholders(byID)
	query := fmt.Sprintf(`
SELECT content_id, url, mime_type, length_bytes
FROM content_enclosures
WHERE content_id IN (%s)
ORDER BY content_id, id`, placeholders)

	rows, err := repo.db.QueryContext(ctx, query, ids...)
	if err != nil {
		return fmt.Errorf("loadEnclosures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var contentID int64
		var enc entity.Enclosure
		if err := rows.Scan(&contentID, &enc.URL, &enc.MIMEType, &enc.LengthBytes); err != nil {
			return fmt.Errorf("loadEnclosures: Scan: %w", err)
		}
		if item, ok := byID[contentID]; ok {
			item.Enclosures = append(item.Enclosures, enc)
		}
	}
	return rows.Err()
}

// LastModified returns the most recent modification across published items
// of the given content types. A zero time means no matching content exists.
func (repo *ContentRepo) LastModified(ctx context.Context, contentTypes []string) (time.Time, error) {
	query := `SELECT MAX(modified_at) FROM contents WHERE status = 'published'`
	var args []interface{}
	if len(contentTypes) > 0 {
		placeholders := make([]string, 0, len(contentTypes))
		for i, ct := range contentTypes {
			placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
			args = append(args, ct)
		}
		query += fmt.Sprintf(" AND content_type IN (%s)", strings.Join(placeholders, ", "))
	}

	var modified sql.NullTime
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&modified); err != nil {
		return time.Time{}, fmt.Errorf("LastModified: %w", err)
	}
	if !modified.Valid {
		return time.Time{}, nil
	}
	return modified.Time, nil
}

// idPlaceholders renders $1..$N placeholders and args for the item IDs,
// in ascending ID order so the SQL is deterministic.
func idPlaceholders(byID map[int64]*entity.ContentItem) (string, []interface{}) {
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	placeholders := make([]string, 0, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
		args = append(args, id)
	}
	return strings.Join(placeholders, ", "), args
}
