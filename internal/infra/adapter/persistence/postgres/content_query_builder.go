// Package postgres provides the PostgreSQL implementation of the content
// repository interfaces.
package postgres

import (
	"fmt"
	"sort"
	"strings"

	"feedgate/internal/domain/entity"
	"feedgate/internal/repository"
)

// ContentQueryBuilder builds WHERE and ORDER BY clauses for content
// selection queries. The builder is shared between the selection query and
// any counting queries to keep placeholder numbering consistent.
// PostgreSQL-specific: uses $N placeholders.
type ContentQueryBuilder struct{}

// NewContentQueryBuilder creates a new query builder instance.
func NewContentQueryBuilder() *ContentQueryBuilder {
	return &ContentQueryBuilder{}
}

// BuildWhereClause translates selection filters into a WHERE clause and its
// arguments. Terms within one taxonomy are ORed (IN list / EXISTS), distinct
// filters are ANDed. Only published content is ever selected.
func (qb *ContentQueryBuilder) BuildWhereClause(filters repository.ContentFilters) (string, []interface{}) {
	conditions := []string{"c.status = 'published'"}
	var args []interface{}
	paramIndex := 1

	if len(filters.ContentTypes) > 0 {
		placeholders := make([]string, 0, len(filters.ContentTypes))
		for _, ct := range filters.ContentTypes {
			placeholders = append(placeholders, fmt.Sprintf("$%d", paramIndex))
			args = append(args, ct)
			paramIndex++
		}
		conditions = append(conditions,
			fmt.Sprintf("c.content_type IN (%s)", strings.Join(placeholders, ", ")))
	}

	if len(filters.Categories) > 0 {
		clause, termArgs := termIDCondition("category", filters.Categories, paramIndex)
		conditions = append(conditions, clause)
		args = append(args, termArgs...)
		paramIndex += len(termArgs)
	}

	if len(filters.Tags) > 0 {
		clause, termArgs := termIDCondition("tag", filters.Tags, paramIndex)
		conditions = append(conditions, clause)
		args = append(args, termArgs...)
		paramIndex += len(termArgs)
	}

	// Iterate taxonomies in sorted order so the generated SQL is stable.
	taxonomies := make([]string, 0, len(filters.Taxonomies))
	for name := range filters.Taxonomies {
		taxonomies = append(taxonomies, name)
	}
	sort.Strings(taxonomies)
	for _, name := range taxonomies {
		slugs := filters.Taxonomies[name]
		if len(slugs) == 0 {
			continue
		}
		placeholders := make([]string, 0, len(slugs))
		taxArgs := []interface{}{name}
		taxParam := paramIndex
		paramIndex++
		for _, slug := range slugs {
			placeholders = append(placeholders, fmt.Sprintf("$%d", paramIndex))
			taxArgs = append(taxArgs, slug)
			paramIndex++
		}
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM content_terms t WHERE t.content_id = c.id AND t.taxonomy = $%d AND t.term_slug IN (%s))",
			taxParam, strings.Join(placeholders, ", ")))
		args = append(args, taxArgs...)
	}

	if filters.From != nil {
		conditions = append(conditions, fmt.Sprintf("c.published_at >= $%d", paramIndex))
		args = append(args, *filters.From)
		paramIndex++
	}
	if filters.To != nil {
		conditions = append(conditions, fmt.Sprintf("c.published_at <= $%d", paramIndex))
		args = append(args, *filters.To)
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// termIDCondition builds an EXISTS condition matching any of the given term
// IDs within one taxonomy.
func termIDCondition(taxonomy string, termIDs []int64, paramIndex int) (string, []interface{}) {
	args := []interface{}{taxonomy}
	taxParam := paramIndex
	paramIndex++

	placeholders := make([]string, 0, len(termIDs))
	for _, id := range termIDs {
		placeholders = append(placeholders, fmt.Sprintf("$%d", paramIndex))
		args = append(args, id)
		paramIndex++
	}
	clause := fmt.Sprintf(
		"EXISTS (SELECT 1 FROM content_terms t WHERE t.content_id = c.id AND t.taxonomy = $%d AND t.term_id IN (%s))",
		taxParam, strings.Join(placeholders, ", "))
	return clause, args
}

// BuildOrderClause maps a definition's ordering to an ORDER BY clause.
// Random ordering ignores the direction; unknown values fall back to newest
// first.
func (qb *ContentQueryBuilder) BuildOrderClause(orderBy entity.OrderBy, direction entity.OrderDirection) string {
	dir := "DESC"
	if direction == entity.OrderAsc {
		dir = "ASC"
	}
	switch orderBy {
	case entity.OrderByTitle:
		return "ORDER BY c.title " + dir
	case entity.OrderByRandom:
		return "ORDER BY RANDOM()"
	case entity.OrderByCommentCount:
		return "ORDER BY c.comment_count " + dir + ", c.published_at DESC"
	default:
		return "ORDER BY c.published_at " + dir
	}
}
