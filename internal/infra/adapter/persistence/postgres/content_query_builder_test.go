package postgres_test

import (
	"strings"
	"testing"
	"time"

	"feedgate/internal/domain/entity"
	pg "feedgate/internal/infra/adapter/persistence/postgres"
	"feedgate/internal/repository"
)

func TestBuildWhereClause_PublishedOnly(t *testing.T) {
	qb := pg.NewContentQueryBuilder()
	clause, args := qb.BuildWhereClause(repository.ContentFilters{})

	if clause != "WHERE c.status = 'published'" {
		t.Errorf("clause = %q", clause)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestBuildWhereClause_AllFilters(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	qb := pg.NewContentQueryBuilder()
	clause, args := qb.BuildWhereClause(repository.ContentFilters{
		ContentTypes: []string{"post", "page"},
		Categories:   []int64{1},
		Tags:         []int64{9, 10},
		Taxonomies:   map[string][]string{"series": {"a", "b"}},
		From:         &from,
		To:           &to,
	})

	for _, want := range []string{
		"c.content_type IN ($1, $2)",
		"t.taxonomy = $3 AND t.term_id IN ($4)",
		"t.taxonomy = $5 AND t.term_id IN ($6, $7)",
		"t.taxonomy = $8 AND t.term_slug IN ($9, $10)",
		"c.published_at >= $11",
		"c.published_at <= $12",
	} {
		if !strings.Contains(clause, want) {
			t.Errorf("clause missing %q:\n%s", want, clause)
		}
	}

	wantArgs := []interface{}{
		"post", "page",
		"category", int64(1),
		"tag", int64(9), int64(10),
		"series", "a", "b",
		from, to,
	}
	if len(args) != len(wantArgs) {
		t.Fatalf("args len = %d, want %d: %v", len(args), len(wantArgs), args)
	}
	for i := range wantArgs {
		if args[i] != wantArgs[i] {
			t.Errorf("args[%d] = %v, want %v", i, args[i], wantArgs[i])
		}
	}
}

func TestBuildOrderClause(t *testing.T) {
	qb := pg.NewContentQueryBuilder()

	cases := []struct {
		orderBy   entity.OrderBy
		direction entity.OrderDirection
		want      string
	}{
		{entity.OrderByDate, entity.OrderDesc, "ORDER BY c.published_at DESC"},
		{entity.OrderByDate, entity.OrderAsc, "ORDER BY c.published_at ASC"},
		{entity.OrderByTitle, entity.OrderAsc, "ORDER BY c.title ASC"},
		{entity.OrderByRandom, entity.OrderDesc, "ORDER BY RANDOM()"},
		{entity.OrderByCommentCount, entity.OrderDesc, "ORDER BY c.comment_count DESC, c.published_at DESC"},
		{"", entity.OrderDesc, "ORDER BY c.published_at DESC"},
	}
	for _, tc := range cases {
		if got := qb.BuildOrderClause(tc.orderBy, tc.direction); got != tc.want {
			t.Errorf("BuildOrderClause(%q, %q) = %q, want %q", tc.orderBy, tc.direction, got, tc.want)
		}
	}
}
