package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"feedgate/internal/domain/entity"
	pg "feedgate/internal/infra/adapter/persistence/postgres"
	"feedgate/internal/repository"
)

func contentRows(items ...*entity.ContentItem) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "content_type", "title", "permalink", "published_at",
		"modified_at", "author_name", "excerpt", "body_html", "comment_count",
	})
	for _, it := range items {
		rows.AddRow(it.ID, it.ContentType, it.Title, it.Permalink,
			it.PublishedAt, it.ModifiedAt, it.AuthorName, it.Excerpt,
			it.BodyHTML, it.CommentCount)
	}
	return rows
}

func emptyTermRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"content_id", "taxonomy", "term_name"})
}

func emptyEnclosureRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"content_id", "url", "mime_type", "length_bytes"})
}

func TestContentRepo_Query(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	item := &entity.ContentItem{
		ID: 1, ContentType: "post", Title: "Hello", Permalink: "https://example.com/hello",
		PublishedAt: now, ModifiedAt: now, AuthorName: "jo", Excerpt: "e",
		BodyHTML: "<p>b</p>", CommentCount: 3,
	}

	mock.ExpectQuery("FROM contents c").
		WithArgs("post", 20).
		WillReturnRows(contentRows(item))
	mock.ExpectQuery("FROM content_terms").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"content_id", "taxonomy", "term_name"}).
			AddRow(int64(1), "category", "News").
			AddRow(int64(1), "tag", "go"))
	mock.ExpectQuery("FROM content_enclosures").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"content_id", "url", "mime_type", "length_bytes"}).
			AddRow(int64(1), "https://example.com/a.mp3", "audio/mpeg", int64(1024)))

	repo := pg.NewContentRepo(db)
	got, err := repo.Query(context.Background(), repository.ContentFilters{
		ContentTypes: []string{"post"},
		Limit:        20,
		OrderBy:      entity.OrderByDate,
		Direction:    entity.OrderDesc,
	})
	if err != nil {
		t.Fatalf("Query err=%v", err)
	}
	want := []*entity.ContentItem{{
		ID: 1, ContentType: "post", Title: "Hello", Permalink: "https://example.com/hello",
		PublishedAt: now, ModifiedAt: now, AuthorName: "jo", Excerpt: "e",
		BodyHTML: "<p>b</p>", CommentCount: 3,
		Categories: []string{"News"},
		Tags:       []string{"go"},
		Enclosures: []entity.Enclosure{{URL: "https://example.com/a.mp3", MIMEType: "audio/mpeg", LengthBytes: 1024}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Query mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_QueryEmpty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("FROM contents c").
		WithArgs(10).
		WillReturnRows(contentRows())

	repo := pg.NewContentRepo(db)
	got, err := repo.Query(context.Background(), repository.ContentFilters{Limit: 10})
	if err != nil {
		t.Fatalf("Query err=%v", err)
	}
	if len(got) != 0 {
		t.Fatalf("len=%d, want 0", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_QueryTaxonomyFilters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	item := &entity.ContentItem{
		ID: 7, ContentType: "post", Title: "t", Permalink: "p",
		PublishedAt: now, ModifiedAt: now,
	}

	mock.ExpectQuery("FROM contents c").
		WithArgs("category", int64(3), int64(4), "series", "go-basics", 5).
		WillReturnRows(contentRows(item))
	mock.ExpectQuery("FROM content_terms").
		WithArgs(int64(7)).
		WillReturnRows(emptyTermRows())
	mock.ExpectQuery("FROM content_enclosures").
		WithArgs(int64(7)).
		WillReturnRows(emptyEnclosureRows())

	repo := pg.NewContentRepo(db)
	got, err := repo.Query(context.Background(), repository.ContentFilters{
		Categories: []int64{3, 4},
		Taxonomies: map[string][]string{"series": {"go-basics"}},
		Limit:      5,
	})
	if err != nil {
		t.Fatalf("Query err=%v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len=%d, want 1", len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_LastModified(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("MAX\\(modified_at\\)").
		WithArgs("post", "page").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(want))

	repo := pg.NewContentRepo(db)
	got, err := repo.LastModified(context.Background(), []string{"post", "page"})
	if err != nil {
		t.Fatalf("LastModified err=%v", err)
	}
	if !got.Equal(want) {
		t.Errorf("LastModified = %v, want %v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestContentRepo_LastModifiedNoContent(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("MAX\\(modified_at\\)").
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

	repo := pg.NewContentRepo(db)
	got, err := repo.LastModified(context.Background(), nil)
	if err != nil {
		t.Fatalf("LastModified err=%v", err)
	}
	if !got.IsZero() {
		t.Errorf("LastModified = %v, want zero", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
