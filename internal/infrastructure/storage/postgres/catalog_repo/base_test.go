package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"stockroom/internal/core/apperror"
	"stockroom/internal/core/entity"
)

func newTestRepo() *BaseRepo[*entity.Catalog] {
	return NewBaseRepo[*entity.Catalog](
		"test_table",
		[]string{"id", "deletion_mark", "version", "created_at", "updated_at", "name"},
		"",
		func() *entity.Catalog { return &entity.Catalog{} },
		nil,
	)
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to search column", orderBy: "", want: "name ASC"},
		{name: "plain field", orderBy: "created_at", want: "created_at ASC"},
		{name: "minus prefix is DESC", orderBy: "-created_at", want: "created_at DESC"},
		{name: "plus prefix is ASC", orderBy: "+name", want: "name ASC"},
		{name: "unknown column rejected", orderBy: "evil; DROP TABLE", wantErr: true},
		{name: "bare minus rejected", orderBy: "-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if !apperror.IsCode(err, apperror.CodeValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestBaseSelect_BuildsDollarPlaceholders(t *testing.T) {
	repo := newTestRepo()

	q := repo.BaseSelect().
		Where(squirrel.Eq{"id": int64(7)}).
		Where(squirrel.Eq{"deletion_mark": false})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, deletion_mark, version, created_at, updated_at, name " +
		"FROM test_table WHERE id = $1 AND deletion_mark = $2"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 2 {
		t.Fatalf("want 2 args, got %d", len(args))
	}
	if args[0] != int64(7) || args[1] != false {
		t.Errorf("args mismatch: %v", args)
	}
}
