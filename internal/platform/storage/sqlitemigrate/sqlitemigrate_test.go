package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyCreatesTablesAndRecordsFiles(t *testing.T) {
	db := openMemoryDB(t)
	migrations := fstest.MapFS{
		"002_tags.sql":  {Data: []byte("-- +migrate Up\nCREATE TABLE tags(name TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE tags;")},
		"001_posts.sql": {Data: []byte("CREATE TABLE posts(id INTEGER PRIMARY KEY);")},
		"README.md":     {Data: []byte("ignored")},
	}

	if err := Apply(context.Background(), db, migrations, ""); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := countRows(t, db, "schema_migrations"); got != 2 {
		t.Fatalf("recorded migrations = %d, want 2", got)
	}
	for _, table := range []string{"posts", "tags"} {
		if !tableExists(t, db, table) {
			t.Fatalf("table %s missing", table)
		}
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	migrations := fstest.MapFS{
		"001_posts.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE posts(id INTEGER PRIMARY KEY);")},
	}
	for i := 0; i < 2; i++ {
		if err := Apply(context.Background(), db, migrations, ""); err != nil {
			t.Fatalf("Apply() run %d error = %v", i, err)
		}
	}
	if got := countRows(t, db, "schema_migrations"); got != 1 {
		t.Fatalf("recorded migrations = %d, want 1", got)
	}
}

func TestApplyLeavesFailedMigrationUnrecorded(t *testing.T) {
	db := openMemoryDB(t)
	bad := fstest.MapFS{"001_posts.sql": {Data: []byte("CREAT TABLE posts(id INT);")}}
	if err := Apply(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if got := countRows(t, db, "schema_migrations"); got != 0 {
		t.Fatalf("recorded migrations = %d, want 0", got)
	}
}

func TestApplyKeysByRoot(t *testing.T) {
	db := openMemoryDB(t)
	migrations := fstest.MapFS{
		"archive/001_posts.sql": {Data: []byte("CREATE TABLE posts(id INTEGER PRIMARY KEY);")},
	}
	if err := Apply(context.Background(), db, migrations, "archive/"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	var name string
	if err := db.QueryRow("SELECT name FROM schema_migrations").Scan(&name); err != nil {
		t.Fatalf("query migration name: %v", err)
	}
	if name != "archive/001_posts.sql" {
		t.Fatalf("migration key = %q, want %q", name, "archive/001_posts.sql")
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if err := Apply(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected nil db error")
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct{ in, want string }{
		{in: "CREATE TABLE a(x);", want: "CREATE TABLE a(x);"},
		{in: "-- +migrate Up\nCREATE TABLE a(x);", want: "\nCREATE TABLE a(x);"},
		{in: "-- +migrate Up\nUP;\n-- +migrate Down\nDOWN;\n", want: "\nUP;\n"},
		{in: "header\n-- +migrate Up\nUP;\n-- +migrate Down\n", want: "\nUP;\n"},
	}
	for _, tc := range tests {
		if got := UpSection(tc.in); got != tc.want {
			t.Fatalf("UpSection(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsAlreadyExists(t *testing.T) {
	if IsAlreadyExists(nil) {
		t.Fatal("nil error reported as already exists")
	}
	if !IsAlreadyExists(errors.New("table posts already exists")) {
		t.Fatal("expected already exists match")
	}
	if !IsAlreadyExists(errors.New("duplicate column name: title")) {
		t.Fatal("expected duplicate column match")
	}
	if IsAlreadyExists(errors.New("syntax error")) {
		t.Fatal("syntax error reported as already exists")
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		t.Fatalf("check table %s: %v", table, err)
	}
	return true
}
