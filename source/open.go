package source

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
)

// Spec describes where a source lives. Kind is one of csv, xlsx, clickhouse, postgres; an
// empty Kind is taken from the Path extension. LazyQuotes applies to delimited files only.
type Spec struct {
	Kind       string `mapstructure:"kind" yaml:"kind"`
	Path       string `mapstructure:"path" yaml:"path"`
	Sheet      string `mapstructure:"sheet" yaml:"sheet,omitempty"`
	Skip       int    `mapstructure:"skip" yaml:"skip"`
	Query      string `mapstructure:"query" yaml:"query,omitempty"`
	LazyQuotes bool   `mapstructure:"lazy_quotes" yaml:"lazy_quotes,omitempty"`
}

// DB holds database credentials shared by the SQL sources.
type DB struct {
	Host     string `mapstructure:"host" yaml:"host"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Database string `mapstructure:"database" yaml:"database"`
}

// Open builds the Source described by spec. The returned closer releases any connection and
// is never nil.
func Open(spec Spec, creds DB) (Source, func() error, error) {
	noop := func() error { return nil }

	kind := strings.ToLower(spec.Kind)
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(spec.Path)), ".")
	}

	switch kind {
	case "csv", "txt":
		f, e := NewFiles(spec.Path, FileSkip(spec.Skip), FileLazyQuotes(spec.LazyQuotes))
		return f, noop, e
	case "tsv":
		f, e := NewFiles(spec.Path, FileSkip(spec.Skip), FileSep('\t'), FileLazyQuotes(spec.LazyQuotes))
		return f, noop, e
	case "xlsx":
		s, e := NewSheet(spec.Path, spec.Sheet, spec.Skip)
		return s, noop, e
	case CH, PG:
		var (
			db *sql.DB
			e  error
		)
		if kind == CH {
			db, e = NewConnectCH(creds.Host, creds.User, creds.Password)
		} else {
			db, e = NewConnectPG(creds.Host, creds.User, creds.Password, creds.Database)
		}

		if e != nil {
			return nil, noop, e
		}

		var q *Query
		if q, e = NewQuery(db, spec.Query); e != nil {
			_ = db.Close()
			return nil, noop, e
		}

		return q, db.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown source kind %q for %s", kind, spec.Path)
	}
}
