package source

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	d "github.com/invertedv/incomereg"
	_ "github.com/jackc/pgx/stdlib"
)

// All code interacting with a database is here. Sources only read.

const (
	CH = "clickhouse"
	PG = "postgres"
)

// Query is a source backed by a SELECT statement.
type Query struct {
	db  *sql.DB
	qry string
}

func NewQuery(db *sql.DB, qry string) (*Query, error) {
	if db == nil {
		return nil, fmt.Errorf("nil db in NewQuery")
	}

	if qry == "" {
		return nil, fmt.Errorf("empty query in NewQuery")
	}

	return &Query{db: db, qry: qry}, nil
}

func (q *Query) Name() string {
	return q.qry
}

func (q *Query) Load() (*d.DF, error) {
	var (
		rows *sql.Rows
		e    error
	)
	if rows, e = q.db.Query(q.qry); e != nil {
		return nil, readErr(q.Name(), e)
	}
	defer rows.Close()

	var fieldNames []string
	if fieldNames, e = rows.Columns(); e != nil {
		return nil, readErr(q.Name(), e)
	}

	row2read := make([]any, len(fieldNames))
	for ind := range row2read {
		var x any
		row2read[ind] = &x
	}

	var data [][]string
	for rows.Next() {
		if e = rows.Scan(row2read...); e != nil {
			return nil, readErr(q.Name(), e)
		}

		rec := make([]string, len(fieldNames))
		for ind := range rec {
			rec[ind] = toString(*row2read[ind].(*any))
		}

		data = append(data, rec)
	}

	if e = rows.Err(); e != nil {
		return nil, readErr(q.Name(), e)
	}

	return tableFromRows(q.Name(), fieldNames, data)
}

// toString renders a scanned value as the text a CSV export would hold. NULL is "".
func toString(val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case time.Time:
		return x.Format("20060102")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// NewConnectCH establishes a new connection to ClickHouse.
// host is IP address (assumes port 9000).
func NewConnectCH(host, user, password string) (*sql.DB, error) {
	db := clickhouse.OpenDB(
		&clickhouse.Options{
			Addr: []string{host + ":9000"},
			Auth: clickhouse.Auth{
				Database: "default",
				Username: user,
				Password: password,
			},
			DialTimeout: 300 * time.Second,
			Compression: &clickhouse.Compression{
				Method: clickhouse.CompressionLZ4,
				Level:  0,
			},
		})

	if e := db.Ping(); e != nil {
		return nil, readErr(CH+"://"+host, e)
	}

	return db, nil
}

// NewConnectPG establishes a new connection to Postgres through the pgx driver.
func NewConnectPG(host, user, password, dbName string) (*sql.DB, error) {
	connectionStr := fmt.Sprintf("postgres://%s:%s@%s:5432/%s", user, password, host, dbName)
	var (
		db *sql.DB
		e  error
	)
	if db, e = sql.Open("pgx", connectionStr); e != nil {
		return nil, readErr(PG+"://"+host, e)
	}

	if e := db.Ping(); e != nil {
		_ = db.Close()
		return nil, readErr(PG+"://"+host, e)
	}

	return db, nil
}
