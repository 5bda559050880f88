package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oddbit-project/sqlquery/log"
	"github.com/oddbit-project/sqlquery/utils"
)

const (
	ErrNotConnected = utils.Error("client is not connected")
)

type ClientInterface interface {
	GetClient() *sqlx.DB
	IsConnected() bool
	Connect() error
	Disconnect()
}

// SqlClient executes finished SQL statements produced by the query
// builders. Statements carry inlined literals, so no argument binding takes
// place at this layer.
type SqlClient struct {
	Conn       *sqlx.DB
	Dsn        string
	DriverName string
}

func NewSqlClient(dsn, driverName string) *SqlClient {
	return &SqlClient{
		Conn:       nil,
		Dsn:        dsn,
		DriverName: driverName,
	}
}

// NewSqlClientFromDB wraps an existing connection (used by tests).
func NewSqlClientFromDB(conn *sqlx.DB) *SqlClient {
	return &SqlClient{Conn: conn, DriverName: conn.DriverName()}
}

func (c *SqlClient) GetClient() *sqlx.DB {
	return c.Conn
}

func (c *SqlClient) IsConnected() bool {
	return c.Conn != nil
}

func (c *SqlClient) Connect() error {
	if c.Conn != nil {
		return nil
	}
	conn, err := sqlx.Connect(c.DriverName, c.Dsn)
	if err != nil {
		return err
	}
	c.Conn = conn
	return nil
}

func (c *SqlClient) Disconnect() {
	if c.Conn == nil {
		return
	}
	_ = c.Conn.Close()
	c.Conn = nil
}

// ExecSimpleQuery runs a finished SELECT statement and returns the rows as
// column-name keyed maps.
func (c *SqlClient) ExecSimpleQuery(ctx context.Context, query string) ([]map[string]any, error) {
	if c.Conn == nil {
		return nil, ErrNotConnected
	}
	start := time.Now()
	rows, err := c.Conn.QueryxContext(ctx, query)
	if err != nil {
		log.LogDBQuery(ctx, query, 0, time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var result []map[string]any
	for rows.Next() {
		row := make(map[string]any)
		if err = rows.MapScan(row); err != nil {
			log.LogDBQuery(ctx, query, int64(len(result)), time.Since(start), err)
			return nil, err
		}
		result = append(result, row)
	}
	err = rows.Err()
	log.LogDBQuery(ctx, query, int64(len(result)), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExecStatement runs a finished INSERT/UPDATE/DELETE statement and returns
// the affected row count.
func (c *SqlClient) ExecStatement(ctx context.Context, query string) (int64, error) {
	if c.Conn == nil {
		return 0, ErrNotConnected
	}
	start := time.Now()
	res, err := c.Conn.ExecContext(ctx, query)
	if err != nil {
		log.LogDBQuery(ctx, query, 0, time.Since(start), err)
		return 0, err
	}
	affected, err := res.RowsAffected()
	log.LogDBQuery(ctx, query, affected, time.Since(start), err)
	return affected, err
}
