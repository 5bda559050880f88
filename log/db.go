package log

import (
	"context"
	"strings"
	"time"
)

// Database logging context keys
const (
	DBQueryKey     = "db_query"
	DBDurationKey  = "db_duration_ms"
	DBRowsKey      = "db_rows_affected"
	DBOperationKey = "db_operation"
	DBComponentKey = "db_component"
)

// DBOperationType defines the type of database operation
type DBOperationType string

// Database operation types
const (
	DBOperationSelect DBOperationType = "SELECT"
	DBOperationInsert DBOperationType = "INSERT"
	DBOperationUpdate DBOperationType = "UPDATE"
	DBOperationDelete DBOperationType = "DELETE"
	DBOperationCreate DBOperationType = "CREATE"
	DBOperationOther  DBOperationType = "OTHER"
)

// DetectDBOperation detects the operation type from an SQL statement
func DetectDBOperation(query string) DBOperationType {
	query = strings.TrimSpace(strings.ToUpper(query))

	switch {
	case strings.HasPrefix(query, "SELECT"):
		return DBOperationSelect
	case strings.HasPrefix(query, "INSERT"):
		return DBOperationInsert
	case strings.HasPrefix(query, "UPDATE"):
		return DBOperationUpdate
	case strings.HasPrefix(query, "DELETE"):
		return DBOperationDelete
	case strings.HasPrefix(query, "CREATE"):
		return DBOperationCreate
	}
	return DBOperationOther
}

// NewDBLogger creates a new logger with database component information
func NewDBLogger(ctx context.Context, component string) *Logger {
	logger := FromContext(ctx)
	if logger == nil {
		logger = New("db")
	}
	return logger.WithField(DBComponentKey, component)
}

// LogDBQuery logs a database statement with timing information. Statements
// produced by the query builders carry inlined literals, so no parameter
// sanitizing takes place here.
func LogDBQuery(ctx context.Context, query string, rows int64, duration time.Duration, err error) {
	logger := FromContext(ctx)
	if logger == nil {
		logger = New("db")
	}

	fields := map[string]interface{}{
		DBQueryKey:     query,
		DBDurationKey:  duration.Milliseconds(),
		DBRowsKey:      rows,
		DBOperationKey: string(DetectDBOperation(query)),
	}

	if err != nil {
		logger.Error(err, "database query failed", fields)
		return
	}
	logger.Debug("database query executed", fields)
}
