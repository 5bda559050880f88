package db

import (
	"github.com/oddbit-project/sqlquery/config"
	"github.com/oddbit-project/sqlquery/qb"
	"github.com/oddbit-project/sqlquery/utils"
)

const (
	ErrEmptyDSN       = utils.Error("Empty DSN")
	ErrUnknownDialect = utils.Error("Unknown dialect")

	// config node with connection settings
	ConfigNodeDatabase = "database"
)

type ClientConfig struct {
	Dialect string `json:"dialect"`
	DSN     string `json:"dsn"`
}

func (c ClientConfig) Validate() error {
	if len(c.DSN) == 0 {
		return ErrEmptyDSN
	}
	if _, ok := driverNames[c.Dialect]; !ok && c.Dialect != "" {
		return ErrUnknownDialect
	}
	return nil
}

// driverNames maps dialect keys to registered database/sql driver names.
var driverNames = map[string]string{
	qb.DialectMySQL:      "mysql",
	qb.DialectPostgreSQL: "pgx",
	qb.DialectSQLite:     "sqlite",
	qb.DialectMSSQL:      "sqlserver",
}

// NewClient creates an unconnected client for the configured dialect. An
// empty dialect selects mysql, matching the query factory default.
func NewClient(cfg *ClientConfig) (*SqlClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dialect := cfg.Dialect
	if dialect == "" {
		dialect = qb.DialectMySQL
	}
	return NewSqlClient(cfg.DSN, driverNames[dialect]), nil
}

// NewClientFromConfig reads the "database" node of a config provider.
func NewClientFromConfig(provider config.ConfigProvider) (*SqlClient, error) {
	cfg := &ClientConfig{}
	if err := provider.GetKey(ConfigNodeDatabase, cfg); err != nil {
		return nil, err
	}
	return NewClient(cfg)
}
