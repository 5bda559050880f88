package config

import "github.com/oddbit-project/sqlquery/utils"

const (
	ErrNoKey       = utils.Error("Config key does not exist")
	ErrInvalidType = utils.Error("Invalid destination type")
)

type ConfigProvider interface {
	Get(dest interface{}) error
	GetKey(key string, dest interface{}) error
	GetStringKey(key string) (string, error)
	KeyExists(key string) bool
}
