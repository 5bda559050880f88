package provider

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/oddbit-project/sqlquery/config"
	"github.com/oddbit-project/sqlquery/utils"
)

const (
	ErrJsonInvalidSource = utils.Error("NewJsonProvider: Invalid source type")
)

type JsonProvider struct {
	configData map[string]json.RawMessage
	m          sync.RWMutex
}

// NewJsonProvider builds a provider from a raw message, reader, byte slice
// or file name.
func NewJsonProvider(src interface{}) (config.ConfigProvider, error) {
	p := &JsonProvider{
		configData: make(map[string]json.RawMessage),
	}
	switch v := src.(type) {
	case json.RawMessage:
		if err := json.Unmarshal(v, &p.configData); err != nil {
			return nil, err
		}
	case io.Reader:
		if err := p.fromReader(v); err != nil {
			return nil, err
		}
	case string:
		if err := p.fromFile(v); err != nil {
			return nil, err
		}
	case []byte:
		if err := json.Unmarshal(v, &p.configData); err != nil {
			return nil, err
		}
	default:
		return nil, ErrJsonInvalidSource
	}
	return p, nil
}

func (j *JsonProvider) fromReader(src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &j.configData)
}

func (j *JsonProvider) fromFile(fname string) error {
	f, err := os.Open(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	return j.fromReader(f)
}

func (j *JsonProvider) GetKey(key string, dest interface{}) error {
	j.m.RLock()
	defer j.m.RUnlock()
	if v, ok := j.configData[key]; ok {
		return json.Unmarshal(v, dest)
	}
	return config.ErrNoKey
}

// Get de-serializes everything to dest
func (j *JsonProvider) Get(dest interface{}) error {
	j.m.RLock()
	defer j.m.RUnlock()
	data, err := json.Marshal(j.configData)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (j *JsonProvider) GetStringKey(key string) (string, error) {
	j.m.RLock()
	defer j.m.RUnlock()

	var result string
	if v, ok := j.configData[key]; ok {
		if err := json.Unmarshal(v, &result); err != nil {
			return "", err
		}
		return result, nil
	}
	return "", config.ErrNoKey
}

func (j *JsonProvider) KeyExists(key string) bool {
	j.m.RLock()
	defer j.m.RUnlock()
	_, ok := j.configData[key]
	return ok
}
