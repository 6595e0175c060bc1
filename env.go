package clidc

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Env is a source of environment variables for env= tags.
type Env interface {
	Lookup(key string) (value string, ok bool)
}

type OSEnv struct{}

func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

type MapEnv map[string]string

func (me MapEnv) Lookup(key string) (string, bool) {
	value, ok := me[key]
	return value, ok
}

// ChainEnv returns the value from the first Env that has the key.
type ChainEnv []Env

func (ce ChainEnv) Lookup(key string) (string, bool) {
	for _, env := range ce {
		if value, ok := env.Lookup(key); ok {
			return value, true
		}
	}
	return "", false
}

// EnvFile is the content of a dotenv file.
type EnvFile struct {
	MapEnv
	Path string
}

func LoadEnvFile(path string) (*EnvFile, error) {
	data, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read env file %s", path)
	}
	return &EnvFile{MapEnv: data, Path: path}, nil
}

// WithEnv looks up env= tags in env instead of the process environment.
func WithEnv(env Env) Option {
	return WithLookupEnv(func(key string) (string, bool, error) {
		value, ok := env.Lookup(key)
		return value, ok, nil
	})
}

// WithEnvFile looks up env= tags in the process environment first and then
// in the dotenv file at path. A file that cannot be read makes Add fail.
func WithEnvFile(path string) Option {
	return optionFunc(func(s *settings) {
		file, err := LoadEnvFile(path)
		if err != nil {
			s.err = err
			return
		}
		WithEnv(ChainEnv{OSEnv{}, file}).Apply(s)
	})
}
