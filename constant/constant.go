// file: trie/constant/constant.go
package constant

import "errors"

// ----------------------------------------------------
// Standard errors
// ----------------------------------------------------

var (
	ErrOutOfMemory     = errors.New("allocator exhausted")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrBadArgs         = errors.New("wrong number of arguments")
	ErrCheckFailed     = errors.New("check failed")
)

// ----------------------------------------------------
// Config paths & keys
// ----------------------------------------------------

const (
	EnvPrefix         = "TRIE_"
	EnvConfigPath     = "TRIE_CONFIG"
	DefaultConfigFile = "trie.json"

	ConfigKeys     = "keys"
	ConfigWorkers  = "workers"
	ConfigKeyMode  = "key_mode"
	ConfigFailAt   = "fail_at"
	ConfigLogLevel = "log_level"
)

// ----------------------------------------------------
// Harness defaults
// ----------------------------------------------------

const (
	DefaultKeys     = 100000
	DefaultWorkers  = 1
	DefaultFailAt   = 3
	DefaultLogLevel = "info"

	KeyModeSeq    = "seq"
	KeyModeRandom = "random"
)
