package master

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig is the TOML key mapping for the exchange policy.
type fileConfig struct {
	Retries       int `toml:"retries"`
	WaitToRetryMs int `toml:"wait_to_retry_ms"`
}

// LoadConfig builds a Config from a TOML file, overlaying defaults with the
// keys present in the file. Additional options are applied after the file and
// win over it.
//
// Recognized keys:
//
//	retries          = 3     # additional attempts beyond the first
//	wait_to_retry_ms = 250   # busy/acknowledge wait, milliseconds
func LoadConfig(path string, opts ...Option) (*Config, error) {
	var raw fileConfig

	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("master: load config %s: %w", path, err)
	}

	var fileOpts []Option
	if meta.IsDefined("retries") {
		fileOpts = append(fileOpts, WithRetries(raw.Retries))
	}
	if meta.IsDefined("wait_to_retry_ms") {
		fileOpts = append(fileOpts, WithWaitToRetry(time.Duration(raw.WaitToRetryMs)*time.Millisecond))
	}

	return NewConfig(append(fileOpts, opts...)...)
}
