// Package manifest loads and validates the YAML batch manifest consumed by
// the dispatchrun command.
package manifest

import (
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Manifest describes one batch of shell commands and how to dispatch it.
type Manifest struct {
	// Mode selects the execution backend: "thread" or "process".
	Mode string `mapstructure:"mode" validate:"oneof=thread process"`

	// MaxWorkers bounds concurrently running commands.
	MaxWorkers int `mapstructure:"max_workers" validate:"min=1"`

	// FailFast stops admitting commands after the first failure.
	FailFast bool `mapstructure:"fail_fast"`

	// Commands is the ordered batch; outcomes are reported in this order.
	Commands []Command `mapstructure:"commands" validate:"required,min=1,dive"`
}

// Command is one shell command in the batch.
type Command struct {
	Name string `mapstructure:"name" validate:"required"`
	Run  string `mapstructure:"run" validate:"required"`
}

// Load reads the manifest file at path, applies defaults, and validates it.
func Load(path string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("mode", "thread")
	v.SetDefault("max_workers", runtime.GOMAXPROCS(0))
	v.SetDefault("fail_fast", false)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("manifest: reading %s: %w", path, err)
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("manifest: decoding %s: %w", path, err)
	}
	if err := validator.New().Struct(&m); err != nil {
		return nil, fmt.Errorf("manifest: validating %s: %w", path, err)
	}
	return &m, nil
}
