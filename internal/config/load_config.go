package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"gopkg.in/yaml.v3"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// lines appended to files must have visible content
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Load returns the built-in configuration, overlaid with the YAML file at
// configFile when one is given, and validated.
//
// Only the keys present in the file replace defaults; lists are replaced as a
// whole. Unknown keys are rejected so typos do not silently fall back to the
// defaults.
func Load(configFile string) (*Config, error) {
	cfg := Default()
	if configFile != "" {
		raw, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		if err := decode(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", configFile, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		// an empty file decodes to io.EOF, which just means "no overrides"
		return err
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]error, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Errorf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %w", errors.Join(msgs...))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Camera.SharedDirMode == 0 {
		return errors.New("invalid config: Config.Camera.SharedDirMode must not be 0000")
	}
	return nil
}
