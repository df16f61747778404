package segtrie

import (
	"fmt"
	"net/http"
	"strings"

	"dario.cat/mergo"
	goerrors "github.com/goliatone/go-errors"
)

const (
	DefaultParamPrefix    = ":"
	DefaultPathSeparator  = "/"
	DefaultWildcardSymbol = "*"
)

// Config holds the markers used to split and classify segments.
type Config struct {
	ParamPrefix    string       `yaml:"param_prefix" json:"param_prefix"`
	PathSeparator  string       `yaml:"path_separator" json:"path_separator"`
	WildcardSymbol string       `yaml:"wildcard_symbol" json:"wildcard_symbol"`
	WildcardMode   WildcardMode `yaml:"wildcard_mode" json:"wildcard_mode"`
}

func DefaultConfig() Config {
	return Config{
		ParamPrefix:    DefaultParamPrefix,
		PathSeparator:  DefaultPathSeparator,
		WildcardSymbol: DefaultWildcardSymbol,
		WildcardMode:   WildcardModeTrailing,
	}
}

// WithDefaults returns a copy of c with empty fields taken from DefaultConfig.
func (c Config) WithDefaults() Config {
	out := c
	if err := mergo.Merge(&out, DefaultConfig()); err != nil {
		// mergo only fails on mismatched kinds, which cannot happen here
		return DefaultConfig()
	}
	out.WildcardMode = out.WildcardMode.normalize()
	return out
}

// Validate reports marker combinations that would make patterns ambiguous.
func (c Config) Validate() error {
	cfg := c.WithDefaults()

	var problems []string
	if !c.WildcardMode.valid() {
		problems = append(problems, fmt.Sprintf("unknown wildcard mode %q", c.WildcardMode))
	}
	if strings.HasPrefix(cfg.PathSeparator, cfg.ParamPrefix) || strings.HasPrefix(cfg.ParamPrefix, cfg.PathSeparator) {
		problems = append(problems, fmt.Sprintf("path separator %q overlaps param prefix %q", cfg.PathSeparator, cfg.ParamPrefix))
	}
	if strings.HasPrefix(cfg.WildcardSymbol, cfg.ParamPrefix) || strings.HasPrefix(cfg.ParamPrefix, cfg.WildcardSymbol) {
		problems = append(problems, fmt.Sprintf("wildcard symbol %q overlaps param prefix %q", cfg.WildcardSymbol, cfg.ParamPrefix))
	}
	if strings.Contains(cfg.WildcardSymbol, cfg.PathSeparator) {
		problems = append(problems, fmt.Sprintf("wildcard symbol %q contains path separator %q", cfg.WildcardSymbol, cfg.PathSeparator))
	}

	if len(problems) == 0 {
		return nil
	}

	return goerrors.New("invalid tree config: "+strings.Join(problems, "; "), goerrors.CategoryValidation).
		WithCode(http.StatusBadRequest).
		WithTextCode("INVALID_CONFIG").
		WithMetadata(map[string]any{
			"param_prefix":    c.ParamPrefix,
			"path_separator":  c.PathSeparator,
			"wildcard_symbol": c.WildcardSymbol,
			"wildcard_mode":   string(c.WildcardMode),
		})
}
