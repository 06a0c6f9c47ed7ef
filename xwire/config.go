package xwire

import (
	"github.com/arloliu/xwire/internal/options"
)

// Config holds the per-call-site configuration recognized by the core,
// per §6.3: xlang, track_ref, compatible, check_struct_version. The zero
// value is the all-defaults configuration (xlang off, no ref tracking,
// no TypeMeta emission).
type Config struct {
	xlang              bool
	trackRef           bool
	compatible         bool
	checkStructVersion bool
}

// Option configures a Config.
type Option = options.Option[*Config]

// WithXLang enables the IS_XLANG envelope bit. Both the writer and the
// reader must agree on this setting, or ReadEnvelope reports a mismatch.
func WithXLang() Option {
	return options.NoError(func(c *Config) { c.xlang = true })
}

// WithTrackRef enables reference tracking as the default ref mode for
// call sites that don't explicitly request otherwise.
func WithTrackRef() Option {
	return options.NoError(func(c *Config) { c.trackRef = true })
}

// WithCompatible enables TypeMeta emission for struct-kind values,
// letting a reader with a locally different field set still decode the
// payload field by field.
func WithCompatible() Option {
	return options.NoError(func(c *Config) { c.compatible = true })
}

// WithCheckStructVersion enables the optional struct content-hash prefix
// written when compatible mode is off. It has no effect when
// WithCompatible is also set, since the full TypeMeta block already
// carries the hash.
func WithCheckStructVersion() Option {
	return options.NoError(func(c *Config) { c.checkStructVersion = true })
}

// NewConfig builds a Config from a set of Options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}
