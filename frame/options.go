// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frame

// config collects the options an Encoder or Decoder is constructed with.
type config struct {
	dialect Dialect
}

func defaultConfig() config {
	return config{dialect: DefaultDialect}
}

// Option configures an Encoder or Decoder at construction time, following
// the same functional-options shape other_examples/…hayabusa-cloud-framer…
// uses for its own framer constructors.
type Option func(*config)

// WithDialect selects the byte-stuffing dialect. The zero value of Encoder
// and Decoder construction uses DefaultDialect.
func WithDialect(d Dialect) Option {
	return func(c *config) { c.dialect = d }
}
