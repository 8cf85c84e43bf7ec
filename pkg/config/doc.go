// Package config provides YAML-based configuration for the ladder
// runtime.
//
// Configuration is loaded from a YAML file, defaults are applied for
// unset fields, environment variables prefixed LADDER_ may override
// file values, and the final result is validated before use. Validation
// collects every failing field rather than stopping at the first.
package config
