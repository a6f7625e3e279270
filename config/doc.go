// Package config loads and validates inkstudio configuration.
//
// Sources, highest precedence first: CLI flags, INKSTUDIO_* environment
// variables, YAML config files, built-in defaults. The resulting struct is
// validated with go-playground/validator before anything starts; a missing
// admin secret is a startup failure, not a runtime surprise.
package config
