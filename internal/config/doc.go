// Package config loads and validates YAML configuration for the dataset
// generator. Environment variables in ${VAR} form are expanded before
// parsing, defaults are applied to unset fields, and validation reports
// the offending key.
package config
