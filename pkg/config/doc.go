// Package config loads service configuration from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file with LoadEnvFile. Struct fields carry cleanenv `env` and
// `env-default` tags. Durations accept ISO 8601 ("PT30S", "P15D") as well
// as Go duration strings.
package config
