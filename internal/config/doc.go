// Package config handles runtime configuration loading (defaults, optional
// config file, VIDGRAB_ environment variables) and the user settings that are
// persisted in the local store.
package config
