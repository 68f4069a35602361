// Package config provides configuration structures and utilities for applerr.
// It defines the reporter's output format, exit status and journal settings,
// and loads them from YAML or INI configuration files.
package config
