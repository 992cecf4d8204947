// Package config provides configuration management for iconaudit.
package config
