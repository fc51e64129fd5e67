// Package config loads runtime configuration for the chui client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file passed to Load.
//  3. Command-line flags, applied by the CLI layer on top of Load's result.
//
// # JSON schema
//
//	{
//	  "server_endpoint_url": "http://127.0.0.1:8787",
//	  "data_dir": "/home/me/.chui",
//	  "request_timeout": "10s"
//	}
//
// Environment variables are not read; use the JSON file or flags.
package config
