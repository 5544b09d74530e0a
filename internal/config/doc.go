// Package config handles configuration loading for smhi-mcp.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults; running without a
// config file at all is supported through Default().
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	database:
//	  path: "${SMHI_MCP_DB}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Server settings:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
// Database (blob cache and request counting; omit to run without one):
//
//	database:
//	  path: "/var/lib/smhi-mcp/smhi.db"
//
// Upstream API base URLs (defaults to the public SMHI endpoints):
//
//	smhi:
//	  metobs_base_url: "https://opendata-download-metobs.smhi.se/api/version/1.0"
//	  metfcst_base_url: "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2"
//
// In-memory response cache:
//
//	cache:
//	  max_entries: 1000
//
// Request ceiling (per UTC day, 429 beyond it):
//
//	limits:
//	  daily_max: 95000
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Metrics:
//
//	metrics:
//	  enabled: true
//	  path: "/metrics"
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load("/etc/smhi-mcp/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
