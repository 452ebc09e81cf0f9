// Package api holds the OpenAPI document of the tracking HTTP API.
package api

import (
	_ "embed"
)

// OpenAPI is the API document the HTTP adapter validates requests against.
//
//go:embed openapi.yml
var OpenAPI []byte
