// Package api implements the HTTP surface of the catalog: request and
// response shaping, input validation, and the mapping from business
// errors to HTTP status codes. Handlers never format business decisions
// themselves; they delegate to the catalog and auth services.
package api
