// Package http contains the HTTP transport layer: chi routers and handlers
// for dataset uploads, column mapping, the derived views, CSV export, and
// the health endpoints. Handlers decode and validate requests, delegate to
// the services layer, and render responses; errors are mapped to RFC 7807
// problem documents by the shared ErrorHandler.
package http
