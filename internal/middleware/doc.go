// Package middleware provides gin middleware for the HTTP surface: CORS,
// per-IP rate limiting, request-ID tagging, and request metrics recording.
package middleware
