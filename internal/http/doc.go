// Package http provides the REST handlers for the backend: health and
// session introspection, preference get/set, and the recovery-file store.
// Interactive session I/O goes over the WebSocket in package ws; these
// endpoints carry everything that fits request/response.
package http
