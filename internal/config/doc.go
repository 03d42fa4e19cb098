// Package config provides environment-driven configuration for the backend.
//
// Configuration follows 12-factor conventions: every knob is an environment
// variable with a sensible default, processed via envconfig. PTY policy
// (session cap, shell allow-list, env deny-list) is deliberately not here;
// it is fixed policy owned by the pty package.
package config
