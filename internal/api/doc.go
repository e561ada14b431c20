// Package api contains the HTTP handlers, request and response models, and
// the mapping from internal errors to client-safe HTTP responses.
package api
