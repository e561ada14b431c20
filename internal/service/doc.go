// Package service orchestrates the normalization and generation stages into
// the operations the API exposes. It owns no business rules of its own; it
// sequences the stages and logs stage outcomes.
package service
