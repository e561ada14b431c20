// Package normalizer converts heterogeneous, untrusted input (pasted text,
// uploaded txt/pdf/docx documents, web URLs) into bounded plain text for the
// generation adapter. Degraded content is preferred over hard failure: cases
// like binary URLs or script-rendered pages yield a diagnostic placeholder
// marker tagged as skipped rather than an error, while genuinely actionable
// failures (bad URL, HTTP error status, decode failure, unsupported type,
// timeout) surface as classified errors.
package normalizer
