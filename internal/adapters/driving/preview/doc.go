// Package preview serves the resume over HTTP: a printable HTML page for the
// browser's print dialog and a small JSON API.
package preview
