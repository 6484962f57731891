// Package qr mounts the QR generator HTTP surface: the JSON API under /api,
// the interactive page at / and its embedded static assets under /assets.
package qr
