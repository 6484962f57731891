package handler

import (
	"mime"
	"net/http"
	"strconv"
)

// blobResponse writes raw bytes such as rendered images.
type blobResponse struct {
	status      int
	contentType string
	body        []byte
	header      http.Header
}

// BlobOption configures a binary response.
type BlobOption func(*blobResponse)

// WithBlobStatus sets custom HTTP status code.
func WithBlobStatus(status int) BlobOption {
	return func(b *blobResponse) { b.status = status }
}

// WithHeader sets an additional response header.
func WithHeader(key, value string) BlobOption {
	return func(b *blobResponse) { b.header.Set(key, value) }
}

// WithInline marks the body for inline display with a suggested file name.
func WithInline(filename string) BlobOption {
	return withDisposition("inline", filename)
}

// WithAttachment asks the browser to download the body as filename.
func WithAttachment(filename string) BlobOption {
	return withDisposition("attachment", filename)
}

func withDisposition(kind, filename string) BlobOption {
	return func(b *blobResponse) {
		params := map[string]string{}
		if filename != "" {
			params["filename"] = filename
		}
		b.header.Set("Content-Disposition", mime.FormatMediaType(kind, params))
	}
}

func (b blobResponse) Render(w http.ResponseWriter, r *http.Request) error {
	for key, values := range b.header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.Header().Set("Content-Type", b.contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.body)))
	w.WriteHeader(b.status)
	if r.Method == http.MethodHead {
		return nil
	}
	_, err := w.Write(b.body)
	return err
}

// Blob creates a response that writes body verbatim with the given content type.
//
// Example:
//
//	return handler.Blob(png, "image/png", handler.WithInline("qr.png"))
func Blob(body []byte, contentType string, opts ...BlobOption) Response {
	b := &blobResponse{
		status:      http.StatusOK,
		contentType: contentType,
		body:        body,
		header:      make(http.Header),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}
