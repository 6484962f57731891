package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/qrgen/pkg/logger"
	"github.com/dmitrymomot/qrgen/pkg/payload"
	"github.com/dmitrymomot/qrgen/pkg/qrcode"
)

// Image is a rendered QR code.
type Image struct {
	Body        []byte
	ContentType string
	Filename    string
	Format      qrcode.Format
	Payload     string
	Cached      bool
}

// Service renders QR requests. It is safe for concurrent use.
type Service struct {
	cache Cache
	log   *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCache enables the render cache. Nil disables it.
func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

// WithLogger sets the logger used for cache failures and render events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func New(opts ...Option) *Service {
	s := &Service{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("generator"))
	return s
}

// Payload returns the text that would be encoded for req.
func (s *Service) Payload(req Request) (string, error) {
	kind, err := payload.ParseKind(req.Type)
	if err != nil {
		return "", classify(ErrInvalidKind, err)
	}

	text, err := payload.Format(kind, req.Data)
	switch {
	case err == nil:
		return text, nil
	case errors.Is(err, payload.ErrMissingField):
		return "", classify(ErrMissingField, err)
	case errors.Is(err, payload.ErrInvalidField):
		return "", classify(ErrInvalidField, err)
	case errors.Is(err, payload.ErrUnknownKind):
		return "", classify(ErrInvalidKind, err)
	default:
		return "", err
	}
}

// Generate formats and renders req.
func (s *Service) Generate(ctx context.Context, req Request) (*Image, error) {
	start := time.Now()

	text, err := s.Payload(req)
	if err != nil {
		return nil, err
	}
	opts, err := req.Options()
	if err != nil {
		return nil, classify(ErrInvalidOption, err)
	}

	img := &Image{
		ContentType: opts.Format.ContentType(),
		Filename:    "qr." + opts.Format.Extension(),
		Format:      opts.Format,
		Payload:     text,
	}

	key := cacheKey(text, opts)
	if body, ok := s.lookup(ctx, key); ok {
		img.Body, img.Cached = body, true
	} else {
		body, err := qrcode.Render(text, opts)
		if err != nil {
			var optErr *qrcode.OptionError
			if errors.As(err, &optErr) {
				return nil, classify(ErrInvalidOption, err)
			}
			return nil, classify(ErrEncodingFailure, err)
		}
		img.Body = body
		s.store(ctx, key, body)
	}

	s.log.DebugContext(ctx, "qr generated",
		logger.Kind(req.Type),
		logger.ImageFormat(string(opts.Format)),
		logger.Cached(img.Cached),
		slog.Int("bytes", len(img.Body)),
		logger.Duration(time.Since(start)),
	)
	return img, nil
}

// DataURI renders req as a data: URI for embedding in HTML. It skips the
// render cache.
func (s *Service) DataURI(ctx context.Context, req Request) (string, error) {
	text, err := s.Payload(req)
	if err != nil {
		return "", err
	}
	opts, err := req.Options()
	if err != nil {
		return "", classify(ErrInvalidOption, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	uri, err := qrcode.DataURI(text, opts)
	if err != nil {
		return "", classify(ErrEncodingFailure, err)
	}
	return uri, nil
}

func (s *Service) lookup(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	body, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.WarnContext(ctx, "render cache read failed", logger.Error(err))
		return nil, false
	}
	return body, ok
}

func (s *Service) store(ctx context.Context, key string, body []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, body); err != nil {
		s.log.WarnContext(ctx, "render cache write failed", logger.Error(err))
	}
}

// cacheKey digests everything that influences the rendered bytes.
func cacheKey(text string, o qrcode.Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%s|%v|%v\x00", o.Level, o.Scale, o.Border, o.Format, o.Dark, o.Light)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
