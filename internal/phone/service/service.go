// Package service holds the phone use cases shared by the HTTP API and the
// UI bridge.
package service

import (
	"context"
	"strings"
	"time"

	"phone_printer/platform/apperr"
	"phone_printer/platform/logger"
	"phone_printer/platform/phone"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	// invalidMarker is cached for numbers that did not validate.
	invalidMarker = "-"
)

// Cache is the subset of a key/value cache the service needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Service formats and validates phone numbers.
type Service struct {
	formatter *phone.Formatter
	cache     Cache
	cacheTTL  time.Duration
	log       *logger.Logger
}

// New creates a Service without a cache.
func New(formatter *phone.Formatter, log *logger.Logger) *Service {
	return &Service{formatter: formatter, log: log}
}

// SetCache enables memoization of validation results.
func (s *Service) SetCache(cache Cache, ttl time.Duration) {
	s.cache = cache
	s.cacheTTL = ttl
}

// FormatIncremental returns the as-you-type rendering of number.
func (s *Service) FormatIncremental(_ context.Context, number, countryCode string) string {
	return s.formatter.FormatIncremental(number, countryCode)
}

// FormatIfValid returns the E.164 rendering of number when it is valid for
// countryCode. Cache failures are logged and fall through to the formatter.
func (s *Service) FormatIfValid(ctx context.Context, number, countryCode string) (string, bool) {
	if s.cache == nil {
		return s.formatter.FormatIfValid(number, countryCode)
	}

	key := s.cacheKey(number, countryCode)
	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		s.log.WithContext(ctx).CacheError("get", err)
	} else if ok {
		if cached == invalidMarker {
			return "", false
		}
		return cached, true
	}

	result, valid := s.formatter.FormatIfValid(number, countryCode)
	value := result
	if !valid {
		value = invalidMarker
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.log.WithContext(ctx).CacheError("set", err)
	}
	return result, valid
}

// Regions lists the supported regions.
func (s *Service) Regions() []phone.RegionInfo {
	return s.formatter.Regions()
}

// Region returns one region's metadata.
func (s *Service) Region(countryCode string) (phone.RegionInfo, error) {
	info, ok := s.formatter.Example(countryCode)
	if !ok {
		return phone.RegionInfo{}, apperr.NotFound("region not supported").WithOp("phone.Region")
	}
	return info, nil
}

// QRCode renders a PNG QR code that dials the number.
func (s *Service) QRCode(ctx context.Context, number, countryCode string, size int) ([]byte, error) {
	e164, ok := s.FormatIfValid(ctx, number, countryCode)
	if !ok {
		return nil, apperr.Validation("not a valid phone number").WithOp("phone.QRCode")
	}
	if size == 0 {
		size = defaultQRSize
	}

	png, err := qrcode.Encode("tel:"+e164, qrcode.Medium, size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to render qr code", err).WithOp("phone.QRCode")
	}
	return png, nil
}

func (s *Service) cacheKey(number, countryCode string) string {
	region := strings.ToUpper(strings.TrimSpace(countryCode))
	if region == "" {
		region = s.formatter.DefaultRegion()
	}
	return "valid:" + region + ":" + strings.TrimSpace(number)
}
