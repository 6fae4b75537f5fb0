// Package ai is the client of the image AI microservice: artwork matching,
// face swapping, face detection and artwork indexing.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/artmatch/internal/pkg/instrument"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultBackoff     = 200 * time.Millisecond
	maxResponseBytes   = 32 << 20
	statusNoMatch      = "no_match"
	fieldFile          = "file"
	fieldTargetPath    = "target_path"
	defaultSelfieName  = "selfie.jpg"
	defaultCheckedName = "check.jpg"
)

var (
	// ErrBaseURLRequired is returned by New without a base URL.
	ErrBaseURLRequired = errors.New("ai: base url is required")
	// ErrNoMatch is returned by FindMatch when the index has no close artwork.
	ErrNoMatch = errors.New("ai: no matching artwork")
	// ErrResponseTooLarge is returned when a response body exceeds maxResponseBytes.
	ErrResponseTooLarge = fmt.Errorf("ai: response exceeds %d bytes", maxResponseBytes)
)

// StatusError is a non-2xx answer of the AI service.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("ai: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("ai: unexpected status %d: %s", e.StatusCode, e.Detail)
}

// Config defines the inputs for New.
type Config struct {
	BaseURL string
	// Timeout bounds one attempt. Zero means 60s.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a transport error or 5xx.
	MaxRetries uint64
	// Backoff is the first retry delay, doubled on each retry. Zero means 200ms.
	Backoff    time.Duration
	HTTPClient *http.Client
	Instrument instrument.Instrumentation
}

type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries uint64
	backoff    time.Duration
	ins        instrument.Instrumentation
}

func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultBackoff
	}

	ins := cfg.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	return &Client{
		baseURL:    baseURL,
		http:       hc,
		maxRetries: cfg.MaxRetries,
		backoff:    backoff,
		ins:        ins,
	}, nil
}

type filePart struct {
	name string
	data []byte
}

// post sends a multipart form and returns the 2xx response body. The form is
// rebuilt for every attempt.
func (c *Client) post(ctx context.Context, op, path string, fields [][2]string, file filePart) (_ []byte, err error) {
	ctx, span := c.ins.Tracer("matching.outbound.ai").Start(ctx, op)
	span.SetAttributes(attribute.String("ai.path", path), attribute.Int("ai.image_size", len(file.data)))
	defer func() {
		if err != nil && !errors.Is(err, ErrNoMatch) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	b := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.backoff))

	var out []byte
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		body, contentType, err := encodeForm(fields, file)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", contentType)
		otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(data) > maxResponseBytes {
			return ErrResponseTooLarge
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			serr := &StatusError{StatusCode: resp.StatusCode, Detail: detail(data)}
			if resp.StatusCode >= 500 {
				return retry.RetryableError(serr)
			}
			return serr
		}

		out = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func encodeForm(fields [][2]string, file filePart) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldFile, file.name))
	h.Set("Content-Type", http.DetectContentType(file.data))
	w, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := w.Write(file.data); err != nil {
		return nil, "", err
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}

// detail extracts the "detail" of an error body, or the trimmed body itself.
func detail(body []byte) string {
	var e struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != nil {
		if s, ok := e.Detail.(string); ok {
			return s
		}
		b, _ := json.Marshal(e.Detail)
		return string(b)
	}

	const maxDetail = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxDetail {
		cut := maxDetail
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return s
}

func decode(op string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ai: decode %s response: %w", op, err)
	}
	return nil
}
