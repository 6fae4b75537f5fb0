package router

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/artmatch/internal/pkg/goerror"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

func (r *Request) GetParamInt64(key string) (int64, error) {
	value, err := strconv.ParseInt(r.GetParam(key), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat("param " + key + " must be an integer")
	}
	return value, nil
}

func (r *Request) GetQuery(key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// GetQueryInt32 returns def when the query is absent.
func (r *Request) GetQueryInt32(key string, def int32) (int32, error) {
	queryValue := r.GetQuery(key)
	if queryValue == "" {
		return def, nil
	}

	value, err := strconv.ParseInt(queryValue, 10, 32)
	if err != nil {
		return 0, goerror.NewInvalidFormat("query " + key + " must be an integer")
	}

	return int32(value), nil
}

// DecodeBody decodes the JSON body into dst.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return goerror.NewInvalidFormat()
	}

	return nil
}

// StreamSingleFile returns the first multipart part whose form field is name,
// skipping the parts before it. The caller must close the part.
func (r *Request) StreamSingleFile(name string) (*multipart.Part, error) {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		return nil, goerror.NewInvalidFormat("Invalid request content-type")
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, goerror.NewInvalidInput(nil, name, name+" is required")
		}
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}

		if part.FormName() == name {
			return part, nil
		}

		_, errCopy := io.Copy(io.Discard, part)
		errClose := part.Close()
		if err := errors.Join(errCopy, errClose); err != nil {
			return nil, goerror.NewInvalidFormat()
		}
	}
}

// ReadSingleFile reads the multipart field name fully, rejecting payloads
// larger than limit bytes with a 413.
func (r *Request) ReadSingleFile(name string, limit int64) ([]byte, string, error) {
	part, err := r.StreamSingleFile(name)
	if err != nil {
		return nil, "", err
	}
	defer part.Close()

	data, err := io.ReadAll(io.LimitReader(part, limit+1))
	if err != nil {
		return nil, "", goerror.NewInvalidFormat()
	}
	if int64(len(data)) > limit {
		return nil, "", goerror.NewBusiness("File too large", goerror.CodeTooLarge)
	}

	return data, part.Header.Get("Content-Type"), nil
}

const maxFormValueBytes = 4 << 10

// Form is a multipart form with text values and one file.
type Form struct {
	Values   map[string]string
	File     []byte
	Filename string
}

// ReadForm reads every part of a multipart form. Text values above 4KiB are
// rejected with a 400 and the file field above limit bytes with a 413.
func (r *Request) ReadForm(fileField string, limit int64) (*Form, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, goerror.NewInvalidFormat("Invalid request content-type")
	}

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	form := &Form{Values: map[string]string{}}
	seenFile := false
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}

		capBytes := int64(maxFormValueBytes)
		if part.FormName() == fileField {
			capBytes = limit
		}

		data, err := io.ReadAll(io.LimitReader(part, capBytes+1))
		_ = part.Close()
		if err != nil {
			return nil, goerror.NewInvalidFormat()
		}

		if part.FormName() != fileField {
			if int64(len(data)) > capBytes {
				return nil, goerror.NewInvalidFormat("form value " + part.FormName() + " is too long")
			}
			form.Values[part.FormName()] = strings.TrimSpace(string(data))
			continue
		}

		if int64(len(data)) > capBytes {
			return nil, goerror.NewBusiness("File too large", goerror.CodeTooLarge)
		}
		form.File, form.Filename, seenFile = data, part.FileName(), true
	}

	if !seenFile {
		return nil, goerror.NewInvalidInput(nil, fileField, fileField+" is required")
	}

	return form, nil
}
