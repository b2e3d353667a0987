package apiclient

import (
	"context"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ResponseType selects how a response body is surfaced.
type ResponseType int

const (
	// ResponseDefault expects a JSON (or empty) body.
	ResponseDefault ResponseType = iota
	// ResponseBinary keeps the body as raw bytes, e.g. a PDF download.
	ResponseBinary
)

// String returns the response type name.
func (t ResponseType) String() string {
	switch t {
	case ResponseBinary:
		return "binary"
	default:
		return "default"
	}
}

// Params holds query parameters. Values may be scalars or slices; slices
// encode as repeated keys and nil values are skipped.
type Params map[string]any

// Request describes a single dispatch. It is built once per call and must
// not be modified after it is handed to a Doer.
type Request struct {
	Method string
	// Path is appended to the dispatcher's base URL. Identifiers are
	// already interpolated.
	Path   string
	Params Params
	// Body is JSON-encoded unless it is an io.Reader, which is streamed
	// as-is with ContentType.
	Body        any
	ContentType string

	ResponseType ResponseType

	// Timeout overrides the dispatcher default for this call only.
	Timeout time.Duration

	// Endpoint names the binding for logs and metrics.
	Endpoint string
}

// Doer dispatches a Request. *Dispatcher is the production implementation.
type Doer interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// idPlaceholder marks where an identifier goes in an endpoint path.
const idPlaceholder = "{id}"

// Endpoint binds a name to a fixed method and path template.
type Endpoint struct {
	Name   string
	Method string
	Path   string
	// Wrap, when set, nests the caller's data under this body field.
	Wrap         string
	Timeout      time.Duration
	ResponseType ResponseType
}

// NewEndpoint returns an endpoint with the default response type and no
// timeout override.
func NewEndpoint(name, method, path string) Endpoint {
	return Endpoint{Name: name, Method: method, Path: path}
}

// WithWrap returns a copy of e that nests data under field.
func (e Endpoint) WithWrap(field string) Endpoint {
	e.Wrap = field
	return e
}

// WithTimeout returns a copy of e with a per-call timeout.
func (e Endpoint) WithTimeout(d time.Duration) Endpoint {
	e.Timeout = d
	return e
}

// WithResponseType returns a copy of e with a different response type.
func (e Endpoint) WithResponseType(t ResponseType) Endpoint {
	e.ResponseType = t
	return e
}

// HasID reports whether the path template takes an identifier.
func (e Endpoint) HasID() bool {
	return strings.Contains(e.Path, idPlaceholder)
}

// URL substitutes id into the path template verbatim.
func (e Endpoint) URL(id string) string {
	return strings.Replace(e.Path, idPlaceholder, id, 1)
}

// Request builds a fresh Request for this endpoint.
func (e Endpoint) Request(id string, params Params, data any) *Request {
	body := data
	if e.Wrap != "" {
		body = map[string]any{e.Wrap: emptyIfNilSlice(data)}
	}
	return &Request{
		Method:       e.Method,
		Path:         e.URL(id),
		Params:       params,
		Body:         body,
		ResponseType: e.ResponseType,
		Timeout:      e.Timeout,
		Endpoint:     e.Name,
	}
}

// emptyIfNilSlice turns a nil slice into an empty one of the same type so a
// wrapped list encodes as [] rather than null.
func emptyIfNilSlice(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return reflect.MakeSlice(rv.Type(), 0, 0).Interface()
	}
	return v
}

// Call builds a Request for e and dispatches it through d.
func (e Endpoint) Call(ctx context.Context, d Doer, id string, params Params, data any) (*Response, error) {
	return d.Do(ctx, e.Request(id, params, data))
}

// FormatID renders a numeric resource identifier for a path template.
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
