// Package middleware logs one structured event per GraphQL HTTP request with
// the resolvers and params the request carried.
package middleware

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/samwightt/gqllog/pkg/logdetails"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes caps how much of a request body is buffered for logging.
const DefaultMaxBodyBytes = 1 << 20

// Options configures the middleware.
type Options struct {
	Logger *zap.Logger
	// Message is the log message, "graphql request" when empty.
	Message string
	// MaxBodyBytes limits body buffering. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Request is what the middleware extracted from an HTTP request.
type Request struct {
	logdetails.Request
	OperationName string
}

// New returns middleware that logs each request after the wrapped handler has
// served it.
func New(opts Options) func(http.Handler) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	message := opts.Message
	if message == "" {
		message = "graphql request"
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			req, err := RequestFromHTTP(r, maxBody)
			if err != nil {
				logger.Debug("reading graphql request", zap.Error(err))
			}

			rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rw.status),
				zap.Duration("duration", time.Since(start)),
			}
			if req.OperationName != "" {
				fields = append(fields, zap.String("operation_name", req.OperationName))
			}
			fields = append(fields, logdetails.Details(req.Request).Fields()...)

			logger.Info(message, fields...)
		})
	}
}

// RequestFromHTTP pulls query, operation name and variables out of a GET query
// string, a JSON body or a form body. The body is restored so the next handler
// can read it. Malformed variables are dropped and reported through the
// returned error alongside whatever else was extracted.
func RequestFromHTTP(r *http.Request, maxBody int64) (Request, error) {
	if r.Method == http.MethodGet {
		values := r.URL.Query()
		return requestFromStrings(values.Get("query"), values.Get("operationName"), values.Get("variables"))
	}

	if r.Body == nil || r.Body == http.NoBody {
		return Request{}, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	if err != nil {
		return Request{}, fmt.Errorf("reading body: %w", err)
	}
	rest := r.Body
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(body), rest), rest}

	if int64(len(body)) > maxBody {
		return Request{}, fmt.Errorf("body exceeds %d bytes", maxBody)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return Request{}, fmt.Errorf("parsing form body: %w", err)
		}
		return requestFromStrings(values.Get("query"), values.Get("operationName"), values.Get("variables"))
	case "application/graphql":
		return Request{Request: logdetails.Request{Query: string(body)}}, nil
	default:
		return requestFromJSON(body)
	}
}

func requestFromJSON(body []byte) (Request, error) {
	if !gjson.ValidBytes(body) {
		return Request{}, fmt.Errorf("body is not valid JSON")
	}
	result := gjson.GetManyBytes(body, "query", "operationName", "variables")

	req := Request{
		Request:       logdetails.Request{Query: result[0].String()},
		OperationName: result[1].String(),
	}

	variables := result[2]
	var raw string
	switch {
	case variables.IsObject():
		raw = variables.Raw
	case variables.Type == gjson.String:
		// some clients send variables as an encoded JSON string
		raw = variables.Str
	default:
		return req, nil
	}

	vars, err := logdetails.ParseVariables([]byte(raw))
	if err != nil {
		return req, err
	}
	req.Variables = vars
	return req, nil
}

func requestFromStrings(query, operationName, variables string) (Request, error) {
	req := Request{
		Request:       logdetails.Request{Query: query},
		OperationName: operationName,
	}
	vars, err := logdetails.ParseVariables([]byte(variables))
	if err != nil {
		return req, err
	}
	req.Variables = vars
	return req, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if !s.wroteHeader {
		s.status = code
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wroteHeader = true
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
