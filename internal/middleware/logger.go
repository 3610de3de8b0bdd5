package middleware

import (
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// RequestLogger returns a resty response middleware that logs method, URL,
// status code, latency and request ID of every completed exchange.
//
// Example log output:
//
//	{"level":"info","request_id":"123e4567-...","method":"POST","url":"https://.../buscar-lotes","status":200,"latency_ms":153,"message":"http_request"}
func RequestLogger(log zerolog.Logger) resty.ResponseMiddleware {
	return func(_ *resty.Client, res *resty.Response) error {
		log.Info().
			Str("request_id", res.Request.Header.Get(RequestIDHeader)).
			Str("method", res.Request.Method).
			Str("url", res.Request.URL).
			Int("status", res.StatusCode()).
			Int64("latency_ms", res.Time().Milliseconds()).
			Msg("http_request")
		return nil
	}
}

// ErrorLogger returns a resty error hook that logs transport failures
// (connection refused, timeouts, TLS errors).
func ErrorLogger(log zerolog.Logger) resty.ErrorHook {
	return func(r *resty.Request, err error) {
		log.Error().
			Err(err).
			Str("request_id", r.Header.Get(RequestIDHeader)).
			Str("method", r.Method).
			Str("url", r.URL).
			Msg("http_request_failed")
	}
}
