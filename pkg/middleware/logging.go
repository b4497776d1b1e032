package middleware

import (
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/vfg2006/lead-qualifier-api/pkg/log"
)

// Requisições acima deste tempo geram um aviso extra
const slowRequestThreshold = 500 * time.Millisecond

// LoggingMiddleware registra informações sobre cada requisição HTTP
func LoggingMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Gera um ID de correlação para esta requisição
			ctx, correlationID := log.WithCorrelationID(r.Context())
			r = r.WithContext(ctx)

			lrw := newLoggingResponseWriter(w)
			startTime := time.Now()
			isDev := log.IsDevelopment()

			if isDev {
				log.L.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				}).Info("→ Iniciando requisição")
			} else {
				log.L.WithFields(requestFields(r, correlationID)).Info("Requisição iniciada")
			}

			next.ServeHTTP(lrw, r)

			elapsed := time.Since(startTime)
			if isDev {
				logDevelopmentCompletion(r, lrw, elapsed)
			} else {
				logProductionCompletion(r, lrw, correlationID, elapsed)
			}
		})
	}
}

func requestFields(r *http.Request, correlationID string) log.Fields {
	return log.Fields{
		"correlation_id": correlationID,
		"actor_id":       log.GetActorID(r.Context()),
		"remote_addr":    r.RemoteAddr,
		"method":         r.Method,
		"path":           r.URL.Path,
		"query":          r.URL.RawQuery,
		"user_agent":     r.UserAgent(),
		"content_type":   r.Header.Get("Content-Type"),
		"content_length": r.ContentLength,
	}
}

func logDevelopmentCompletion(r *http.Request, lrw *loggingResponseWriter, elapsed time.Duration) {
	statusSymbol := "✓"
	if lrw.statusCode >= 400 {
		statusSymbol = "✗"
	}

	logger := log.L.WithFields(log.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"status_code": lrw.statusCode,
	})
	logByStatus(logger, lrw.statusCode, fmt.Sprintf("%s Completada em %s", statusSymbol, formatDuration(elapsed)))

	if elapsed > slowRequestThreshold {
		log.L.Warnf("⚠ Requisição lenta: %s %s (%dms)", r.Method, r.URL.Path, elapsed.Milliseconds())
	}
}

func logProductionCompletion(r *http.Request, lrw *loggingResponseWriter, correlationID string, elapsed time.Duration) {
	fields := log.Fields{
		"correlation_id": correlationID,
		"actor_id":       log.GetActorID(r.Context()),
		"method":         r.Method,
		"path":           r.URL.Path,
		"duration_ms":    elapsed.Milliseconds(),
		"status_code":    lrw.statusCode,
		"response_bytes": lrw.bytesWritten,
	}

	logger := log.L.WithFields(fields)
	switch {
	case lrw.statusCode >= 500:
		logger.Error("Requisição finalizada com erro")
	case lrw.statusCode >= 400:
		logger.Warn("Requisição finalizada com aviso")
	default:
		logger.Info("Requisição finalizada com sucesso")
	}

	if elapsed > slowRequestThreshold {
		logger.Warnf("Requisição lenta: %s", elapsed)
	}
}

func logByStatus(logger log.Logger, statusCode int, msg string) {
	switch {
	case statusCode >= 500:
		logger.Error(msg)
	case statusCode >= 400:
		logger.Warn(msg)
	default:
		logger.Info(msg)
	}
}

// formatDuration formata a duração de forma humana
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%d µs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%d ms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2f s", d.Seconds())
	}
}

// loggingResponseWriter captura status code e tamanho da resposta
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
}

func newLoggingResponseWriter(w http.ResponseWriter) *loggingResponseWriter {
	return &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	n, err := lrw.ResponseWriter.Write(b)
	lrw.bytesWritten += n
	return n, err
}

// LogPanicMiddleware recupera panics, registra a pilha e responde 500
func LogPanicMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := make([]byte, 4096)
					stackTrace := string(stack[:runtime.Stack(stack, false)])

					if log.IsDevelopment() {
						log.L.WithFields(log.Fields{
							"error": err,
							"path":  r.URL.Path,
						}).Error("❌ PANIC na aplicação")

						fmt.Fprintf(os.Stderr, "\n\n=== STACK TRACE ===\n%s\n=================\n\n", stackTrace)
					} else {
						logger := log.ForContext(r.Context()).WithFields(log.Fields{
							"panic_error": err,
							"method":      r.Method,
							"path":        r.URL.Path,
						})

						logger.Error("Erro não tratado na aplicação")
						logger.WithField("stack_trace", stackTrace).Error("Stack trace do erro")
					}

					http.Error(w, "Erro interno no servidor", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
