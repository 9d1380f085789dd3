package main

import (
	"net/http"
	"time"

	"github.com/HubGAQ/api-gaq/internal/config"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const headerRequestID = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// logRequisicoes registra método, rota, status e duração de cada chamada.
// Reaproveita o X-Request-ID recebido ou gera um novo.
func logRequisicoes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(headerRequestID, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		inicio := time.Now()
		next.ServeHTTP(rec, r)

		entry := config.GetLogger().WithFields(logrus.Fields{
			"requestId": id,
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duracaoMs": time.Since(inicio).Milliseconds(),
		})
		if rec.status >= http.StatusInternalServerError {
			entry.Warn("requisição com erro")
			return
		}
		entry.Info("requisição")
	})
}
