package middleware

import (
	"net/http"
	"strings"

	"github.com/vfg2006/lead-qualifier-api/pkg/log"
)

// ActorIDHeader identifica opcionalmente quem executou a ação
const ActorIDHeader = "X-Actor-ID"

func ActorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if actorID := strings.TrimSpace(r.Header.Get(ActorIDHeader)); actorID != "" {
				r = r.WithContext(log.WithActorID(r.Context(), actorID))
			}

			next.ServeHTTP(w, r)
		})
	}
}
