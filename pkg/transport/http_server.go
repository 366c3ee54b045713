package transport

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/raywall/backend-faker/pkg/engine"
	"github.com/raywall/backend-faker/pkg/responder"
	"github.com/raywall/backend-faker/pkg/schema"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
	ContextKeyCorrID    = "correlation_id"
)

// Regex para identificar parâmetros na rota (ex: :id)
var routeParamRegex = regexp.MustCompile(`:([A-Za-z_][A-Za-z0-9_]*)`)

func StartHTTPServer(me *engine.MockEngine) error {
	addr := fmt.Sprintf(":%d", me.Config.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(me),
		ReadHeaderTimeout: 10 * time.Second,
	}

	me.Logger.Info().Int("port", me.Config.Port).Int("routes", len(me.Schema)).Msgf("Servidor HTTP ouvindo em %s", addr)
	return server.ListenAndServe()
}

// NewRouter registra uma rota GET por entrada do schema.
func NewRouter(me *engine.MockEngine) http.Handler {
	router := mux.NewRouter()
	router.Use(CORSMiddleware(me.Config.CORSDomain, me.Config.CORSPort))

	for _, route := range me.Schema {
		path, params := muxPath(route.Path)
		router.HandleFunc(path, NewHandler(me, route, params)).
			Methods(http.MethodGet).
			Name(route.Path)
		me.Logger.Debug().Str("route", route.Path).Str("mux_path", path).Msg("rota registrada")
	}
	me.Recorder.Routes(len(me.Schema))

	return ObservabilityMiddleware(router, me.Logger, me.Config.Silent)
}

// muxPath converte "/users/:id" em "/users/{id}" e devolve os nomes dos parâmetros.
func muxPath(path string) (string, []string) {
	var params []string
	for _, m := range routeParamRegex.FindAllStringSubmatch(path, -1) {
		params = append(params, m[1])
	}
	return routeParamRegex.ReplaceAllString(path, "{$1}"), params
}

// requestID escolhe o identificador da requisição: o parâmetro "id" quando
// existe, senão o primeiro parâmetro da rota.
func requestID(vars map[string]string, params []string) string {
	if id, ok := vars["id"]; ok {
		return id
	}
	if len(params) > 0 {
		return vars[params[0]]
	}
	return ""
}

func NewHandler(me *engine.MockEngine, route schema.Route, params []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		log := zerolog.Ctx(ctx)
		id := requestID(mux.Vars(r), params)

		resp, err := me.Respond(ctx, route, id)
		if err != nil {
			log.Error().Err(err).Str("route", route.Path).Str("id", id).Msg("falha ao gerar resposta")
			sendResponse(w, http.StatusInternalServerError, responder.ErrorBody(err))
			me.Recorder.Request(route.Path, http.StatusInternalServerError, time.Since(start))
			return
		}

		delay := me.Delay()
		me.Recorder.Delay(route.Path, delay)
		if !wait(ctx, delay) {
			log.Debug().Str("route", route.Path).Msg("cliente desconectou durante o delay")
			return
		}

		sendResponse(w, resp.Status, []byte(resp.Body))
		me.Recorder.Request(route.Path, resp.Status, time.Since(start))
	}
}

// wait bloqueia pelo delay ou até o contexto ser cancelado. Retorna false
// no cancelamento.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// CORSMiddleware libera o domínio configurado (ou "*") com a porta opcional.
func CORSMiddleware(domain string, port int) mux.MiddlewareFunc {
	origin := "*"
	if domain != "" {
		origin = domain
		if port != 0 {
			origin = fmt.Sprintf("%s:%d", domain, port)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Headers", "X-Requested-With")
			next.ServeHTTP(w, r)
		})
	}
}

// --- MIDDLEWARE DE OBSERVABILIDADE ---
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	duration := time.Since(rw.startTime)
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", duration.Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// ObservabilityMiddleware propaga o correlation id e loga cada requisição.
// Com silent, o log por requisição é suprimido.
func ObservabilityMiddleware(next http.Handler, base zerolog.Logger, silent bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		corrID := r.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelationID, corrID)

		logger := base.With().Str("correlation_id", corrID).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			startTime:      start,
		}

		next.ServeHTTP(wrapper, r.WithContext(ctx))

		if silent {
			return
		}
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Msg("request completed")
	})
}
