package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-occasions/internal/config"
	"github.com/tartampluch/go-occasions/internal/engine"
)

// Occasions is the live view the text endpoints are rendered from.
type Occasions interface {
	StatusSummary(now time.Time) string
	PrimaryGreeting(now time.Time) string
	Motivation(now time.Time) string
	MusicThemes(now time.Time) []string
}

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// OccasionServer serves the ICS feed and the live occasion text over HTTP.
type OccasionServer struct {
	// cache uses atomic.Pointer for lock-free reads: the feed is read on
	// every request but replaced only by the refresh worker.
	cache atomic.Pointer[cacheItem]
	Port  string

	Occasions Occasions
	Clock     engine.Clock
}

// NewOccasionServer creates a server reading live text from occ.
func NewOccasionServer(port string, occ Occasions, clock engine.Clock) *OccasionServer {
	if clock == nil {
		clock = engine.RealClock{}
	}
	return &OccasionServer{
		Port:      port,
		Occasions: occ,
		Clock:     clock,
	}
}

// Handler returns the routed mux.
func (s *OccasionServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteStatus, s.textHandler(s.Occasions.StatusSummary))
	mux.HandleFunc(config.RouteGreeting, s.textHandler(s.Occasions.PrimaryGreeting))
	mux.HandleFunc(config.RouteMotivation, s.textHandler(s.Occasions.Motivation))
	mux.HandleFunc(config.RouteThemes, s.handleThemes)
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *OccasionServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *OccasionServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: s.Clock.Now().UTC().Format(http.TimeFormat),
	}
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// allowMethod rejects anything but GET and HEAD.
func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return true
	}
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	return false
}

func setCommonHeaders(w http.ResponseWriter, contentType string) {
	w.Header().Set(config.HeaderContentType, contentType)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderServer, config.UserAgent)
}

// writeBody copies data unless the request is HEAD.
func writeBody(w http.ResponseWriter, r *http.Request, data []byte) {
	if r.Method != http.MethodGet {
		return
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyError, err,
		)
	}
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *OccasionServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	setCommonHeaders(w, config.MimeTextCalendar)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	writeBody(w, r, item.data)
}

// textHandler renders a live text query against the clock reading of the
// request.
func (s *OccasionServer) textHandler(render func(time.Time) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r) {
			return
		}
		setCommonHeaders(w, config.MimeTextPlain)
		writeBody(w, r, []byte(render(s.Clock.Now())))
	}
}

// handleThemes serves the music-theme tags as a JSON array.
func (s *OccasionServer) handleThemes(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	themes := s.Occasions.MusicThemes(s.Clock.Now())
	if themes == nil {
		themes = []string{}
	}
	data, err := json.Marshal(themes)
	if err != nil {
		http.Error(w, config.HTTPMsgInternalErr, http.StatusInternalServerError)
		return
	}
	setCommonHeaders(w, config.MimeJSON)
	writeBody(w, r, data)
}
