package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"lepa/internal/api"
	"lepa/internal/archive"
	"lepa/internal/blobs"
	"lepa/internal/config"
	"lepa/internal/gate"
	"lepa/internal/logging"
)

// maxUploadBytes caps a single blob upload.
const maxUploadBytes = 64 << 20

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*apiServer, error) {
	if cfg == nil || d == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	srv := &apiServer{
		bind:   bind,
		logger: logger,
		daemon: d,
	}

	token := strings.TrimSpace(cfg.Paths.APIToken)
	mux := http.NewServeMux()
	route := func(pattern string, handler http.HandlerFunc) {
		mux.HandleFunc(pattern, requestID(authMiddleware(token, handler)))
	}

	route("/api/session", srv.handleSession)
	route("/api/recordings", srv.requireView(srv.handleRecordings))
	route("/api/recordings/", srv.requireManage(srv.handleRecordingItem))
	route("/api/stories", srv.requireView(srv.handleStories))
	route("/api/stories/", srv.requireManage(srv.handleStoryItem))
	route("/api/blobs", srv.requireManage(srv.handleUpload))
	route("/api/playback", srv.requireView(srv.handlePlayback))
	route("/api/playback/toggle", srv.requireView(srv.handlePlaybackToggle))
	route("/api/status", srv.handleStatus)
	mux.Handle(blobs.URLPrefix, http.StripPrefix(blobs.URLPrefix,
		http.FileServer(http.Dir(d.blobs.Root()))))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

func (s *apiServer) start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// requireView gates browse access on an established session.
func (s *apiServer) requireView(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.daemon.gate.Role().CanView() {
			s.writeError(w, http.StatusForbidden, "access key required")
			return
		}
		next(w, r)
	}
}

// requireManage gates mutations on the admin role. Reads pass through with
// the weaker view check.
func (s *apiServer) requireManage(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := s.daemon.gate.Role()
		if r.Method == http.MethodGet {
			if !role.CanView() {
				s.writeError(w, http.StatusForbidden, "access key required")
				return
			}
			next(w, r)
			return
		}
		if !role.CanManage() {
			s.writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	}
}

func (s *apiServer) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, http.StatusOK, api.SessionResponse{Role: string(s.daemon.gate.Role())})
	case http.MethodPost:
		var req api.AuthorizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		role, err := s.daemon.gate.Authorize(req.Key)
		if err != nil {
			switch {
			case errors.Is(err, gate.ErrInvalidCredentials):
				s.writeError(w, http.StatusUnauthorized, err.Error())
			case errors.Is(err, gate.ErrSessionActive):
				s.writeError(w, http.StatusConflict, err.Error())
			default:
				s.writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		s.writeJSON(w, http.StatusOK, api.SessionResponse{Role: string(role)})
	case http.MethodDelete:
		if err := s.daemon.gate.Deauthorize(); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.SessionResponse{Role: string(gate.RoleNone)})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleRecordings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		recordings, err := s.daemon.recordings.List(r.Context())
		if err != nil {
			s.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.RecordingListResponse{Recordings: recordings})
	case http.MethodPost:
		if !s.daemon.gate.Role().CanManage() {
			s.writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		var recording archive.Recording
		if err := json.NewDecoder(r.Body).Decode(&recording); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		id, err := s.daemon.recordings.Create(r.Context(), recording)
		if err != nil {
			s.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, api.CreateResponse{ID: id})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleRecordingItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/recordings/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "recording not found")
		return
	}

	// The blob reference comes from the stored record, never from the caller.
	audioURL := ""
	recordings, err := s.daemon.recordings.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	for _, recording := range recordings {
		if recording.ID == id {
			audioURL = recording.AudioURL
			break
		}
	}

	if err := s.daemon.recordings.Delete(r.Context(), id, audioURL); err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *apiServer) handleStories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		stories, err := s.daemon.stories.List(r.Context())
		if err != nil {
			s.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, api.StoryListResponse{Stories: stories})
	case http.MethodPost:
		if !s.daemon.gate.Role().CanManage() {
			s.writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		var story archive.Story
		if err := json.NewDecoder(r.Body).Decode(&story); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		id, err := s.daemon.stories.Create(r.Context(), story)
		if err != nil {
			s.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		s.writeJSON(w, http.StatusCreated, api.CreateResponse{ID: id})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handleStoryItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/stories/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "story not found")
		return
	}

	imageURL := ""
	stories, err := s.daemon.stories.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	for _, story := range stories {
		if story.ID == id {
			imageURL = story.Image
			break
		}
	}

	if err := s.daemon.stories.Delete(r.Context(), id, imageURL); err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, nil)
}

func (s *apiServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	folder, err := blobs.ParseFolder(r.URL.Query().Get("folder"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		s.writeError(w, http.StatusBadRequest, "filename is required")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes+1))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "read upload body")
		return
	}
	if len(data) > maxUploadBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
		return
	}

	url, err := s.daemon.blobs.Upload(folder, filename, data)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.writeJSON(w, http.StatusCreated, api.UploadResponse{URL: url})
}

func (s *apiServer) handlePlayback(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.writePlayback(w)
	case http.MethodPost:
		var req api.PlaybackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		recordings, err := s.daemon.recordings.List(r.Context())
		if err != nil {
			s.writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		for _, recording := range recordings {
			if recording.ID == req.ID {
				s.daemon.player.Select(recording)
				s.writePlayback(w)
				return
			}
		}
		s.writeError(w, http.StatusNotFound, "recording not found")
	case http.MethodDelete:
		s.daemon.player.Stop()
		s.writePlayback(w)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *apiServer) handlePlaybackToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.daemon.player.Toggle()
	s.writePlayback(w)
}

func (s *apiServer) writePlayback(w http.ResponseWriter) {
	current, playing, ok := s.daemon.player.Current()
	payload := api.PlaybackResponse{Playing: playing}
	if ok {
		payload.Current = &current
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	s.writeJSON(w, http.StatusOK, api.StatusResponse{
		Running:    status.Running,
		PID:        status.PID,
		Role:       string(status.Role),
		Recordings: status.Recordings,
		Stories:    status.Stories,
		DBPath:     status.DBPath,
		BlobRoot:   status.BlobRoot,
	})
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return logging.NewComponentLogger(s.logger, "api-server")
	}
	return logging.NewNop()
}
