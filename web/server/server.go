package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-lensmaker/pkg/export"
	"github.com/df07/go-lensmaker/pkg/renderer"
	"github.com/df07/go-lensmaker/pkg/scene"
	"github.com/df07/go-lensmaker/pkg/trainer"
)

// Server handles web requests for streaming lens training runs
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// TrainRequest represents a training request from the client
type TrainRequest struct {
	Scene      string  `json:"scene"`      // Scene id (e.g., "singlet-lens" or "file:lens-pair")
	Width      int     `json:"width"`      // Diagram width
	Height     int     `json:"height"`     // Diagram height
	Margin     float64 `json:"margin"`     // Diagram margin as a fraction of the image
	Iterations int     `json:"iterations"` // Maximum optimizer iterations
	Method     string  `json:"method"`     // Optimizer name
	Rays       int     `json:"rays"`       // Rays per source (0 = scene default)
	Object     int     `json:"object"`     // Extended object samples (0 = scene default)
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/train", s.handleTrain)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/export", s.handleExport)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists builtin and file scenes by group
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes("")
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// parseTrainRequest parses request parameters
func (s *Server) parseTrainRequest(r *http.Request) (*TrainRequest, error) {
	query := r.URL.Query()
	camera := renderer.DefaultCameraConfig()
	config := trainer.DefaultConfig()

	req := &TrainRequest{Scene: "parabolic-mirror", Method: config.Method}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}
	if method := query.Get("method"); method != "" {
		req.Method = method
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", camera.Width, 100, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", camera.Height, 100, 2000); err != nil {
		return nil, err
	}
	if req.Margin, err = parseFloatParam(query, "margin", camera.Margin, 0, 0.4); err != nil {
		return nil, err
	}
	if req.Iterations, err = parseIntParam(query, "iterations", config.Iterations, 1, 10000); err != nil {
		return nil, err
	}
	if req.Rays, err = parseIntParam(query, "rays", 0, 0, 1000); err != nil {
		return nil, err
	}
	if req.Object, err = parseIntParam(query, "object", 0, 0, 100); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Rays*max(req.Object, 1) > 10000 {
		log.Printf("Train warning: large ray batches make every gradient pass slow")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates a fresh scene for the request, applying sampling overrides
func (s *Server) createScene(req *TrainRequest) (*scene.Scene, error) {
	sc, err := scene.NewScene(req.Scene)
	if err != nil {
		return nil, err
	}
	if req.Rays > 0 {
		sc.Sampling.Rays = req.Rays
	}
	if req.Object > 0 {
		sc.Sampling.Object = req.Object
	}
	return sc, nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "parabolic-mirror" // Default scene
	}

	sc, err := scene.NewScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := trainer.DefaultConfig()
	camera := renderer.DefaultCameraConfig()
	response := map[string]interface{}{
		"scene": sc.Info,
		"defaults": map[string]interface{}{
			"rays":       sc.Sampling.Rays,
			"object":     sc.Sampling.Object,
			"iterations": config.Iterations,
			"method":     config.Method,
			"width":      camera.Width,
			"height":     camera.Height,
			"margin":     camera.Margin,
		},
		"parameters": sc.NumParameters(),
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": 100, "max": 2000},
			"height":     map[string]int{"min": 100, "max": 2000},
			"iterations": map[string]int{"min": 1, "max": 10000},
			"rays":       map[string]int{"min": 0, "max": 1000},
			"object":     map[string]int{"min": 0, "max": 100},
			"margin":     map[string]float64{"min": 0, "max": 0.4},
		},
		"methods": []string{"gradient-descent", "bfgs", "lbfgs", "nelder-mead"},
	}
	writeJSON(w, http.StatusOK, response)
}

// handleExport returns the lens outlines of a scene's initial state as SVG
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	sc, err := scene.NewScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	lenses, offsets := export.Lenses(sc.System)
	if len(lenses) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "scene has no lenses: " + sceneName})
		return
	}
	profiles := make([]*export.Profile, len(lenses))
	for i, lens := range lenses {
		if profiles[i], err = export.LensProfile(lens); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			return
		}
	}

	var buf bytes.Buffer
	if err := export.WriteSVG(&buf, profiles, offsets...); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	name := strings.TrimPrefix(sc.Info.ID, "file:")
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name+".svg"))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
