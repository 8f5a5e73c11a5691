package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/df07/go-implicit-raytracer/pkg/loaders"
	"github.com/df07/go-implicit-raytracer/pkg/output"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

const (
	maxImageSize = 2000
	maxSamples   = 256
	maxBlockSize = 64
	maxBounces   = 32
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
}

// NewServer creates a new web server. scenesDir is searched for scene files and
// defaults to the usual scenes directory when empty.
func NewServer(port int, scenesDir string) *Server {
	if scenesDir == "" {
		scenesDir = scene.FindScenesDir()
	}
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render or inspect request from the client.
// Zero sizes keep the values of the scene.
type RenderRequest struct {
	Scene     string        `json:"scene"`     // Scene id (e.g., "default", "json:donuts")
	Width     int           `json:"width"`     // Image width
	Height    int           `json:"height"`    // Image height
	Samples   int           `json:"samples"`   // Primary rays per block
	BlockSize int           `json:"blockSize"` // Side of the square pixel blocks
	Bounces   int           `json:"bounces"`   // Reflection depth, -1 keeps the scene value
	Format    output.Format `json:"format"`    // Encoding of the returned image
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render-stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
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

// handleScenes lists the built-in scenes and the scene files, grouped for display
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list scenes: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration of a scene and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = "default"
	}

	sceneObj, err := s.createScene(RenderRequest{Scene: sceneID, Bounces: -1})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneID,
		"name":  sceneObj.Name,
		"defaults": map[string]int{
			"width":      config.Width,
			"height":     config.Height,
			"samples":    config.SamplesPerPixel,
			"blockSize":  config.BlockSize,
			"maxBounces": sceneObj.MaxBounces,
		},
		"limits": map[string]map[string]int{
			"width":     {"min": 1, "max": maxImageSize},
			"height":    {"min": 1, "max": maxImageSize},
			"samples":   {"min": 1, "max": maxSamples},
			"blockSize": {"min": 1, "max": maxBlockSize},
			"bounces":   {"min": 0, "max": maxBounces},
		},
	})
}

// parseRenderRequest parses and validates render parameters from the query string
func (s *Server) parseRenderRequest(r *http.Request) (RenderRequest, error) {
	query := r.URL.Query()
	req := RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageSize); err != nil {
		return req, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 1, maxImageSize); err != nil {
		return req, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return req, err
	}
	if req.BlockSize, err = parseIntParam(query, "block", 0, 1, maxBlockSize); err != nil {
		return req, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", -1, 0, maxBounces); err != nil {
		return req, err
	}

	req.Format = output.PNG
	if name := query.Get("format"); name != "" {
		if req.Format, err = output.ParseFormat(name); err != nil {
			return req, err
		}
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 16 {
		log.Printf("Render warning: Large image with high samples may render slowly")
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

// createScene builds the requested scene with the request overrides applied.
// Only built-in ids and discovered scene files are served.
func (s *Server) createScene(req RenderRequest) (*scene.Scene, error) {
	if strings.HasSuffix(strings.ToLower(req.Scene), ".json") {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	sceneObj, err := loaders.ResolveScene(req.Scene, s.scenesDir, scene.SamplingConfig{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.Samples,
		BlockSize:       req.BlockSize,
	})
	if err != nil {
		return nil, err
	}
	if req.Bounces >= 0 {
		sceneObj.MaxBounces = req.Bounces
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %q: %w", req.Scene, err)
	}
	return sceneObj, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
