package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/output"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
)

// RenderResult is the final event of a streamed render
type RenderResult struct {
	Scene     string         `json:"scene"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Format    output.Format  `json:"format"`
	ImageData string         `json:"imageData"` // Base64 encoded image
	Stats     RenderStatsDTO `json:"stats"`
}

// RenderStatsDTO is the client view of renderer.RenderStats
type RenderStatsDTO struct {
	TotalPixels     int   `json:"totalPixels"`
	TotalBlocks     int   `json:"totalBlocks"`
	TotalSamples    int   `json:"totalSamples"`
	SamplesPerBlock int   `json:"samplesPerBlock"`
	PrimaryRays     int64 `json:"primaryRays"`
	ShadowRays      int64 `json:"shadowRays"`
	ReflectionRays  int64 `json:"reflectionRays"`
	DeepestBounce   int   `json:"deepestBounce"`
	ElapsedMs       int64 `json:"elapsedMs"`
}

func newRenderStatsDTO(stats renderer.RenderStats) RenderStatsDTO {
	return RenderStatsDTO{
		TotalPixels:     stats.TotalPixels,
		TotalBlocks:     stats.TotalBlocks,
		TotalSamples:    stats.TotalSamples,
		SamplesPerBlock: stats.SamplesPerBlock,
		PrimaryRays:     stats.Rays.Primary,
		ShadowRays:      stats.Rays.Shadow,
		ReflectionRays:  stats.Rays.Reflection,
		DeepestBounce:   stats.Rays.DeepestBounce,
		ElapsedMs:       stats.Elapsed.Milliseconds(),
	}
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := newRenderID()
	raytracer := renderer.NewRaytracer(sceneObj, renderer.DefaultRenderConfig(), NewWebLogger(renderID, nil))
	img, stats, err := raytracer.Render(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Render failed: "+err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", req.Format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.Header().Set("X-Render-Rays", strconv.FormatInt(stats.Rays.Total(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene and streams console messages followed by the
// final image via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}

	ctx := r.Context()
	consoleChan := make(chan ConsoleMessage, 100)
	raytracer := renderer.NewRaytracer(sceneObj, renderer.DefaultRenderConfig(), NewWebLogger(newRenderID(), consoleChan))

	type renderDone struct {
		img   *image.RGBA
		stats renderer.RenderStats
		err   error
	}
	done := make(chan renderDone, 1)
	go func() {
		img, stats, err := raytracer.Render(ctx)
		done <- renderDone{img, stats, err}
	}()

	// Only this goroutine writes to the response
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		case result := <-done:
			s.drainConsole(w, flusher, consoleChan)
			if result.err != nil {
				s.sendSSEEvent(w, flusher, "error", "Render failed: "+result.err.Error())
				return
			}
			s.sendResult(w, flusher, req, result.img, result.stats)
			return
		}
	}
}

// sendResult encodes the image and sends the complete event
func (s *Server) sendResult(w http.ResponseWriter, flusher http.Flusher, req RenderRequest, img *image.RGBA, stats renderer.RenderStats) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, img, req.Format); err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	bounds := img.Bounds()
	s.sendSSEJSON(w, flusher, "complete", RenderResult{
		Scene:     req.Scene,
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Format:    req.Format,
		ImageData: base64.StdEncoding.EncodeToString(buf.Bytes()),
		Stats:     newRenderStatsDTO(stats),
	})
}

// drainConsole sends the console messages queued before the render finished
func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.sendSSEJSON(w, flusher, "console", msg)
		default:
			return
		}
	}
}

// setSSEHeaders sets the headers required for server-sent events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEJSON sends an SSE event with a JSON payload
func (s *Server) sendSSEJSON(w http.ResponseWriter, flusher http.Flusher, event string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}
	s.sendSSEEvent(w, flusher, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}
