package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-lensmaker/pkg/core"
	"github.com/df07/go-lensmaker/pkg/optics"
	"github.com/df07/go-lensmaker/pkg/renderer"
	"github.com/df07/go-lensmaker/pkg/scene"
	"github.com/df07/go-lensmaker/pkg/trainer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate is sent after the initial diagram and every optimizer iteration
type ProgressUpdate struct {
	Iteration       int       `json:"iteration"` // 0 for the untrained system
	TotalIterations int       `json:"totalIterations"`
	Loss            float64   `json:"loss"`
	Parameters      []float64 `json:"parameters"`
	ImageData       string    `json:"imageData"` // Base64 encoded PNG
	ElapsedMs       int64     `json:"elapsedMs"`
}

// trainingRun holds the per-request state of a streamed training run
type trainingRun struct {
	req       *TrainRequest
	scene     *scene.Scene
	camera    renderer.CameraConfig
	events    chan<- SSEEvent
	startTime time.Time
}

// handleTrain trains a scene and streams a diagram after every iteration via SSE
func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Create unified SSE event channel for thread-safe writing. The writer
	// must finish before the handler returns.
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	// Parse and validate request
	req, err := s.parseTrainRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sc, err := s.createScene(req)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	// Setup console logging and streaming
	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	run := &trainingRun{
		req:       req,
		scene:     sc,
		camera:    renderer.CameraConfig{Width: req.Width, Height: req.Height, Margin: req.Margin},
		events:    sseEventChan,
		startTime: time.Now(),
	}
	s.train(ctx, run, webLogger)
}

// train runs the optimizer, sending the initial diagram, one update per
// iteration, and a completion event carrying the result
func (s *Server) train(ctx context.Context, run *trainingRun, logger core.Logger) {
	r := renderer.NewRenderer()
	out := r.Render(run.scene.System, run.scene.Sampling)
	initial := trainer.Progress{
		Loss:       out.Loss.Real,
		Parameters: run.parameters(),
	}
	if err := s.sendProgress(ctx, run, r, initial); err != nil {
		s.handleError(ctx, run.events, err.Error())
		return
	}

	config := trainer.DefaultConfig()
	config.Iterations = run.req.Iterations
	config.Method = run.req.Method
	config.Sampling = run.scene.Sampling
	config.OnIteration = func(p trainer.Progress) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r := renderer.NewRenderer()
		r.Render(run.scene.System, run.scene.Sampling)
		return s.sendProgress(ctx, run, r, p)
	}

	result, err := trainer.Run(run.scene.System, config, logger)
	if err != nil {
		s.handleError(ctx, run.events, fmt.Sprintf("Training failed: %v", err))
		return
	}
	if ctx.Err() != nil {
		return
	}
	s.sendEvent(ctx, run.events, "complete", result)
}

func (run *trainingRun) parameters() []float64 {
	return optics.ParameterVector(optics.Parameters(run.scene.System))
}

// sendProgress draws the diagram and queues a progress event
func (s *Server) sendProgress(ctx context.Context, run *trainingRun, r *renderer.Renderer, p trainer.Progress) error {
	img, err := r.Image(run.camera)
	if err != nil {
		return fmt.Errorf("failed to draw diagram: %v", err)
	}
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		return fmt.Errorf("failed to encode image: %v", err)
	}

	update := ProgressUpdate{
		Iteration:       p.Iteration,
		TotalIterations: run.req.Iterations,
		Loss:            p.Loss,
		Parameters:      p.Parameters,
		ImageData:       imageData,
		ElapsedMs:       time.Since(run.startTime).Milliseconds(),
	}
	s.sendEvent(ctx, run.events, "progress", update)
	return nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a training run
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	trainID := fmt.Sprintf("train-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(trainID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe).
// It drains the channel until it is closed.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	for event := range sseEventChan {
		// Client disconnected, keep draining without writing
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until the console channel is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// sendEvent marshals data and queues it, giving up if the client is gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, data interface{}) {
	encoded, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(encoded)}:
	case <-ctx.Done():
	}
}

// handleError sends an error event
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	log.Printf("Train error: %s", message)
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
