package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// serverVersion is reported by /api/config and the WebSocket connect event.
const serverVersion = "1.0.0"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// DeckResponse represents the deck API response
type DeckResponse struct {
	Title         string          `json:"title"`
	Author        string          `json:"author,omitempty"`
	Date          string          `json:"date,omitempty"`
	SlideCount    int             `json:"slide_count"`
	SkippedBodies int             `json:"skipped_bodies,omitempty"`
	Slides        []SlideResponse `json:"slides"`
}

// SlideResponse represents a single slide in the API response
type SlideResponse struct {
	Index  int    `json:"index"`
	Layout string `json:"layout"`
	Title  string `json:"title"`
	HTML   string `json:"html"`
}

// ConfigResponse represents the configuration API response
type ConfigResponse struct {
	Version      string `json:"version"`
	WebSocketURL string `json:"websocket_url"`
	LiveReload   bool   `json:"live_reload"`
}

// handleIndex serves the rendered deck page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	deck := s.CurrentDeck()
	if deck == nil {
		s.handleError(w, errors.New("no deck loaded"), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(deck.HTML); err != nil {
		s.logger.Error("Failed to write deck response: %v", err)
	}
}

// handleDeck returns the deck data as JSON
func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	deck := s.CurrentDeck()
	if deck == nil {
		s.handleError(w, errors.New("no deck loaded"), http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, s.deckToResponse(deck))
}

// handleConfig returns the server configuration
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	config := ConfigResponse{
		Version:      serverVersion,
		WebSocketURL: "/ws",
		LiveReload:   true,
	}

	s.writeJSON(w, config)
}

// handleError handles error responses with sanitized messages
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	// Sanitize error message to prevent information disclosure
	var message string
	switch status {
	case http.StatusBadRequest:
		message = "Invalid request"
	case http.StatusNotFound:
		message = "Resource not found"
	case http.StatusMethodNotAllowed:
		message = "Method not allowed"
	case http.StatusTooManyRequests:
		message = "Too many requests"
	case http.StatusServiceUnavailable:
		message = "No deck loaded"
	case http.StatusInternalServerError:
		message = "Internal server error"
	default:
		message = "An error occurred"
	}

	// Log the actual error for debugging (server-side only)
	s.logger.Error("HTTP error (status %d): %v", status, err)

	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message, // Use sanitized message instead of err.Error()
		Time:    time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		s.logger.Error("Failed to encode error response: %v", encodeErr)
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}

// createHTMLSanitizer creates a restrictive HTML sanitizer for slide
// fragments. The renderer only emits these elements; anything else in a
// fragment is hostile and gets stripped.
func createHTMLSanitizer() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("h1", "h2", "p", "br")
	p.AllowElements("ul", "li")
	p.AllowElements("pre", "code")
	p.AllowElements("div", "span")
	p.AllowAttrs("class").OnElements("div", "span", "h1", "h2", "p", "ul", "li", "pre")
	p.AllowAttrs("id").OnElements("pre")

	return p
}

var htmlSanitizer = createHTMLSanitizer()

// deckToResponse converts a rendered deck to an API response with sanitized HTML
func (s *Server) deckToResponse(d *ports.RenderedDeck) DeckResponse {
	slides := make([]SlideResponse, len(d.Slides))
	for i, slide := range d.Slides {
		slides[i] = SlideResponse{
			Index:  slide.Index,
			Layout: slide.Layout.String(),
			Title:  htmlSanitizer.Sanitize(slide.Title),
			HTML:   htmlSanitizer.Sanitize(slide.HTML),
		}
	}

	var title, author, dateStr string
	if d.Deck != nil {
		title = htmlSanitizer.Sanitize(d.Deck.Title)
		author = htmlSanitizer.Sanitize(d.Deck.Author)
		if !d.Deck.LoadedAt.IsZero() {
			dateStr = d.Deck.LoadedAt.Format("2006-01-02")
		}
	}

	return DeckResponse{
		Title:         title,
		Author:        author,
		Date:          dateStr,
		SlideCount:    len(slides),
		SkippedBodies: d.SkippedBodies,
		Slides:        slides,
	}
}
