package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// ReloadService coordinates deck file watching with WebSocket notifications:
// when the outline changes it rebuilds the deck, installs the result on the
// server, and tells connected clients to refresh.
type ReloadService struct {
	decks       ports.DeckService
	server      ports.HTTPServer
	logger      *slog.Logger
	mu          sync.Mutex
	watching    bool
	watchCancel context.CancelFunc
	deckPath    string
}

// NewReloadService creates a new reload service
func NewReloadService(
	decks ports.DeckService,
	server ports.HTTPServer,
	logger *slog.Logger,
) *ReloadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReloadService{
		decks:  decks,
		server: server,
		logger: logger.With("service", "reload"),
	}
}

// Start starts watching the deck file
func (s *ReloadService) Start(ctx context.Context, filePath string) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}
	s.watching = true
	s.deckPath = filePath
	s.mu.Unlock()

	// Create a cancellable context for the watcher
	watchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.watchCancel = cancel
	s.mu.Unlock()

	events, err := s.decks.WatchDeck(watchCtx, filePath)
	if err != nil {
		cancel()
		s.mu.Lock()
		s.watching = false
		s.watchCancel = nil
		s.mu.Unlock()
		return fmt.Errorf("starting watcher: %w", err)
	}

	go s.handleEvents(watchCtx, events)

	return nil
}

// Stop stops the reload service
func (s *ReloadService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watching {
		return nil
	}

	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}

	s.watching = false
	return nil
}

// IsWatching returns whether the service is currently watching
func (s *ReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

// handleEvents handles file change events
func (s *ReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Info("Deck file change detected",
				slog.String("path", event.Path),
				slog.String("type", event.Type.String()),
				slog.Time("timestamp", event.Timestamp),
			)

			if err := s.rebuildDeck(ctx); err != nil {
				s.logger.Error("Failed to rebuild deck",
					slog.String("error", err.Error()),
					slog.String("path", event.Path),
					slog.String("change_type", event.Type.String()),
				)

				// Let clients show the failure instead of a stale deck
				_ = s.server.NotifyClients(ports.UpdateEvent{
					Type:      ports.EventTypeError,
					Timestamp: event.Timestamp,
					Data: map[string]interface{}{
						"error": err.Error(),
						"file":  event.Path,
					},
				})
				continue
			}

			updateEvent := ports.UpdateEvent{
				Type:      ports.EventTypeReload,
				Timestamp: event.Timestamp,
				Data: map[string]interface{}{
					"file": event.Path,
					"type": event.Type.String(),
				},
			}

			if err := s.server.NotifyClients(updateEvent); err != nil {
				s.logger.Warn("Failed to notify WebSocket clients",
					slog.String("error", err.Error()),
					slog.String("event_type", ports.EventTypeReload),
					slog.String("file", event.Path),
				)
			} else {
				s.logger.Debug("WebSocket clients notified",
					slog.String("event_type", ports.EventTypeReload),
					slog.String("file", event.Path),
				)
			}
		}
	}
}

// rebuildDeck reloads the deck from disk and installs it on the server
func (s *ReloadService) rebuildDeck(ctx context.Context) error {
	s.mu.Lock()
	path := s.deckPath
	s.mu.Unlock()

	if path == "" {
		return errors.New("no deck path set")
	}

	deck, err := s.decks.LoadDeck(ctx, path)
	if err != nil {
		return fmt.Errorf("loading deck: %w", err)
	}

	rendered, err := s.decks.BuildDeck(ctx, deck)
	if err != nil {
		return fmt.Errorf("building deck: %w", err)
	}

	s.server.UpdateDeck(rendered)

	s.logger.Info("Deck rebuilt",
		slog.Int("slides", len(rendered.Slides)),
		slog.Int("html_size_bytes", len(rendered.HTML)),
		slog.String("deck_path", path),
	)

	return nil
}
