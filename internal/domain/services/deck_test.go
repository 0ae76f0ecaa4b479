package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
	"github.com/fredcamaral/deckgen/internal/test/builders"
)

type MockOutlineParser struct {
	mock.Mock
}

func (m *MockOutlineParser) Parse(content []byte) (*entities.Deck, error) {
	args := m.Called(content)
	if d := args.Get(0); d != nil {
		return d.(*entities.Deck), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDeckRenderer struct {
	mock.Mock
}

func (m *MockDeckRenderer) NewSurface() ports.SlideSurface {
	args := m.Called()
	return args.Get(0).(ports.SlideSurface)
}

func (m *MockDeckRenderer) RenderDocument(ctx context.Context, deck *entities.Deck, surface ports.SlideSurface) (*ports.RenderedDeck, error) {
	args := m.Called(ctx, deck, surface)
	if r := args.Get(0); r != nil {
		return r.(*ports.RenderedDeck), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFileWatcher struct {
	mock.Mock
}

func (m *MockFileWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	args := m.Called(ctx, path)
	if ch := args.Get(0); ch != nil {
		return ch.(<-chan ports.FileChangeEvent), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFileWatcher) Stop() error {
	args := m.Called()
	return args.Error(0)
}

func validTestDeck() *entities.Deck {
	return builders.NewDeckBuilder().
		WithTitle("Gateway Review").
		WithSlide(builders.TitleSlide("Gateway Review", "Infra")).
		WithSlide(builders.ContentSlide("Agenda", "Routing")).
		Build()
}

func writeTempDeck(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDeckService_LoadDeck(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		service := NewDeckService(&MockOutlineParser{}, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{}, nil)

		_, err := service.LoadDeck(context.Background(), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "path cannot be empty")
	})

	t.Run("file not found", func(t *testing.T) {
		service := NewDeckService(&MockOutlineParser{}, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{}, nil)

		_, err := service.LoadDeck(context.Background(), "/nonexistent/deck.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deck file not found")
	})

	t.Run("parse error", func(t *testing.T) {
		parser := &MockOutlineParser{}
		parser.On("Parse", mock.Anything).Return(nil, errors.New("bad yaml"))

		service := NewDeckService(parser, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{}, nil)
		path := writeTempDeck(t, "title: x")

		_, err := service.LoadDeck(context.Background(), path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "parsing deck")
		parser.AssertExpectations(t)
	})

	t.Run("invalid deck", func(t *testing.T) {
		parser := &MockOutlineParser{}
		parser.On("Parse", mock.Anything).Return(&entities.Deck{Title: "No Slides"}, nil)

		service := NewDeckService(parser, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{}, nil)
		path := writeTempDeck(t, "title: No Slides")

		_, err := service.LoadDeck(context.Background(), path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid deck")
	})

	t.Run("successful load assigns identity", func(t *testing.T) {
		parser := &MockOutlineParser{}
		parser.On("Parse", []byte("content")).Return(validTestDeck(), nil)

		service := NewDeckService(parser, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{Author: "Platform Team"}, nil)
		path := writeTempDeck(t, "content")

		deck, err := service.LoadDeck(context.Background(), path)
		require.NoError(t, err)

		_, err = uuid.Parse(deck.ID)
		assert.NoError(t, err, "deck ID should be a valid UUID")
		assert.WithinDuration(t, time.Now(), deck.LoadedAt, time.Minute)
		assert.Equal(t, "Platform Team", deck.Author, "author defaults from metadata")
		parser.AssertExpectations(t)
	})

	t.Run("existing author is kept", func(t *testing.T) {
		loaded := validTestDeck()
		loaded.Author = "Ada"
		parser := &MockOutlineParser{}
		parser.On("Parse", mock.Anything).Return(loaded, nil)

		service := NewDeckService(parser, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{Author: "Platform Team"}, nil)
		path := writeTempDeck(t, "content")

		deck, err := service.LoadDeck(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "Ada", deck.Author)
	})
}

func TestDeckService_BuildDeck(t *testing.T) {
	newBuildSurface := func() *MockSlideSurface {
		surface := &MockSlideSurface{}
		surface.On("NewSlide", mock.Anything).Return(ports.SlideID(0), nil)
		surface.On("SetTitle", mock.Anything, mock.Anything).Return(nil)
		surface.On("SetSubtitle", mock.Anything, mock.Anything).Return(nil)
		surface.On("BodyRegion", mock.Anything).Return(&recordingSink{}, nil)
		return surface
	}

	t.Run("nil deck", func(t *testing.T) {
		service := NewDeckService(&MockOutlineParser{}, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{}, nil)

		_, err := service.BuildDeck(context.Background(), nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deck cannot be nil")
	})

	t.Run("assembles every slide then renders the document", func(t *testing.T) {
		deck := validTestDeck()
		surface := newBuildSurface()

		renderer := &MockDeckRenderer{}
		renderer.On("NewSurface").Return(surface)
		renderer.On("RenderDocument", mock.Anything, deck, surface).Return(&ports.RenderedDeck{
			Deck: deck,
			HTML: []byte("<html>deck</html>"),
			Slides: []ports.RenderedSlide{
				{Index: 0, Layout: entities.LayoutTitle, Title: "Gateway Review"},
				{Index: 1, Layout: entities.LayoutContent, Title: "Agenda"},
			},
		}, nil)

		service := NewDeckService(&MockOutlineParser{}, renderer, &MockFileWatcher{}, entities.Metadata{}, nil)

		rendered, err := service.BuildDeck(context.Background(), deck)
		require.NoError(t, err)
		assert.Len(t, rendered.Slides, 2)
		assert.Zero(t, rendered.SkippedBodies)
		surface.AssertNumberOfCalls(t, "NewSlide", 2)
		renderer.AssertExpectations(t)
	})

	t.Run("handles a large deck", func(t *testing.T) {
		deck := builders.LargeDeck()
		surface := newBuildSurface()

		renderer := &MockDeckRenderer{}
		renderer.On("NewSurface").Return(surface)
		renderer.On("RenderDocument", mock.Anything, deck, surface).Return(&ports.RenderedDeck{Deck: deck}, nil)

		service := NewDeckService(&MockOutlineParser{}, renderer, &MockFileWatcher{}, entities.Metadata{}, nil)

		_, err := service.BuildDeck(context.Background(), deck)
		require.NoError(t, err)
		surface.AssertNumberOfCalls(t, "NewSlide", 51)
	})

	t.Run("propagates skip counts into the result", func(t *testing.T) {
		deck := validTestDeck()

		surface := &MockSlideSurface{}
		surface.On("NewSlide", mock.Anything).Return(ports.SlideID(0), nil)
		surface.On("SetTitle", mock.Anything, mock.Anything).Return(nil)
		surface.On("SetSubtitle", mock.Anything, mock.Anything).Return(nil)
		surface.On("BodyRegion", mock.Anything).Return(nil, ports.ErrNoBodyRegion)

		renderer := &MockDeckRenderer{}
		renderer.On("NewSurface").Return(surface)
		renderer.On("RenderDocument", mock.Anything, deck, surface).Return(&ports.RenderedDeck{Deck: deck}, nil)

		service := NewDeckService(&MockOutlineParser{}, renderer, &MockFileWatcher{}, entities.Metadata{}, nil)

		rendered, err := service.BuildDeck(context.Background(), deck)
		require.NoError(t, err)
		assert.Equal(t, 1, rendered.SkippedBodies, "content slide with items lost its body")
	})

	t.Run("slide errors carry the slide position", func(t *testing.T) {
		deck := validTestDeck()

		surface := &MockSlideSurface{}
		surface.On("NewSlide", mock.Anything).Return(ports.SlideID(0), errors.New("surface closed"))

		renderer := &MockDeckRenderer{}
		renderer.On("NewSurface").Return(surface)

		service := NewDeckService(&MockOutlineParser{}, renderer, &MockFileWatcher{}, entities.Metadata{}, nil)

		_, err := service.BuildDeck(context.Background(), deck)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "building slide 1")
		assert.Contains(t, err.Error(), "surface closed")
	})

	t.Run("render errors are wrapped", func(t *testing.T) {
		deck := validTestDeck()
		surface := newBuildSurface()

		renderer := &MockDeckRenderer{}
		renderer.On("NewSurface").Return(surface)
		renderer.On("RenderDocument", mock.Anything, deck, surface).Return(nil, errors.New("template broken"))

		service := NewDeckService(&MockOutlineParser{}, renderer, &MockFileWatcher{}, entities.Metadata{}, nil)

		_, err := service.BuildDeck(context.Background(), deck)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rendering deck")
	})
}

func TestDeckService_WatchDeck(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		service := NewDeckService(&MockOutlineParser{}, &MockDeckRenderer{}, &MockFileWatcher{}, entities.Metadata{}, nil)

		_, err := service.WatchDeck(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("delegates to the watcher", func(t *testing.T) {
		events := make(chan ports.FileChangeEvent)
		watcher := &MockFileWatcher{}
		watcher.On("Watch", mock.Anything, "/decks/api.yaml").Return((<-chan ports.FileChangeEvent)(events), nil)

		service := NewDeckService(&MockOutlineParser{}, &MockDeckRenderer{}, watcher, entities.Metadata{}, nil)

		ch, err := service.WatchDeck(context.Background(), "/decks/api.yaml")
		require.NoError(t, err)
		assert.NotNil(t, ch)

		close(events)
		watcher.AssertExpectations(t)
	})
}
