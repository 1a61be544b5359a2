package loader

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithPoster is an option builder that sets how LoadAsync callbacks are delivered.
// Without it callbacks run on the worker goroutine.
//
// Parameters:
//   - post: schedules a callback on the owning goroutine, e.g. engine.Engine.Post
//
// Returns:
//   - LoaderBuilderOption: a function that applies the poster option to a loader
func WithPoster(post Poster) LoaderBuilderOption {
	return func(l *loader) {
		if post != nil {
			l.post = post
		}
	}
}

// WithWorkers is an option builder that sets how many files LoadAsync may decode at once.
//
// Parameters:
//   - n: the number of loader workers (minimum 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithLogger is an option builder that sets the logger for load diagnostics.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *slog.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithModel is an option builder that pre-populates the model cache with a subtree.
//
// Parameters:
//   - key: the cache key for the model
//   - root: the subtree to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, root scene.Node) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = root
	}
}
