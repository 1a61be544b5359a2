package scene

import "github.com/Carmen-Shannon/oxy-viewer/engine/light"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithSceneName sets the scene's identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSceneName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithActive sets whether the scene is rendered.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithNodes attaches initial nodes to the root.
//
// Parameters:
//   - nodes: the nodes to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodes(nodes ...Node) SceneBuilderOption {
	return func(s *scene) {
		s.Add(nodes...)
	}
}

// WithLights wraps each light in a node and attaches it to the root.
//
// Parameters:
//   - lights: the lights to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			s.AddLight(l)
		}
	}
}
