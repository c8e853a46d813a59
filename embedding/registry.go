package embedding

import "go.uber.org/zap"

// Registry maps project identifiers to embedding providers. Projects
// whose corpus was embedded with a non-default model must be listed here
// so queries are embedded in the same space.
type Registry struct {
	defaultProvider Provider
	byProject       map[string]Provider
	logger          *zap.Logger
}

// NewRegistry creates a registry with a required default provider.
func NewRegistry(defaultProvider Provider, byProject map[string]Provider, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	if byProject == nil {
		byProject = make(map[string]Provider)
	}
	return &Registry{
		defaultProvider: defaultProvider,
		byProject:       byProject,
		logger:          logger.With(zap.String("component", "embedding_registry")),
	}
}

// ForProject returns the provider assigned to the project, or the default.
func (r *Registry) ForProject(projectID string) Provider {
	if p, ok := r.byProject[projectID]; ok {
		return p
	}
	return r.defaultProvider
}
