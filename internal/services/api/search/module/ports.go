package module

import "github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

// Ports is the port set other modules can resolve by name
type Ports struct {
	Search domain.ServicePort
}

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
