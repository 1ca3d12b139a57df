package plugin

// Health status values.
const (
	// StatusHealthy indicates the plugin is fully operational.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the plugin is operational but impaired.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates the plugin is not operational.
	StatusUnhealthy = "unhealthy"
)

// Status represents the health state of a plugin.
type Status struct {
	// Status is the current health state (healthy, degraded, or unhealthy).
	Status string `json:"status"`

	// Message provides a human-readable description of the health status.
	Message string `json:"message,omitempty"`

	// Details contains additional context and diagnostic information.
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (s Status) IsHealthy() bool {
	return s.Status == StatusHealthy
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (s Status) IsUnhealthy() bool {
	return s.Status == StatusUnhealthy
}

// Healthy creates a healthy status with an optional message.
func Healthy(message string) Status {
	return Status{Status: StatusHealthy, Message: message}
}

// Degraded creates a degraded status with a message and optional details.
func Degraded(message string, details map[string]any) Status {
	return Status{Status: StatusDegraded, Message: message, Details: details}
}

// Unhealthy creates an unhealthy status with a message and optional details.
func Unhealthy(message string, details map[string]any) Status {
	return Status{Status: StatusUnhealthy, Message: message, Details: details}
}

// Descriptor describes a plugin's static metadata.
// It provides the plugin's identity and declared dependencies without
// requiring access to its implementation.
type Descriptor struct {
	// Name is the unique identifier for the plugin.
	Name string `json:"name"`

	// Version is the semantic version of the plugin.
	Version string `json:"version"`

	// Description provides a human-readable explanation of the plugin's purpose.
	Description string `json:"description,omitempty"`

	// Depends lists the names of the plugins this plugin requires,
	// in declared order.
	Depends []string `json:"depends,omitempty"`
}

// Info combines a plugin's descriptor with its current enabled state.
// The enabled flag is owned by the registry, not the plugin, so Info is
// only produced by registry enumeration surfaces.
type Info struct {
	Descriptor

	// Enabled reports whether the plugin is currently enabled.
	Enabled bool `json:"enabled"`
}

// ToDescriptor converts a Plugin to its Descriptor.
func ToDescriptor(p Plugin) Descriptor {
	deps := p.Depends()
	out := make([]string, len(deps))
	copy(out, deps)
	return Descriptor{
		Name:        p.Name(),
		Version:     p.Version(),
		Description: p.Description(),
		Depends:     out,
	}
}
