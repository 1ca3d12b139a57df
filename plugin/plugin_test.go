package plugin

import (
	"context"
	"testing"
)

// mockPlugin is a simple mock implementation of the Plugin interface for testing.
type mockPlugin struct {
	name        string
	version     string
	description string
	depends     []string
}

func (m *mockPlugin) Name() string {
	return m.name
}

func (m *mockPlugin) Version() string {
	return m.version
}

func (m *mockPlugin) Description() string {
	return m.description
}

func (m *mockPlugin) Depends() []string {
	return m.depends
}

func (m *mockPlugin) OnLoad(ctx context.Context) error {
	return nil
}

func (m *mockPlugin) OnEnable(ctx context.Context) error {
	return nil
}

func (m *mockPlugin) OnDisable(ctx context.Context) error {
	return nil
}

func (m *mockPlugin) Health(ctx context.Context) Status {
	return Healthy("mock plugin healthy")
}

func TestMockPlugin_ImplementsInterface(t *testing.T) {
	var _ Plugin = &mockPlugin{}
}

func TestMockPlugin_Name(t *testing.T) {
	m := &mockPlugin{name: "testPlugin"}
	if m.Name() != "testPlugin" {
		t.Errorf("expected name 'testPlugin', got %s", m.Name())
	}
}

func TestMockPlugin_Depends(t *testing.T) {
	m := &mockPlugin{depends: []string{"a", "b"}}

	deps := m.Depends()
	if len(deps) != 2 {
		t.Fatalf("expected 2 dependencies, got %d", len(deps))
	}
	if deps[0] != "a" || deps[1] != "b" {
		t.Errorf("expected declared order [a b], got %v", deps)
	}
}

func TestMockPlugin_Health(t *testing.T) {
	m := &mockPlugin{}
	ctx := context.Background()

	status := m.Health(ctx)
	if !status.IsHealthy() {
		t.Error("expected healthy status")
	}
	if status.Message != "mock plugin healthy" {
		t.Errorf("unexpected message: %s", status.Message)
	}
}

func TestToDescriptor(t *testing.T) {
	m := &mockPlugin{
		name:        "descTest",
		version:     "2.0.0",
		description: "A test plugin",
		depends:     []string{"base"},
	}

	d := ToDescriptor(m)
	if d.Name != "descTest" {
		t.Errorf("expected name 'descTest', got %s", d.Name)
	}
	if d.Version != "2.0.0" {
		t.Errorf("expected version '2.0.0', got %s", d.Version)
	}
	if len(d.Depends) != 1 || d.Depends[0] != "base" {
		t.Errorf("expected depends [base], got %v", d.Depends)
	}

	// The descriptor must hold its own copy of the dependency list.
	d.Depends[0] = "mutated"
	if m.depends[0] != "base" {
		t.Error("descriptor mutation leaked into the plugin")
	}
}

func TestStatusHelpers(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		healthy   bool
		unhealthy bool
	}{
		{"healthy", Healthy("ok"), true, false},
		{"degraded", Degraded("slow", nil), false, false},
		{"unhealthy", Unhealthy("down", map[string]any{"reason": "test"}), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.status.IsHealthy() != tt.healthy {
				t.Errorf("IsHealthy() = %v, want %v", tt.status.IsHealthy(), tt.healthy)
			}
			if tt.status.IsUnhealthy() != tt.unhealthy {
				t.Errorf("IsUnhealthy() = %v, want %v", tt.status.IsUnhealthy(), tt.unhealthy)
			}
		})
	}
}
