package plughost

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/plughost/plughost/plugin"
)

// testLogger returns a logger that discards output, keeping test runs quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// hookCounts tracks how many times each lifecycle hook ran for a test plugin.
type hookCounts struct {
	load    atomic.Int32
	enable  atomic.Int32
	disable atomic.Int32
}

// newTestPlugin builds a plugin with counting hooks. enableErr and disableErr,
// when non-nil, are returned by the corresponding hook.
func newTestPlugin(t *testing.T, name string, depends []string, counts *hookCounts, enableErr, disableErr error) plugin.Plugin {
	t.Helper()

	cfg := plugin.NewConfig()
	cfg.SetName(name)
	cfg.SetVersion("1.0.0")
	cfg.SetDepends(depends)
	if counts != nil {
		cfg.SetOnLoad(func(ctx context.Context) error {
			counts.load.Add(1)
			return nil
		})
		cfg.SetOnEnable(func(ctx context.Context) error {
			counts.enable.Add(1)
			return enableErr
		})
		cfg.SetOnDisable(func(ctx context.Context) error {
			counts.disable.Add(1)
			return disableErr
		})
	}

	p, err := plugin.New(cfg)
	if err != nil {
		t.Fatalf("failed to build test plugin %s: %v", name, err)
	}
	return p
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry(testLogger())

	p := newTestPlugin(t, "alpha", nil, nil, nil, nil)
	if err := r.Register(p); err != nil {
		t.Fatalf("failed to register plugin: %v", err)
	}

	got, err := r.Get("alpha")
	if err != nil {
		t.Fatalf("failed to get plugin: %v", err)
	}
	if got.Name() != "alpha" {
		t.Errorf("expected plugin 'alpha', got %s", got.Name())
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry(testLogger())

	first := newTestPlugin(t, "dup", nil, nil, nil, nil)
	second := newTestPlugin(t, "dup", []string{"other"}, nil, nil, nil)

	if err := r.Register(first); err != nil {
		t.Fatalf("failed to register first plugin: %v", err)
	}

	err := r.Register(second)
	if !errors.Is(err, ErrDuplicatePlugin) {
		t.Fatalf("expected ErrDuplicatePlugin, got %v", err)
	}

	// The first-registered instance must be retained.
	got, err := r.Get("dup")
	if err != nil {
		t.Fatalf("failed to get plugin: %v", err)
	}
	if len(got.Depends()) != 0 {
		t.Error("registry replaced the first-registered instance")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 plugin, got %d", r.Len())
	}
}

func TestRegistry_GetNotFound(t *testing.T) {
	r := NewRegistry(testLogger())

	_, err := r.Get("ghost")
	if !errors.Is(err, ErrPluginNotFound) {
		t.Fatalf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestRegistry_ListInsertionOrder(t *testing.T) {
	r := NewRegistry(testLogger())

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		if err := r.Register(newTestPlugin(t, name, nil, nil, nil, nil)); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}

	infos := r.List()
	if len(infos) != 3 {
		t.Fatalf("expected 3 plugins, got %d", len(infos))
	}

	want := []string{"charlie", "alpha", "bravo"}
	for i, info := range infos {
		if info.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], info.Name)
		}
		if info.Enabled {
			t.Errorf("plugin %s should start disabled", info.Name)
		}
	}
}

func TestRegistry_SetEnabled(t *testing.T) {
	r := NewRegistry(testLogger())

	if err := r.Register(newTestPlugin(t, "raw", nil, nil, nil, nil)); err != nil {
		t.Fatalf("failed to register plugin: %v", err)
	}

	enabled, err := r.Enabled("raw")
	if err != nil {
		t.Fatalf("failed to read enabled flag: %v", err)
	}
	if enabled {
		t.Error("plugin should start disabled")
	}

	if err := r.SetEnabled("raw", true); err != nil {
		t.Fatalf("failed to set enabled: %v", err)
	}

	enabled, err = r.Enabled("raw")
	if err != nil {
		t.Fatalf("failed to read enabled flag: %v", err)
	}
	if !enabled {
		t.Error("plugin should be enabled after SetEnabled")
	}

	if err := r.SetEnabled("ghost", true); !errors.Is(err, ErrPluginNotFound) {
		t.Fatalf("expected ErrPluginNotFound for unknown plugin, got %v", err)
	}
}

func TestRegistry_EnabledDisabledViews(t *testing.T) {
	r := NewRegistry(testLogger())

	for _, name := range []string{"a", "b", "c"} {
		if err := r.Register(newTestPlugin(t, name, nil, nil, nil, nil)); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}
	if err := r.SetEnabled("b", true); err != nil {
		t.Fatalf("failed to set enabled: %v", err)
	}

	enabled := r.EnabledPlugins()
	if len(enabled) != 1 || enabled[0].Name != "b" {
		t.Errorf("expected enabled view [b], got %v", enabled)
	}

	disabled := r.DisabledPlugins()
	if len(disabled) != 2 || disabled[0].Name != "a" || disabled[1].Name != "c" {
		t.Errorf("expected disabled view [a c], got %v", disabled)
	}
}

func TestRegistry_Info(t *testing.T) {
	r := NewRegistry(testLogger())

	if err := r.Register(newTestPlugin(t, "info", []string{"dep"}, nil, nil, nil)); err != nil {
		t.Fatalf("failed to register plugin: %v", err)
	}

	info, err := r.Info("info")
	if err != nil {
		t.Fatalf("failed to get info: %v", err)
	}
	if info.Name != "info" || info.Enabled {
		t.Errorf("unexpected info: %+v", info)
	}
	if len(info.Depends) != 1 || info.Depends[0] != "dep" {
		t.Errorf("expected depends [dep], got %v", info.Depends)
	}

	if _, err := r.Info("ghost"); !errors.Is(err, ErrPluginNotFound) {
		t.Fatalf("expected ErrPluginNotFound, got %v", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry(testLogger())

	for _, name := range []string{"x", "y"} {
		if err := r.Register(newTestPlugin(t, name, nil, nil, nil, nil)); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "x" || names[1] != "y" {
		t.Errorf("expected names [x y], got %v", names)
	}

	// Mutating the returned slice must not affect the registry.
	names[0] = "mutated"
	if r.Names()[0] != "x" {
		t.Error("Names returned an aliased slice")
	}
}
