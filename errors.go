package plughost

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common host error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrPluginNotFound indicates the requested plugin was not found in the registry.
	ErrPluginNotFound = errors.New("plugin not found")

	// ErrDuplicatePlugin indicates a registration collided with an existing name.
	// The registry retains the first-registered instance.
	ErrDuplicatePlugin = errors.New("plugin already registered")

	// ErrDependencyDisabled indicates a required dependency is registered but
	// disabled, and automatic dependency enabling was not requested.
	ErrDependencyDisabled = errors.New("dependency disabled")

	// ErrDependencyCycle indicates a chain of dependencies revisited a plugin
	// already being resolved in the current enable call.
	ErrDependencyCycle = errors.New("dependency cycle detected")
)

// Error kinds categorize errors by their type.
const (
	// KindNotFound represents errors where a plugin was not found.
	KindNotFound = "not_found"

	// KindDuplicate represents registration collisions.
	KindDuplicate = "duplicate"

	// KindDependency represents dependency resolution failures.
	KindDependency = "dependency"

	// KindLifecycle represents failures in plugin lifecycle hooks.
	KindLifecycle = "lifecycle"

	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindInternal represents internal host errors.
	KindInternal = "internal"
)

// HostError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of error.
//
// HostError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type HostError struct {
	// Op is the operation that failed (e.g., "Registry.Register", "Manager.EnablePlugin").
	Op string

	// Kind categorizes the error (e.g., KindNotFound, KindDependency).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *HostError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("plughost: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("plughost: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("plughost: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *HostError) Unwrap() error {
	return e.Err
}

// Is implements error matching for HostError, allowing comparison based on
// the underlying error or the HostError itself.
func (e *HostError) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*HostError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a new HostError with the provided context added.
func (e *HostError) WithContext(ctx map[string]any) *HostError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewNotFoundError creates a new HostError with KindNotFound.
func NewNotFoundError(op string, err error) *HostError {
	return &HostError{Op: op, Kind: KindNotFound, Err: err}
}

// NewDuplicateError creates a new HostError with KindDuplicate.
func NewDuplicateError(op string, err error) *HostError {
	return &HostError{Op: op, Kind: KindDuplicate, Err: err}
}

// NewLifecycleError creates a new HostError with KindLifecycle.
func NewLifecycleError(op string, err error) *HostError {
	return &HostError{Op: op, Kind: KindLifecycle, Err: err}
}

// NewValidationError creates a new HostError with KindValidation.
func NewValidationError(op string, err error) *HostError {
	return &HostError{Op: op, Kind: KindValidation, Err: err}
}

// NewInternalError creates a new HostError with KindInternal.
func NewInternalError(op string, err error) *HostError {
	return &HostError{Op: op, Kind: KindInternal, Err: err}
}

// DependencyError reports a failure to resolve a plugin's dependencies during
// an enable operation. It always identifies the offending dependency and the
// resolution chain that led to it, and wraps the cause so that errors.Is()
// can distinguish a missing dependency (ErrPluginNotFound), a disabled
// dependency with automatic enabling off (ErrDependencyDisabled), and a
// dependency cycle (ErrDependencyCycle).
type DependencyError struct {
	// Plugin is the plugin whose enable operation failed.
	Plugin string

	// Dependency is the offending dependency name.
	Dependency string

	// Chain is the resolution path from the originally requested plugin to
	// the offending dependency, in resolution order.
	Chain []string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	msg := fmt.Sprintf("plugin %s: dependency %s: %v", e.Plugin, e.Dependency, e.Err)
	if len(e.Chain) > 1 {
		msg += fmt.Sprintf(" (chain: %s)", strings.Join(e.Chain, " -> "))
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *DependencyError) Unwrap() error {
	return e.Err
}
