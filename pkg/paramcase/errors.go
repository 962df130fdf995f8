package paramcase

import "errors"

var (
	// ErrMissingHook is the configuration error returned when a template
	// lacks the SetParameters hook.
	ErrMissingHook = errors.New("template does not have a SetParameters method")

	// ErrNotPointer is returned when a template is not a pointer to a named
	// struct type.
	ErrNotPointer = errors.New("template must be a pointer to a named struct type")

	// ErrNoNamespace is returned when there is no registry to publish the
	// generated test cases into.
	ErrNoNamespace = errors.New("no namespace to publish generated test cases into")

	// ErrDuplicateName is returned when a name is published twice into the
	// same registry.
	ErrDuplicateName = errors.New("name already published")

	// ErrUnbound is returned by the Base accessors until the instance is
	// bound to a generated test case.
	ErrUnbound = errors.New("accessor should have been bound by parametrized")
)
