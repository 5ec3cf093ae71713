package buildsys

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Kind classifies build failures.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors that didn't originate in this package.
	KindUnknown Kind = iota
	// KindConfiguration covers invalid build modes and refused builds (i.e. production builds of a dirty tree).
	KindConfiguration
	// KindPlatform is returned when the host OS has no known tool location.
	KindPlatform
	// KindExternalTool covers failed or non-zero exiting invocations of mdtool, Unity or the VCS.
	KindExternalTool
	// KindHousekeeping covers cleanup failures. These are logged and never fail the build.
	KindHousekeeping
	// KindUnknownTarget is returned when no step is registered for a target.
	KindUnknownTarget
)

var kindNames = map[Kind]string{
	KindUnknown:       "unknown",
	KindConfiguration: "configuration",
	KindPlatform:      "platform",
	KindExternalTool:  "external tool",
	KindHousekeeping:  "housekeeping",
	KindUnknownTarget: "unknown target",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "invalid"
	}
	return name
}

// Error is the error type returned by all build steps.
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + " error: " + e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func newError(kind Kind, err error) error {
	return &Error{Kind: kind, err: err}
}

func configErrorf(format string, args ...interface{}) error {
	return newError(KindConfiguration, eris.Errorf(format, args...))
}

func platformError(goos string) error {
	return newError(KindPlatform, eris.Errorf("Platform %s unsupported!", goos))
}

func toolError(err error, format string, args ...interface{}) error {
	return newError(KindExternalTool, eris.Wrapf(err, format, args...))
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var buildErr *Error
	if errors.As(err, &buildErr) {
		return buildErr.Kind
	}
	return KindUnknown
}

// Render formats err for humans. eris stops unpacking at foreign error types, so
// *Error is unwrapped here to keep the stack trace of the underlying error.
func Render(err error, withTrace bool) string {
	var buildErr *Error
	if errors.As(err, &buildErr) {
		return buildErr.Kind.String() + " error: " + eris.ToString(buildErr.err, withTrace)
	}
	return eris.ToString(err, withTrace)
}
