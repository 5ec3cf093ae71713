package buildsys

import (
	"github.com/rotisserie/eris"
)

// Target names something that can be built
type Target int

const (
	TargetAll Target = iota
	TargetGamelib
	TargetUnity
	TargetClean
)

var targetNames = []string{
	TargetAll:     "all",
	TargetGamelib: "gamelib",
	TargetUnity:   "unity",
	TargetClean:   "clean",
}

func (t Target) String() string {
	if t < 0 || int(t) >= len(targetNames) {
		return "invalid"
	}
	return targetNames[t]
}

// TargetNames returns the names accepted by ParseTarget in their declared order.
func TargetNames() []string {
	names := make([]string, len(targetNames))
	copy(names, targetNames)
	return names
}

// ParseTarget converts a target name to a Target
func ParseTarget(name string) (Target, error) {
	for idx, known := range targetNames {
		if known == name {
			return Target(idx), nil
		}
	}

	return 0, newError(KindUnknownTarget, eris.Errorf("Unknown target '%s'", name))
}

// Mode selects between development and production builds
type Mode string

const (
	ModeDevelopment Mode = "dev"
	ModeProduction  Mode = "prd"
)

// BuildConfig returns the build configuration name and the define symbol for m.
func (m Mode) BuildConfig() (config, define string, err error) {
	switch m {
	case ModeDevelopment:
		return "Debug", "DEVELOPMENT", nil
	case ModeProduction:
		return "Release", "PRODUCTION", nil
	default:
		return "", "", configErrorf("Invalid configuration '%s', aborting.", string(m))
	}
}

// Options contains the parsed command line options. They're never modified after parsing.
type Options struct {
	Target Target
	Mode   Mode
}

// RepoIdentity describes the checked out revision
type RepoIdentity struct {
	Revision string
	// Status is the raw output of the VCS status command; empty means clean.
	Status string
}

// Dirty reports whether the working tree has uncommitted changes
func (r RepoIdentity) Dirty() bool {
	return r.Status != ""
}
