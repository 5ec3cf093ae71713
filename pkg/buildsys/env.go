package buildsys

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// ToolPaths maps a GOOS value to the location of a tool on that platform
type ToolPaths map[string]string

// Resolve returns the tool path for goos or a platform error
func (p ToolPaths) Resolve(goos string) (string, error) {
	path, ok := p[goos]
	if !ok || path == "" {
		return "", platformError(goos)
	}
	return path, nil
}

var (
	// DefaultMdtoolPaths lists the usual Xamarin Studio install locations.
	// Linux isn't supported since there's no Xamarin Studio release for it.
	DefaultMdtoolPaths = ToolPaths{
		"windows": `C:\Program Files (x86)\Xamarin Studio\bin\mdtool`,
		"darwin":  "/Applications/Xamarin Studio.app/Contents/MacOS/mdtool",
	}
	DefaultUnityPaths = ToolPaths{
		"windows": `C:\Program Files (x86)\Unity\Editor\Unity.exe`,
		"darwin":  "/Applications/Unity/Unity.app/Contents/MacOS/Unity",
	}
)

const (
	DefaultOutDir         = "dist"
	DefaultGamelibProject = "external/Indigo/Indigo.csproj"
	DefaultUnityProject   = "unity"
	DefaultVCS            = "hg"
)

// Env holds everything the build steps need to know about the host and the project.
// It's constructed once at startup and passed to every step.
type Env struct {
	ProjectRoot string
	// OutDir is absolute
	OutDir string
	GOOS   string
	VCS    string

	GamelibProject string
	MdtoolPaths    ToolPaths

	UnityEnabled bool
	UnityProject string
	UnityPaths   ToolPaths

	Repo RepoIdentity

	Printer *Printer
	Stdout  io.Writer
	Stderr  io.Writer

	ExecHandlers []ExecMiddleware
	Now          func() time.Time
}

// NewEnv returns an Env for the project at root with the default tool locations
// for the running platform.
func NewEnv(root string) *Env {
	return &Env{
		ProjectRoot:    root,
		OutDir:         filepath.Join(root, DefaultOutDir),
		GOOS:           runtime.GOOS,
		VCS:            DefaultVCS,
		GamelibProject: DefaultGamelibProject,
		MdtoolPaths:    DefaultMdtoolPaths,
		UnityProject:   DefaultUnityProject,
		UnityPaths:     DefaultUnityPaths,
		Printer:        NewPrinter(os.Stdout, false),
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Now:            time.Now,
	}
}

// UnityDir returns the absolute path of the Unity project
func (e *Env) UnityDir() string {
	return e.resolve(e.UnityProject)
}

func (e *Env) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(e.ProjectRoot, path)
}
