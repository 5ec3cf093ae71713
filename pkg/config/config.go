package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/mguzdial3/IndigoPrison/pkg/buildsys"
)

// DefaultFile is loaded from the project root if it exists
const DefaultFile = "indigo-build.toml"

// Config describes all configuration options
type Config struct {
	Root   string `toml:"root" usage:"Project root; defaults to the closest parent directory containing .hg"`
	OutDir string `toml:"outdir" default:"dist" usage:"Output directory, relative to the project root"`
	VCS    string `toml:"vcs" default:"hg" usage:"Revision control executable"`
	Log    struct {
		Level   string `toml:"level" default:"info"`
		Color   bool   `toml:"color" default:"true" usage:"Colorize console output"`
		Verbose bool   `toml:"verbose" default:"false" usage:"Include stack traces and all fields in log messages"`
	} `toml:"log"`
	Gamelib struct {
		Project string `toml:"project" default:"external/Indigo/Indigo.csproj"`
		Mdtool  struct {
			Windows string `toml:"windows"`
			Darwin  string `toml:"darwin"`
		} `toml:"mdtool"`
	} `toml:"gamelib"`
	Unity struct {
		Enabled    bool   `toml:"enabled" default:"false" usage:"Register the unity target"`
		Project    string `toml:"project" default:"unity"`
		Executable struct {
			Windows string `toml:"windows"`
			Darwin  string `toml:"darwin"`
		} `toml:"executable"`
	} `toml:"unity"`
}

var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
}

// Loader initializes an empty config object and returns a new Loader for this object.
// Flags are left to cobra; only defaults, the given files and INDIGO_* variables are read.
// Missing files are skipped unless mustExist is set.
func Loader(mustExist bool, files ...string) (*Config, *aconfig.Loader) {
	if len(files) == 0 {
		files = []string{DefaultFile}
	}

	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix:          "INDIGO",
		SkipFlags:          true,
		FailOnFileNotFound: mustExist,
		Files:              files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load is a shortcut for Loader(false, files...).Load()
func Load(files ...string) (*Config, error) {
	return load(false, files...)
}

// LoadFile loads an explicitly requested file which has to exist
func LoadFile(path string) (*Config, error) {
	return load(true, path)
}

func load(mustExist bool, files ...string) (*Config, error) {
	cfg, loader := Loader(mustExist, files...)
	if err := loader.Load(); err != nil {
		return nil, eris.Wrap(err, "Failed to load configuration")
	}
	return cfg, nil
}

// DefaultPath returns the location of DefaultFile for the project containing wd. Falls back
// to wd if there's no project root.
func DefaultPath(wd string) string {
	root, err := FindProjectRoot(wd)
	if err != nil {
		return filepath.Join(wd, DefaultFile)
	}
	return filepath.Join(root, DefaultFile)
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	_, ok := logLevels[cfg.Log.Level]
	if !ok {
		return eris.Errorf(`Invalid value for log.level: %s`, cfg.Log.Level)
	}

	if strings.TrimSpace(cfg.OutDir) == "" {
		return eris.New(`outdir must not be empty`)
	}

	if strings.TrimSpace(cfg.VCS) == "" {
		return eris.New(`vcs must not be empty`)
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level
func (cfg *Config) LogLevel() zerolog.Level {
	return logLevels[cfg.Log.Level]
}

// NewEnv builds the build environment described by cfg. The project root is searched
// starting at wd unless it's configured explicitly.
func (cfg *Config) NewEnv(wd string) (*buildsys.Env, error) {
	root := cfg.Root
	if root == "" {
		var err error
		root, err = FindProjectRoot(wd)
		if err != nil {
			return nil, err
		}
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, eris.Wrapf(err, "Failed to resolve %s", root)
	}

	env := buildsys.NewEnv(root)
	env.OutDir = cfg.OutDir
	if !filepath.IsAbs(env.OutDir) {
		env.OutDir = filepath.Join(root, env.OutDir)
	}

	env.VCS = cfg.VCS
	env.GamelibProject = cfg.Gamelib.Project
	env.MdtoolPaths = overridePaths(buildsys.DefaultMdtoolPaths, cfg.Gamelib.Mdtool.Windows, cfg.Gamelib.Mdtool.Darwin)
	env.UnityEnabled = cfg.Unity.Enabled
	env.UnityProject = cfg.Unity.Project
	env.UnityPaths = overridePaths(buildsys.DefaultUnityPaths, cfg.Unity.Executable.Windows, cfg.Unity.Executable.Darwin)

	return env, nil
}

func overridePaths(defaults buildsys.ToolPaths, windows, darwin string) buildsys.ToolPaths {
	result := make(buildsys.ToolPaths, len(defaults))
	for goos, path := range defaults {
		result[goos] = path
	}

	if windows != "" {
		result["windows"] = windows
	}
	if darwin != "" {
		result["darwin"] = darwin
	}

	return result
}

// FindProjectRoot walks up from dir until it finds the directory containing .hg
func FindProjectRoot(dir string) (string, error) {
	path, err := filepath.Abs(dir)
	if err != nil {
		return "", eris.Wrapf(err, "Failed to resolve %s", dir)
	}

	for {
		_, err := os.Stat(filepath.Join(path, ".hg"))
		if err == nil {
			return path, nil
		}

		if !eris.Is(err, os.ErrNotExist) {
			return "", eris.Wrap(err, "Error ocurred while searching for project root")
		}

		parent := filepath.Dir(path)
		if parent == path {
			break
		}
		path = parent
	}

	return "", eris.New("Project root not found")
}
