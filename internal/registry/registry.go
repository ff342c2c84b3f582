// Package registry resolves the application roots a scan walks. Roots come
// from explicit configuration, a registry file, or convention autodetection.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"sua/internal/config"
	"sua/internal/errors"
	"sua/internal/logging"
	"sua/internal/paths"
)

// Resolution methods, in cascade order
const (
	MethodExplicit   = "explicit"
	MethodFile       = "file"
	MethodConvention = "convention"
)

// defaultRegistryFiles are tried in order when registry.file is not set
var defaultRegistryFiles = []string{"apps.toml", "apps.yaml"}

// conventionMarkers mark a first-level directory as an application root.
// "serializers" may be a file (serializers.py) or a package directory.
var conventionMarkers = []string{"apps.py", "models.py", "serializers.py", "serializers"}

// App represents one registered application root
type App struct {
	Name string `json:"name" toml:"name" yaml:"name"`
	Root string `json:"root" toml:"root" yaml:"root"`
}

// Resolution is the outcome of root resolution
type Resolution struct {
	Apps   []App  `json:"apps"`
	Method string `json:"method"`
	Source string `json:"source,omitempty"` // registry file path when Method == "file"
}

// registryFile is the on-disk shape of apps.toml / apps.yaml
type registryFile struct {
	Apps []App `toml:"apps" yaml:"apps"`
}

// Resolve resolves application roots using the cascading resolution order:
// explicit config roots, then a registry file, then convention autodetection.
// An empty outcome at the selected step is a RegistryEmpty error.
func Resolve(projectRoot string, cfg config.RegistryConfig, logger *logging.Logger) (*Resolution, error) {
	// Step 1: explicit roots from config
	if len(cfg.Roots) > 0 {
		apps := resolveExplicit(projectRoot, cfg.Roots, logger)
		if len(apps) == 0 {
			return nil, errors.NewAuditError(errors.RegistryEmpty,
				"none of the configured registry roots exist", nil)
		}
		return &Resolution{Apps: apps, Method: MethodExplicit}, nil
	}

	// Step 2: registry file
	res, err := resolveFromFile(projectRoot, cfg.File, logger)
	if err != nil {
		return nil, err
	}
	if res != nil {
		return res, nil
	}

	// Step 3: convention autodetection
	apps, err := resolveByConvention(projectRoot)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return nil, errors.NewAuditError(errors.RegistryEmpty,
			fmt.Sprintf("no application roots found under %s", projectRoot), nil)
	}

	logger.Debug("Resolved roots by convention", map[string]interface{}{
		"count": len(apps),
	})

	return &Resolution{Apps: apps, Method: MethodConvention}, nil
}

// resolveExplicit keeps the configured roots that exist on disk
func resolveExplicit(projectRoot string, roots []string, logger *logging.Logger) []App {
	var apps []App

	for _, root := range roots {
		absPath := paths.JoinRoot(projectRoot, root)
		if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
			logger.Warn("Configured root does not exist", map[string]interface{}{
				"root": root,
			})
			continue
		}

		normalized := paths.NormalizePath(root)
		apps = append(apps, App{
			Name: filepath.Base(filepath.FromSlash(normalized)),
			Root: normalized,
		})

		logger.Debug("Registered explicit root", map[string]interface{}{
			"root": normalized,
		})
	}

	return apps
}

// resolveFromFile loads the registry file if one exists. A configured file
// that is missing or malformed is an error; absent default files are not.
func resolveFromFile(projectRoot string, configured string, logger *logging.Logger) (*Resolution, error) {
	candidates := defaultRegistryFiles
	required := false
	if configured != "" {
		candidates = []string{configured}
		required = true
	}

	for _, name := range candidates {
		path := name
		if !filepath.IsAbs(path) {
			path = paths.JoinRoot(projectRoot, name)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) && !required {
				continue
			}
			return nil, fmt.Errorf("reading registry file %s: %w", path, err)
		}

		var parsed registryFile
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if err := toml.Unmarshal(data, &parsed); err != nil {
				return nil, fmt.Errorf("parsing registry file %s: %w", path, err)
			}
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, &parsed); err != nil {
				return nil, fmt.Errorf("parsing registry file %s: %w", path, err)
			}
		default:
			return nil, fmt.Errorf("registry file %s: unsupported format (want .toml or .yaml)", path)
		}

		var apps []App
		for _, app := range parsed.Apps {
			root := paths.NormalizePath(app.Root)
			absPath := paths.JoinRoot(projectRoot, root)
			if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
				logger.Warn("Registry entry root does not exist", map[string]interface{}{
					"name": app.Name,
					"root": app.Root,
				})
				continue
			}
			if !paths.IsWithin(absPath, projectRoot) {
				logger.Warn("Registry entry root is outside the project", map[string]interface{}{
					"name": app.Name,
					"root": app.Root,
				})
				continue
			}
			name := app.Name
			if name == "" {
				name = filepath.Base(filepath.FromSlash(root))
			}
			apps = append(apps, App{Name: name, Root: root})
		}

		if len(apps) == 0 {
			return nil, errors.NewAuditError(errors.RegistryEmpty,
				fmt.Sprintf("registry file %s has no usable entries", path), nil)
		}

		logger.Debug("Resolved roots from registry file", map[string]interface{}{
			"file":  path,
			"count": len(apps),
		})

		return &Resolution{Apps: apps, Method: MethodFile, Source: path}, nil
	}

	return nil, nil
}

// resolveByConvention picks first-level directories that look like Django
// applications. os.ReadDir returns entries sorted by name, so the outcome
// is deterministic.
func resolveByConvention(projectRoot string) ([]App, error) {
	entries, err := os.ReadDir(projectRoot)
	if err != nil {
		return nil, err
	}

	var apps []App
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if !hasConventionMarker(filepath.Join(projectRoot, entry.Name())) {
			continue
		}
		apps = append(apps, App{Name: entry.Name(), Root: entry.Name()})
	}

	return apps, nil
}

func hasConventionMarker(dir string) bool {
	for _, marker := range conventionMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
