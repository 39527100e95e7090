// Package embedded provides access to the command manifests and scripts that
// ship inside the Aurora binary.
package embedded

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

// FS holds every embedded manifest and script.
//
//go:embed manifests/*.yaml scripts/*.aurora
var FS embed.FS

const (
	manifestDir = "manifests"
	manifestExt = ".yaml"
	scriptDir   = "scripts"
	scriptExt   = ".aurora"
)

// LoadManifest returns the raw YAML of an embedded manifest. The extension may
// be omitted.
func LoadManifest(name string) ([]byte, error) {
	data, err := FS.ReadFile(path.Join(manifestDir, withExt(name, manifestExt)))
	if err != nil {
		return nil, fmt.Errorf("embedded manifest not found: %s", name)
	}
	return data, nil
}

// ListManifests returns the embedded manifest names without extension, sorted.
func ListManifests() ([]string, error) {
	return list(manifestDir, manifestExt)
}

// LoadScript returns the content of an embedded batch script.
func LoadScript(name string) (string, error) {
	data, err := FS.ReadFile(path.Join(scriptDir, withExt(name, scriptExt)))
	if err != nil {
		return "", fmt.Errorf("embedded script not found: %s", name)
	}
	return string(data), nil
}

// ListScripts returns the embedded script names without extension, sorted.
func ListScripts() ([]string, error) {
	return list(scriptDir, scriptExt)
}

// ScriptPath returns the virtual path reported for an embedded script.
func ScriptPath(name string) string {
	return "embedded://" + scriptDir + "/" + withExt(name, scriptExt)
}

func withExt(name, ext string) string {
	if strings.HasSuffix(name, ext) {
		return name
	}
	return name + ext
}

func list(dir, ext string) ([]string, error) {
	entries, err := FS.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ext))
	}
	sort.Strings(names)
	return names, nil
}
