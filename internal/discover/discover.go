// Package discover locates network configuration files in a directory
// tree.
//
// A configuration file is any YAML file named network.yaml or
// vpcforge.yaml (or the .yml variants). Hidden directories, vendor,
// and node_modules are skipped.
package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	vpcforge "github.com/eliodevbr/vpcforge"
)

// configNames are the file names recognized as network configurations.
var configNames = map[string]bool{
	"network.yaml":  true,
	"network.yml":   true,
	"vpcforge.yaml": true,
	"vpcforge.yml":  true,
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
}

// Options configures discovery.
type Options struct {
	// Root is the directory to walk. Defaults to ".".
	Root string
}

// Discover walks the tree for configuration files and peeks each one
// for its app and environment. Unparsable files are listed with empty
// fields rather than failing the walk.
func Discover(opts Options) (*vpcforge.ListResult, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}

	result := &vpcforge.ListResult{Configs: []vpcforge.ListConfig{}}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || skipDirs[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !configNames[d.Name()] {
			return nil
		}

		cfg := vpcforge.ListConfig{Path: path}
		cfg.App, cfg.Environment = peek(path)
		result.Configs = append(result.Configs, cfg)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result.Configs, func(i, j int) bool {
		return result.Configs[i].Path < result.Configs[j].Path
	})
	return result, nil
}

// peek reads just the app and environment fields of a configuration
// file, tolerating unknown fields and parse failures.
func peek(path string) (app, environment string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ""
	}

	var head struct {
		App         string `yaml:"app"`
		Environment string `yaml:"environment"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return "", ""
	}
	return head.App, head.Environment
}
