package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/gw/internal/errs"
)

// RepoConfigFileName is the per-repository config file in the main worktree.
const RepoConfigFileName = ".gwconfig"

// Format is the textual shape of a .gwconfig file.
type Format string

const (
	FormatNone Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Config is the per-repository configuration, read from
// <root>/<main>/.gwconfig. Every list is empty when not configured.
type Config struct {
	LinkFiles     []string `mapstructure:"link_files" yaml:"link_files" json:"link_files"`
	Scripts       []string `mapstructure:"scripts" yaml:"scripts" json:"scripts"`
	DeleteScripts []string `mapstructure:"delete_scripts" yaml:"delete_scripts" json:"delete_scripts"`

	// Path is the file the config was read from; empty when absent.
	Path string `mapstructure:"-" yaml:"-" json:"-"`
	// Format is the detected shape of the file.
	Format Format `mapstructure:"-" yaml:"-" json:"-"`
	// Unknown lists keys present in the file that gw does not use.
	Unknown []string `mapstructure:"-" yaml:"-" json:"-"`
}

var knownKeys = []string{"link_files", "scripts", "delete_scripts"}

// LoadRepo reads .gwconfig from the main worktree at mainPath.
// A missing file yields an empty Config and no error.
func LoadRepo(mainPath string) (Config, error) {
	path := filepath.Join(mainPath, RepoConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errs.Wrap(errs.KindConfigInvalid, err, "invalid %s", path)
	}
	cfg.Path = path
	return cfg, nil
}

// DetectFormat reports the shape of data: an object literal is JSON,
// anything else non-blank is YAML.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return FormatNone
	case trimmed[0] == '{':
		return FormatJSON
	default:
		return FormatYAML
	}
}

// Parse decodes either shape of .gwconfig into a Config.
func Parse(data []byte) (Config, error) {
	format := DetectFormat(data)
	if format == FormatNone {
		return Config{}, nil
	}

	v := viper.New()
	v.SetConfigType(string(format))
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", format, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(scalarToList)); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	cfg.Format = format

	for _, key := range v.AllKeys() {
		top, _, _ := strings.Cut(key, ".")
		if !slices.Contains(knownKeys, top) && !slices.Contains(cfg.Unknown, top) {
			cfg.Unknown = append(cfg.Unknown, top)
		}
	}
	slices.Sort(cfg.Unknown)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// scalarToList lets a single string stand in for a one-element list.
var scalarToList mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == reflect.TypeOf([]string(nil)) {
		s := data.(string)
		if strings.TrimSpace(s) == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	}
	return data, nil
}

func (c Config) validate() error {
	if err := validateEntries(c.LinkFiles, "link_files"); err != nil {
		return err
	}
	for i, p := range c.LinkFiles {
		if err := validateLinkPath(p, i); err != nil {
			return err
		}
	}
	if err := validateEntries(c.Scripts, "scripts"); err != nil {
		return err
	}
	return validateEntries(c.DeleteScripts, "delete_scripts")
}

// IsEmpty reports whether nothing is configured.
func (c Config) IsEmpty() bool {
	return len(c.LinkFiles) == 0 && len(c.Scripts) == 0 && len(c.DeleteScripts) == 0
}

// Encode renders the config in the given shape. Unset lists are written
// as empty lists so the output documents every key.
func (c Config) Encode(format Format) ([]byte, error) {
	out := c
	for _, l := range []*[]string{&out.LinkFiles, &out.Scripts, &out.DeleteScripts} {
		if *l == nil {
			*l = []string{}
		}
	}
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML, FormatNone:
		return yaml.Marshal(out)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

const repoConfigTemplate = `# gw repository configuration
# Lives in the main worktree. JSON with the same keys is accepted too.

# Files or directories from the main worktree to symlink into every new
# worktree, relative to the worktree root.
link_files: []
#  - .env
#  - node_modules

# Commands run in a new worktree after it is created. Failures are reported
# as warnings and never undo the creation.
scripts: []
#  - npm install

# Commands run in a worktree before it is deleted. The first failing
# command aborts the deletion and leaves the worktree untouched.
delete_scripts: []
#  - make check-clean
`

// InitRepo writes a commented .gwconfig template into the main worktree.
// Returns the path written to.
func InitRepo(mainPath string, force bool) (string, error) {
	path := filepath.Join(mainPath, RepoConfigFileName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}
	if err := os.WriteFile(path, []byte(repoConfigTemplate), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
