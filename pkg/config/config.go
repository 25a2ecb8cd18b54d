// Package config loads rigup's configuration: the managed dotfiles,
// the source layer order and the component definitions. Built-in
// defaults are embedded and can be overridden by a user file under
// the XDG config directory.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/rigup/pkg/errors"
	"github.com/arthur-debert/rigup/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed default.toml
var defaultConfig []byte

var log = logging.GetLogger("config")

// UserConfigFile is the name of the user override file
const UserConfigFile = "rigup.toml"

// Config is the root configuration
type Config struct {
	Dotfiles DotfilesConfig `toml:"dotfiles"`
	OhMyZsh  OhMyZshConfig  `toml:"ohmyzsh"`
	Agent    AgentConfig    `toml:"agent"`
}

// DotfilesConfig describes the managed files and their source layers
type DotfilesConfig struct {
	// Layers are source directory names under the configs root,
	// highest priority first.
	Layers []string      `toml:"layers"`
	Files  []ManagedFile `toml:"files"`
}

// ManagedFile is a dotfile whose home-directory placement rigup controls
type ManagedFile struct {
	// Name is the logical filename looked up in the source layers
	Name string `toml:"name"`

	// Target is the home-relative link location; defaults to Name
	Target string `toml:"target"`

	// Mode is an optional octal permission string (e.g. "0600")
	// applied to the source file after linking
	Mode string `toml:"mode"`
}

// TargetName returns the home-relative target, falling back to Name
func (m ManagedFile) TargetName() string {
	if m.Target != "" {
		return m.Target
	}
	return m.Name
}

// FileMode parses the Mode field. The second return value is false
// when no mode is configured.
func (m ManagedFile) FileMode() (os.FileMode, bool) {
	if m.Mode == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(m.Mode, 8, 32)
	if err != nil {
		log.Warn().Str("file", m.Name).Str("mode", m.Mode).Msg("Ignoring unparseable file mode")
		return 0, false
	}
	return os.FileMode(parsed), true
}

// OhMyZshConfig describes the shell framework installation
type OhMyZshConfig struct {
	InstallScriptURL string       `toml:"install_script_url"`
	Plugins          []PluginRepo `toml:"plugins"`
}

// PluginRepo is a git-hosted oh-my-zsh plugin
type PluginRepo struct {
	Name string `toml:"name"`
	Repo string `toml:"repo"`
}

// AgentConfig describes the AI agent CLI installation
type AgentConfig struct {
	// Command is the executable name probed on the PATH
	Command string `toml:"command"`

	// Package is the npm package installed globally
	Package string `toml:"package"`

	// InstallScriptURL is the fallback curl-based installer
	InstallScriptURL string `toml:"install_script_url"`

	// Plugins are registration commands run through the CLI itself
	Plugins []AgentPlugin `toml:"plugins"`
}

// AgentPlugin is a plugin registered via the agent CLI
type AgentPlugin struct {
	Name string   `toml:"name"`
	Args []string `toml:"args"`
}

// Load returns the effective configuration: embedded defaults with
// the user file (if present) layered on top.
func Load() (*Config, error) {
	return LoadFrom(UserConfigPath())
}

// LoadFrom loads the configuration using the given user override path
func LoadFrom(userPath string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse built-in config")
	}

	data, err := os.ReadFile(userPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, cfg.validate()
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", userPath)
	}

	var user Config
	if err := toml.Unmarshal(data, &user); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", userPath)
	}
	cfg.merge(&user)

	log.Debug().Str("path", userPath).Msg("Loaded user configuration")
	return &cfg, cfg.validate()
}

// merge overlays user-provided values onto the defaults. Set fields
// replace their default wholesale; absent fields keep the default.
func (c *Config) merge(user *Config) {
	if len(user.Dotfiles.Layers) > 0 {
		c.Dotfiles.Layers = user.Dotfiles.Layers
	}
	if len(user.Dotfiles.Files) > 0 {
		c.Dotfiles.Files = user.Dotfiles.Files
	}
	if user.OhMyZsh.InstallScriptURL != "" {
		c.OhMyZsh.InstallScriptURL = user.OhMyZsh.InstallScriptURL
	}
	if len(user.OhMyZsh.Plugins) > 0 {
		c.OhMyZsh.Plugins = user.OhMyZsh.Plugins
	}
	if user.Agent.Command != "" {
		c.Agent.Command = user.Agent.Command
	}
	if user.Agent.Package != "" {
		c.Agent.Package = user.Agent.Package
	}
	if user.Agent.InstallScriptURL != "" {
		c.Agent.InstallScriptURL = user.Agent.InstallScriptURL
	}
	if len(user.Agent.Plugins) > 0 {
		c.Agent.Plugins = user.Agent.Plugins
	}
}

// UserConfigPath returns the location of the user override file
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "rigup", UserConfigFile)
}

func (c *Config) validate() error {
	if len(c.Dotfiles.Layers) == 0 {
		return errors.New(errors.ErrConfigParse, "dotfiles.layers must not be empty")
	}
	for _, f := range c.Dotfiles.Files {
		if f.Name == "" {
			return errors.New(errors.ErrConfigParse, "dotfiles.files entries require a name")
		}
	}
	return nil
}
