package cmd

import (
	"fmt"
	"os"
	"os/user"

	"github.com/alecthomas/kong"

	"github.com/renato0307/pomar/internal/config"
	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/logging"
)

// defaultUser is used when no user id is configured and the OS user is unknown
const defaultUser = "default"

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	Home        string           `help:"Data directory (overrides $POMAR_HOME)" type:"path"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`
	NoSound     bool             `help:"Disable notification sounds"`
	User        string           `help:"User id to act as (overrides $POMAR_USER)" short:"u"`

	Distraction DistractionCmd `cmd:"" help:"Record and list distractions"`
	Session     SessionCmd     `cmd:"" help:"Start, pause, resume, cancel and complete sessions"`
	Settings    SettingsCmd    `cmd:"" help:"Manage settings (meta)"`
	Stats       StatsCmd       `cmd:"" help:"Show level, streak and weekly goal progress"`
	Task        TaskCmd        `cmd:"" help:"Report completed tasks"`
	VersionInfo VersionCmd     `cmd:"" name:"version" help:"Show version information"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	env       config.Env       `kong:"-"`
	settings  *config.Settings `kong:"-"`
	userID    string           `kong:"-"`
}

// AfterApply loads configuration, initializes logging and wires the container.
// Precedence: CLI flags > env vars > settings file > defaults
func (c *CLI) AfterApply() error {
	if c.Home != "" {
		os.Setenv("POMAR_HOME", c.Home)
	}

	env, err := config.ParseEnv()
	if err != nil {
		return err
	}
	c.env = env

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	c.settings = settings

	// Apply MaxLogFiles setting
	if c.MaxLogFiles == config.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("POMAR_MAX_LOG_FILES"); hasEnv {
			c.MaxLogFiles = env.MaxLogFiles
		} else if settings.MaxLogFiles != nil {
			c.MaxLogFiles = *settings.MaxLogFiles
		}
	}

	// Apply Debug setting
	if !c.Debug {
		if _, hasEnv := os.LookupEnv("POMAR_DEBUG"); hasEnv {
			c.Debug = env.Debug
		} else if settings.Debug != nil {
			c.Debug = *settings.Debug
		}
	}
	if c.DebugFile == "" {
		c.DebugFile = env.DebugFile
	}

	// Initialize logging first so the storage logger has somewhere to write
	if _, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles); err != nil {
		return err
	}

	rules, err := settings.ToRules(domain.DefaultRules())
	if err != nil {
		return fmt.Errorf("invalid settings in %s: %w", config.GetSettingsPath(), err)
	}

	c.userID = c.resolveUser()
	logging.Logger.Debug("Configuration loaded",
		"home", config.GetHome(),
		"user", c.userID,
		"settings", config.GetSettingsPath())

	container, err := NewContainer(ContainerOptions{
		Debug: c.Debug,
		Home:  config.GetHome(),
		Rules: rules,
		Sound: c.soundEnabled(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// UserID returns the user every command acts as
func (c *CLI) UserID() string {
	return c.userID
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}

func (c *CLI) resolveUser() string {
	switch {
	case c.User != "":
		return c.User
	case c.env.User != "":
		return c.env.User
	case c.settings != nil && c.settings.User != "":
		return c.settings.User
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return defaultUser
}

func (c *CLI) soundEnabled() bool {
	if c.NoSound {
		return false
	}
	fallback := true
	if c.settings != nil && c.settings.Sound != nil {
		fallback = *c.settings.Sound
	}
	return c.env.SoundEnabled(fallback)
}
