package server

import (
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/flipforbots/internal/bot"
	"github.com/lox/flipforbots/internal/game"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server ServerSettings `hcl:"server,block"`
	Games  []GameConfig   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	LogFile  string `hcl:"log_file,optional"`
}

// GameConfig defines a game setup a client can join. The connecting player
// always takes the first seat; the listed bots fill the rest.
type GameConfig struct {
	Name            string   `hcl:"name,label"`
	Bots            []string `hcl:"bots,optional"`
	TargetScore     int      `hcl:"target_score,optional"`
	DecisionTimeout int      `hcl:"decision_timeout,optional"` // seconds
	Seed            int64    `hcl:"seed,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
			LogFile:  "flipforbots-server.log",
		},
		Games: []GameConfig{
			{
				Name:            "main",
				Bots:            []string{"conservative", "smart"},
				TargetScore:     game.DefaultTargetScore,
				DecisionTimeout: 30,
			},
		},
	}
}

// LoadServerConfig loads server configuration from HCL file
func LoadServerConfig(filename string) (*ServerConfig, error) {
	// Missing file means defaults
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.LogFile == "" {
		config.Server.LogFile = "flipforbots-server.log"
	}

	if len(config.Games) == 0 {
		config.Games = DefaultServerConfig().Games
	}
	for i := range config.Games {
		if len(config.Games[i].Bots) == 0 {
			config.Games[i].Bots = []string{"conservative", "smart"}
		}
		if config.Games[i].TargetScore == 0 {
			config.Games[i].TargetScore = game.DefaultTargetScore
		}
		if config.Games[i].DecisionTimeout == 0 {
			config.Games[i].DecisionTimeout = 30
		}
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if len(c.Games) == 0 {
		return fmt.Errorf("at least one game must be configured")
	}

	for _, g := range c.Games {
		if len(g.Bots) == 0 {
			return fmt.Errorf("game %s: at least one bot is required", g.Name)
		}
		for _, kind := range g.Bots {
			if !slices.Contains(bot.Kinds, kind) {
				return fmt.Errorf("game %s: invalid bot kind %q", g.Name, kind)
			}
		}
		if g.TargetScore <= 0 {
			return fmt.Errorf("game %s: target score must be positive", g.Name)
		}
		if g.DecisionTimeout <= 0 {
			return fmt.Errorf("game %s: decision timeout must be positive", g.Name)
		}
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// GetGameByName returns a game configuration by name
func (c *ServerConfig) GetGameByName(name string) *GameConfig {
	for i := range c.Games {
		if c.Games[i].Name == name {
			return &c.Games[i]
		}
	}
	return nil
}
