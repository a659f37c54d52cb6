// Package config holds the crop profiles and the user config file that can
// extend or override them.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joyanlabs/logocrop/pkg/logo"
)

// Profile names one crop configuration. The built-in profiles mirror the
// three passes the original asset pipeline ran.
type Profile struct {
	Rule         string  `json:"rule"`
	BorderMargin float64 `json:"border_margin"`
	Padding      float64 `json:"padding"`
	Square       bool    `json:"square"`
}

// Options converts the profile into extractor options.
func (p Profile) Options() (logo.Options, error) {
	rule, err := logo.ParseRule(p.Rule)
	if err != nil {
		return logo.Options{}, err
	}
	if p.BorderMargin < 0 || p.Padding < 0 {
		return logo.Options{}, fmt.Errorf("profile fractions must be non-negative")
	}
	return logo.Options{
		Rule:         rule,
		BorderMargin: p.BorderMargin,
		Padding:      p.Padding,
		Square:       p.Square,
	}, nil
}

// Config holds the profile registry and the default profile name.
type Config struct {
	DefaultProfile string             `json:"default_profile"`
	Profiles       map[string]Profile `json:"profiles"`
}

var (
	instance *Config
	once     sync.Once
)

// GetConfig returns the singleton instance of Config. The built-in profiles
// are always present; a user config file may add profiles, override built-ins
// by name, or change the default.
func GetConfig() *Config {
	once.Do(func() {
		instance = &Config{}
		instance.setDefaultValues()
		if err := instance.loadFromFile(GetFilename()); err != nil && !os.IsNotExist(err) {
			fmt.Println("Error loading config:", err)
		}
	})
	return instance
}

// GetFilename returns the path to the user's config file
func GetFilename() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting user home directory: %v", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName), "config.json")
}

// GetPath returns the path to the user's config directory
func GetPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Error getting user home directory: %v", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName))
}

// Profile looks up a profile by name.
func (c *Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
	return p, nil
}

// loadFromFile merges configuration from the specified file over the
// built-in values.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded.DefaultProfile != "" {
		c.DefaultProfile = loaded.DefaultProfile
	}
	for name, p := range loaded.Profiles {
		c.Profiles[name] = p
	}
	return nil
}

// setDefaultValues installs the built-in profiles. "padded" matches the
// production asset pass: 8% padding on a square canvas with no border margin.
func (c *Config) setDefaultValues() {
	c.DefaultProfile = "padded"
	c.Profiles = map[string]Profile{
		"padded": {
			Rule:    "near-white",
			Padding: 0.08,
			Square:  true,
		},
		"tight": {
			Rule:         "near-white-or-black",
			BorderMargin: 0.05,
			Padding:      0.05,
		},
		"bordered": {
			Rule:         "near-white-or-black",
			BorderMargin: 0.05,
			Padding:      0.10,
			Square:       true,
		},
		"analyze": {
			Rule: "alpha-aware",
		},
	}
}

// Save saves the current configuration to the user's config file
func (c *Config) Save() {
	cfgFile := GetFilename()
	err := os.MkdirAll(filepath.Dir(cfgFile), 0700) // Ensure the directory exists
	if err != nil {
		log.Fatalf("Error creating config directory: %v", err)
	}

	if err := c.saveToFile(cfgFile); err != nil {
		log.Fatalf("Error writing config file: %v", err)
	}
}

// saveToFile writes the configuration to the specified file.
func (c *Config) saveToFile(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ") // Use indentation for readability
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644) // Use appropriate file permissions
}
