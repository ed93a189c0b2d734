package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPromptConfigFile = "config/prompts.yml"

// PromptProfileEntry describes a prompt override set loaded at startup.
type PromptProfileEntry struct {
	Name         string
	SystemPrompt string
	Model        string
	Temperature  *float32
}

// PromptBootstrapConfig maintains all configured prompt profile sets.
type PromptBootstrapConfig struct {
	sets map[string]PromptProfileEntry
}

// ProfileForSet returns the profile defined for the requested set.
func (c *PromptBootstrapConfig) ProfileForSet(name string) (PromptProfileEntry, bool) {
	if c == nil {
		return PromptProfileEntry{}, false
	}
	set := strings.TrimSpace(name)
	if set == "" {
		set = "default"
	}
	profile, ok := c.sets[set]
	return profile, ok
}

type promptConfigDocument struct {
	Profiles map[string]struct {
		System      string   `yaml:"system"`
		Model       string   `yaml:"model"`
		Temperature *float32 `yaml:"temperature"`
	} `yaml:"profiles"`
}

// LoadPromptBootstrapConfig parses the yaml file at the provided path.
func LoadPromptBootstrapConfig(path string) (*PromptBootstrapConfig, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("prompt config path is empty")
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read prompt config %q: %w", cleanPath, err)
	}

	var doc promptConfigDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse prompt config %q: %w", cleanPath, err)
	}
	if len(doc.Profiles) == 0 {
		return nil, fmt.Errorf("prompt config %q has no profiles defined", cleanPath)
	}

	result := &PromptBootstrapConfig{sets: make(map[string]PromptProfileEntry)}
	for rawName, entry := range doc.Profiles {
		name := strings.TrimSpace(rawName)
		if name == "" {
			continue
		}
		if strings.TrimSpace(entry.System) == "" {
			return nil, fmt.Errorf("profiles.%s: system prompt is required", name)
		}
		result.sets[name] = PromptProfileEntry{
			Name:         name,
			SystemPrompt: entry.System,
			Model:        strings.TrimSpace(entry.Model),
			Temperature:  entry.Temperature,
		}
	}
	if len(result.sets) == 0 {
		return nil, fmt.Errorf("prompt config %q has no usable profiles", cleanPath)
	}
	return result, nil
}
