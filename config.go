package main

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"inkling/llm"
)

// rcFile is the optional per-user config file, simple key=value lines.
const rcFile = ".inklingrc"

// loadRC reads provider defaults from ~/.inklingrc. Missing file or
// unreadable lines are ignored; flags and environment still win.
func loadRC() llm.Config {
	var cfg llm.Config

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return cfg
	}
	file, err := os.Open(filepath.Join(homeDir, rcFile))
	if err != nil {
		return cfg
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		switch key {
		case "provider":
			cfg.Provider = value
		case "model":
			cfg.Model = value
		case "key", "apikey", "api_key":
			cfg.APIKey = value
		case "baseurl", "base_url":
			cfg.BaseURL = value
		}
	}
	return cfg
}

// resolveConfig layers flag values over environment variables over the
// rc file. The result is handed to the transport explicitly; nothing
// reads ambient state afterwards.
func resolveConfig(provider, model, key, baseURL string) llm.Config {
	cfg := loadRC()

	if env := os.Getenv("INKLING_PROVIDER"); env != "" {
		cfg.Provider = env
	}
	if env := os.Getenv("INKLING_MODEL"); env != "" {
		cfg.Model = env
	}
	if env := os.Getenv("INKLING_API_KEY"); env != "" {
		cfg.APIKey = env
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	if provider != "" {
		cfg.Provider = provider
	}
	if model != "" {
		cfg.Model = model
	}
	if key != "" {
		cfg.APIKey = key
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return cfg
}
