package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to polgraph! Let's configure the viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Theme.
	themePrompt := promptui.Select{
		Label: "Select theme",
		Items: []string{"dark", "light"},
	}
	_, theme, err := themePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("theme selection: %w", err)
	}
	cfg.Theme = theme

	// 2. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Dataset file.
	datasetPrompt := promptui.Prompt{
		Label:    "Dataset YAML file (leave blank for the bundled dataset)",
		Default:  "",
		Validate: validateDatasetPath,
	}
	cfg.Dataset, err = datasetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dataset path: %w", err)
	}

	// 4. Database.
	dbPrompt := promptui.Prompt{
		Label:   "SQLite database for imported datasets",
		Default: cfg.Database,
	}
	cfg.Database, err = dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}

func validateDatasetPath(s string) error {
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot read %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}
