package tenants

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

const (
	eventsFile   = "events.json"
	settingsFile = "settings.json"
)

// load reads and validates one tenant's configuration from
// <dir>/<containerID>/{events.json,settings.json}. The container id must
// already be sanitized by the caller.
func load(dir, containerID string, validate *validator.Validate) (*TenantConfig, error) {
	tenantDir := filepath.Join(dir, containerID)

	info, err := os.Stat(tenantDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, containerID)
	}

	events, err := loadEvents(filepath.Join(tenantDir, eventsFile), validate)
	if err != nil {
		return nil, err
	}

	settings, err := loadSettings(filepath.Join(tenantDir, settingsFile), validate)
	if err != nil {
		return nil, err
	}

	return &TenantConfig{
		ContainerID:    containerID,
		Events:         events,
		AllowedOrigins: settings.AllowedDomains,
	}, nil
}

func loadEvents(path string, validate *validator.Validate) ([]EventDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s missing", ErrNotFound, eventsFile)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalid, eventsFile, err)
	}

	var events []EventDefinition
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalid, eventsFile, err)
	}

	seen := make(map[string]struct{}, len(events))
	for i, event := range events {
		if err := validate.Struct(event); err != nil {
			return nil, fmt.Errorf("%w: event %d: %w", ErrInvalid, i, err)
		}
		if _, ok := seen[event.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate event name %q", ErrInvalid, event.Name)
		}
		seen[event.Name] = struct{}{}
	}

	return events, nil
}

func loadSettings(path string, validate *validator.Validate) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s missing", ErrInvalid, settingsFile)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrInvalid, settingsFile, err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalid, settingsFile, err)
	}

	if err := validate.Struct(settings); err != nil {
		return nil, fmt.Errorf("%w: settings: %w", ErrInvalid, err)
	}

	return &settings, nil
}
