// Package store loads and saves the category keyword table as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/leak-detector/internal/fileutils"
	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"

	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is the file name looked up when none is configured.
const DefaultCategoriesFile = "categories.yaml"

// CategoryStore reads the ordered category table from a YAML file.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for the given file. An empty name means
// DefaultCategoriesFile in the standard locations.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// FindConfigFile looks for filename as given, under ./config and under
// ~/.config/leak-detector.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "leak-detector", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories reads the category table. found is false when no file
// exists, in which case the caller should fall back to the built-in table.
//
// Two layouts are accepted: a mapping with default_category and categories
// keys, or a bare list of categories.
func (s *CategoryStore) LoadCategories() (cfg models.CategoriesConfig, found bool, err error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = DefaultCategoriesFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Categories file not found, using built-in table",
				logging.F(logging.FieldFile, filename))
			return models.CategoriesConfig{}, false, nil
		}
		return models.CategoriesConfig{}, false, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from user configuration
	if err != nil {
		return models.CategoriesConfig{}, false, fmt.Errorf("error reading categories file: %w", err)
	}

	cfg, err = decodeCategories(data)
	if err != nil {
		return models.CategoriesConfig{}, false, fmt.Errorf("error parsing categories file %s: %w", path, err)
	}
	if err := validateCategories(cfg); err != nil {
		return models.CategoriesConfig{}, false, fmt.Errorf("invalid categories file %s: %w", path, err)
	}

	s.logger.Info("Loaded categories",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(cfg.Categories)))
	return cfg, true, nil
}

// SaveCategories writes cfg to the configured file, creating its directory.
func (s *CategoryStore) SaveCategories(cfg models.CategoriesConfig) error {
	filename := s.CategoriesFile
	if filename == "" {
		filename = DefaultCategoriesFile
	}
	if err := validateCategories(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := fileutils.WriteFile(filename, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing categories file: %w", err)
	}

	s.logger.Info("Saved categories",
		logging.F(logging.FieldFile, filename),
		logging.F(logging.FieldCount, len(cfg.Categories)))
	return nil
}

func decodeCategories(data []byte) (models.CategoriesConfig, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return models.CategoriesConfig{}, err
	}
	if len(node.Content) == 0 {
		return models.CategoriesConfig{}, nil
	}

	var cfg models.CategoriesConfig
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		if err := node.Content[0].Decode(&cfg.Categories); err != nil {
			return models.CategoriesConfig{}, err
		}
	default:
		if err := node.Content[0].Decode(&cfg); err != nil {
			return models.CategoriesConfig{}, err
		}
	}
	return cfg, nil
}

func validateCategories(cfg models.CategoriesConfig) error {
	seen := make(map[string]bool, len(cfg.Categories))
	for i, c := range cfg.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("category %q is declared twice", name)
		}
		seen[name] = true
	}
	return nil
}
