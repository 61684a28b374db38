package models

// CategoryConfig is one entry of the ordered category keyword table.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the structure of the categories YAML file.
type CategoriesConfig struct {
	DefaultCategory string           `yaml:"default_category"`
	Categories      []CategoryConfig `yaml:"categories"`
}
