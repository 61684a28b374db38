// Package categorizer maps statement lines and merchant labels to a fixed set
// of spending categories by keyword membership.
package categorizer

import (
	"strings"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"
)

// Categorizer assigns categories from an ordered keyword table. It is
// immutable after construction and safe for concurrent use.
type Categorizer struct {
	categories      []models.CategoryConfig // keywords lower-cased
	defaultCategory string
	logger          logging.Logger
}

// NewCategorizer builds a Categorizer from an ordered table. Texts matching
// no keyword get defaultCategory, or models.CategoryOther when it is empty.
// The table is copied; later changes to it have no effect.
func NewCategorizer(categories []models.CategoryConfig, defaultCategory string, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	if defaultCategory == "" {
		defaultCategory = models.CategoryOther
	}

	table := make([]models.CategoryConfig, 0, len(categories))
	for _, c := range categories {
		keywords := make([]string, 0, len(c.Keywords))
		for _, k := range c.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		table = append(table, models.CategoryConfig{Name: c.Name, Keywords: keywords})
	}

	return &Categorizer{
		categories:      table,
		defaultCategory: defaultCategory,
		logger:          logger,
	}
}

// NewDefault returns a Categorizer over DefaultCategories.
func NewDefault(logger logging.Logger) *Categorizer {
	return NewCategorizer(DefaultCategories(), models.CategoryOther, logger)
}

// Categorize returns the first category, in table order, with a keyword that
// is a case-insensitive substring of text.
func (c *Categorizer) Categorize(text string) string {
	lower := strings.ToLower(text)
	for _, category := range c.categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(lower, keyword) {
				c.logger.Debug("Categorized by keyword",
					logging.F("keyword", keyword),
					logging.F(logging.FieldCategory, category.Name))
				return category.Name
			}
		}
	}
	return c.defaultCategory
}

// Categories returns the category names in precedence order, followed by the
// default category if it is not already part of the table.
func (c *Categorizer) Categories() []string {
	names := make([]string, 0, len(c.categories)+1)
	seenDefault := false
	for _, category := range c.categories {
		names = append(names, category.Name)
		if category.Name == c.defaultCategory {
			seenDefault = true
		}
	}
	if !seenDefault {
		names = append(names, c.defaultCategory)
	}
	return names
}

// Table returns a copy of the keyword table and the default category.
func (c *Categorizer) Table() models.CategoriesConfig {
	table := make([]models.CategoryConfig, len(c.categories))
	for i, category := range c.categories {
		table[i] = models.CategoryConfig{
			Name:     category.Name,
			Keywords: append([]string(nil), category.Keywords...),
		}
	}
	return models.CategoriesConfig{
		DefaultCategory: c.defaultCategory,
		Categories:      table,
	}
}
