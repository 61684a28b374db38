package store

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/leak-detector/internal/logging"
	"fjacquet/leak-detector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "test content")

	s := NewCategoryStore("", nil)

	file, err := s.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = s.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestFindConfigFile_ConfigSubdirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll("config", 0750))
	writeFile(t, filepath.Join("config", "cats.yaml"), "[]")

	file, err := NewCategoryStore("", nil).FindConfigFile("cats.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "cats.yaml"), file)
}

func TestLoadCategories(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantDefault string
		wantNames   []string
		wantErr     bool
	}{
		{
			name: "mapping layout",
			content: `default_category: Misc
categories:
  - name: Utilities
    keywords: ["electricity", "water"]
  - name: Telecom
    keywords: ["airtel", "jio"]
`,
			wantDefault: "Misc",
			wantNames:   []string{"Utilities", "Telecom"},
		},
		{
			name: "list layout",
			content: `- name: Food
  keywords: ["swiggy"]
- name: Travel
  keywords: ["uber"]
`,
			wantNames: []string{"Food", "Travel"},
		},
		{
			name:    "invalid yaml",
			content: "categories: [unclosed",
			wantErr: true,
		},
		{
			name: "duplicate category",
			content: `- name: Food
- name: Food
`,
			wantErr: true,
		},
		{
			name: "unnamed category",
			content: `- keywords: ["x"]
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "categories.yaml")
			writeFile(t, file, tt.content)

			cfg, found, err := NewCategoryStore(file, logging.NewMockLogger()).LoadCategories()
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, found)
				return
			}
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, tt.wantDefault, cfg.DefaultCategory)

			names := make([]string, 0, len(cfg.Categories))
			for _, c := range cfg.Categories {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestLoadCategories_MissingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "missing.yaml")
	cfg, found, err := NewCategoryStore(file, nil).LoadCategories()
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, cfg.Categories)
}

func TestSaveCategories_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "categories.yaml")
	s := NewCategoryStore(file, nil)

	cfg := models.CategoriesConfig{
		DefaultCategory: models.CategoryOther,
		Categories: []models.CategoryConfig{
			{Name: models.CategoryFood, Keywords: []string{"zomato"}},
			{Name: models.CategoryEntertainment, Keywords: []string{"netflix"}},
		},
	}
	require.NoError(t, s.SaveCategories(cfg))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionConfigFile, info.Mode().Perm())

	loaded, found, err := s.LoadCategories()
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cfg, loaded)
}

func TestSaveCategories_RejectsInvalid(t *testing.T) {
	s := NewCategoryStore(filepath.Join(t.TempDir(), "c.yaml"), nil)
	err := s.SaveCategories(models.CategoriesConfig{
		Categories: []models.CategoryConfig{{Name: " "}},
	})
	assert.Error(t, err)
}
