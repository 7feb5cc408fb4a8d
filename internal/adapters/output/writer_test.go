package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-gallery/internal/domain/entity"
	"portfolio-gallery/internal/ports"
)

func sampleView() entity.GalleryView {
	return entity.GalleryView{
		Entries: []entity.ClassifiedEntry{
			{
				ProjectEntry: entity.ProjectEntry{
					Title: "gallery", Link: "https://github.com/octo/gallery", Role: entity.RoleOwner,
					Year: 2024, StarCount: 250, Tags: []string{"Go", "a|b"}, Origin: entity.OriginRemote,
				},
				Difficulty: entity.DifficultyHard,
			},
			{
				ProjectEntry: entity.ProjectEntry{
					Title: "Quiz Platform", Link: "#", Role: entity.RoleOwner, Year: 2023, Origin: entity.OriginLocal,
				},
				Difficulty: entity.DifficultyEasy,
			},
		},
		Years: []int{2024, 2023},
	}
}

func TestWriter_Markdown(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterWithConfig(&entity.Config{Output: entity.OutputConfig{Title: "My Work"}})

	require.NoError(t, w.Write(&buf, sampleView(), ports.OutputFormatMarkdown))
	out := buf.String()

	assert.Contains(t, out, "# My Work\n")
	assert.Contains(t, out, "Years: 2024, 2023\n")
	assert.Contains(t, out, "| [gallery](https://github.com/octo/gallery) | Owner | 2024 | 250 | Hard | Go, a\\|b |")
	assert.Contains(t, out, "| Quiz Platform | Owner | 2023 | 0 | Easy |  |")
	assert.NotContains(t, out, "still loading")
}

func TestWriter_MarkdownStates(t *testing.T) {
	tests := []struct {
		name string
		view entity.GalleryView
		want string
	}{
		{"loading with nothing yet", entity.GalleryView{Loading: true}, "_Loading projects..._"},
		{"no matches", entity.GalleryView{Years: []int{2024}}, "_No projects match your filters._"},
		{"partial while loading", func() entity.GalleryView {
			v := sampleView()
			v.Loading = true
			return v
		}(), "_GitHub projects still loading._"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewWriter().Write(&buf, tt.view, ""))

			assert.Contains(t, buf.String(), "# Projects\n")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, entity.GalleryView{}, ports.OutputFormatJSON))

	assert.JSONEq(t, `{"items":[],"years":[],"loading":false}`, buf.String())

	buf.Reset()
	require.NoError(t, NewWriter().Write(&buf, sampleView(), ports.OutputFormatJSON))

	var got entity.GalleryView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleView(), got)
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	err := NewWriter().Write(&bytes.Buffer{}, entity.GalleryView{}, "html")
	assert.Error(t, err)
}

func TestWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.md")

	require.NoError(t, NewWriter().WriteFile(sampleView(), ports.OutputFormatMarkdown, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[gallery]")
}
