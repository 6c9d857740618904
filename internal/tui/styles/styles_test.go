package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestApplySwitchesPalette(t *testing.T) {
	defer Apply(domain.ThemeDark)

	Apply(domain.ThemeLight)
	assert.Equal(t, domain.ThemeLight, Current())
	assert.Equal(t, LightPalette.Accent, Accent)

	Apply(domain.ThemeDark)
	assert.Equal(t, DarkPalette.Text, Text)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Dune", Truncate("Dune", 10))
	assert.Equal(t, "The Go...", Truncate("The Go Programming Language", 9))
	assert.Equal(t, "Jos", Truncate("José Saramago", 3))
	assert.Equal(t, "", Truncate("anything", 0))
}

func TestRenderListRowFillsWidth(t *testing.T) {
	row := RenderListRow([]RowPart{{Text: "Ada"}, {Text: " ada@example.com"}}, true, 40)
	assert.Equal(t, 40, lipgloss.Width(row))
}
