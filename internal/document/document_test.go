package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkeletonRender(t *testing.T) {
	doc := Skeleton("VOC Radar Report", "2026-08-29", []string{
		"## Today's Issue TOP10",
		"## Rising TOP3 (vs yesterday)",
		"## Issue → Action Cards",
	})

	want := "# VOC Radar Report\n" +
		"- Date: 2026-08-29\n" +
		"\n" +
		"## Today's Issue TOP10\n" +
		"\n" +
		"## Rising TOP3 (vs yesterday)\n" +
		"\n" +
		"## Issue → Action Cards\n"
	assert.Equal(t, want, doc.Render())
}

func TestParseRoundTrip(t *testing.T) {
	raw := "# Title\n- Date: 2026-08-29\n\n## A\n\nbody a\n\n## B\n\nline1\n\nline2\n"
	doc := Parse(raw)

	assert.Equal(t, "# Title\n- Date: 2026-08-29", doc.Preamble)
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "## A", doc.Sections[0].Header)
	assert.Equal(t, "body a", doc.Sections[0].Body)
	// Interior blank lines survive normalization.
	assert.Equal(t, "line1\n\nline2", doc.Sections[1].Body)

	assert.Equal(t, raw, doc.Render())
}

func TestParseNormalizesTrailingWhitespace(t *testing.T) {
	doc := Parse("## A  \n\nbody  \t\n\n\n")
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "## A", doc.Sections[0].Header)
	assert.Equal(t, "body", doc.Sections[0].Body)
	assert.Equal(t, "## A\n\nbody\n", doc.Render())
}

func TestUpsertReplacesExistingSection(t *testing.T) {
	doc := Skeleton("R", "2026-08-29", []string{"## A", "## B", "## C"})
	doc.Upsert("## B", "new middle body")

	require.Len(t, doc.Sections, 3)
	body, ok := doc.Section("## B")
	require.True(t, ok)
	assert.Equal(t, "new middle body", body)

	want := "# R\n- Date: 2026-08-29\n\n## A\n\n## B\n\nnew middle body\n\n## C\n"
	assert.Equal(t, want, doc.Render())
}

func TestUpsertAppendsUnknownSection(t *testing.T) {
	doc := Skeleton("R", "2026-08-29", []string{"## A"})
	doc.Upsert("## Z", "tail")

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "## Z", doc.Sections[1].Header)
	assert.Equal(t, "tail", doc.Sections[1].Body)
}

func TestUpsertIdempotent(t *testing.T) {
	doc := Skeleton("R", "2026-08-29", []string{"## A", "## B"})
	doc.Upsert("## A", "| x |\n| 1 |")
	first := doc.Render()

	reparsed := Parse(first)
	reparsed.Upsert("## A", "| x |\n| 1 |")
	assert.Equal(t, first, reparsed.Render())
}

func TestUpsertTrimsBodyPadding(t *testing.T) {
	doc := &Document{}
	doc.Upsert("## A", "\n\nbody\n\n")
	assert.Equal(t, "body", doc.Sections[0].Body)
}

func TestSectionMissing(t *testing.T) {
	doc := Skeleton("R", "d", []string{"## A"})
	_, ok := doc.Section("## Nope")
	assert.False(t, ok)
}

func TestRenderEmptyDocument(t *testing.T) {
	assert.Empty(t, (&Document{}).Render())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "2026-08-29.md")

	doc := Skeleton("R", "2026-08-29", []string{"## A"})
	doc.Upsert("## A", "hello")
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Render(), loaded.Render())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
