package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSubsectionsFenceAware(t *testing.T) {
	body := fixture(`intro text

### First
body one
@@@
### fenced, not a heading
@@@

### Second
body two
`)
	preamble, subs := splitSubsections(body)

	assert.Equal(t, "intro text", preamble)
	require.Len(t, subs, 2)
	assert.Equal(t, "First", subs[0].Heading)
	assert.Contains(t, subs[0].Body, "### fenced, not a heading")
	assert.Equal(t, "Second", subs[1].Heading)
	assert.Equal(t, "body two", subs[1].Body)
}

func TestSplitSubsectionsRuleTerminates(t *testing.T) {
	body := `### Block
kept line

---

trailing text outside any block
`
	_, subs := splitSubsections(body)
	require.Len(t, subs, 1)
	assert.Equal(t, "kept line", subs[0].Body)
}

func TestSplitTableRowProtectsCodeSpans(t *testing.T) {
	cells := splitTableRow("| `api|endpoint|rest` | Engineering | API work |")
	require.Len(t, cells, 3)
	assert.Equal(t, "api|endpoint|rest", cleanCell(cells[0]))
	assert.Equal(t, "Engineering", cleanCell(cells[1]))

	cells = splitTableRow(`| a\|b | c |`)
	require.Len(t, cells, 2)
	assert.Equal(t, "a|b", cleanCell(cells[0]))
}

func TestSplitLabeledFieldsKeepsFencesVerbatim(t *testing.T) {
	body := fixture(`**Solution:**
Use this:
@@@yaml
key: value
@@@
**Symptoms:**
- one
`)
	fields := splitLabeledFields(body)
	require.Len(t, fields, 2)

	solution, ok := findField(fields, "solution")
	require.True(t, ok)
	assert.Contains(t, solution, fixture("@@@yaml\nkey: value\n@@@"))

	symptoms, ok := findField(fields, "Symptoms")
	require.True(t, ok)
	assert.Equal(t, []string{"one"}, parseBullets(symptoms))
}

func TestParseBullets(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, parseBullets("- a\n* b\nnot a bullet"))
	assert.Empty(t, parseBullets("plain text"))
}

func TestIsRuleLine(t *testing.T) {
	assert.True(t, isRuleLine("---"))
	assert.True(t, isRuleLine("  ----- "))
	assert.False(t, isRuleLine("--"))
	assert.False(t, isRuleLine("--- text"))
}
