package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResponse = `**Title:** The Complete Guide to Demolition Safety
**Meta Description:** Everything you need to know about safe demolition.
**Introduction:** Demolition work carries serious risk.

Planning is everything.
**Main Content:** ## Methods

Top-down, implosion, high-reach.
**Conclusion:** Stay safe out there.
**Keywords:** demolition, safety, equipment`

func TestExtract_AllFields(t *testing.T) {
	post := Extract(fullResponse)

	assert.Equal(t, "The Complete Guide to Demolition Safety", post.Title)
	assert.Equal(t, "Everything you need to know about safe demolition.", post.MetaDescription)
	assert.Equal(t, "Demolition work carries serious risk.\n\nPlanning is everything.", post.Introduction)
	assert.Equal(t, "## Methods\n\nTop-down, implosion, high-reach.", post.MainContent)
	assert.Equal(t, "Stay safe out there.", post.Conclusion)
	assert.Equal(t, []string{"demolition", "safety", "equipment"}, post.Keywords)
}

func TestExtract_NoMarkersFallsBackToRaw(t *testing.T) {
	raw := "Just a plain paragraph with no markers whatsoever."
	post := Extract(raw)

	assert.Empty(t, post.Title)
	assert.Empty(t, post.MetaDescription)
	assert.Empty(t, post.Introduction)
	assert.Empty(t, post.Conclusion)
	assert.Equal(t, raw, post.MainContent, "raw text must survive as main content")
	assert.Empty(t, post.Keywords)
	assert.NotNil(t, post.Keywords)
}

func TestExtract_PartialMarkers(t *testing.T) {
	raw := "**Title:** Only a Title\nAnd then some loose text."
	post := Extract(raw)

	assert.Equal(t, "Only a Title", post.Title)
	assert.Empty(t, post.Introduction)
	assert.Equal(t, raw, post.MainContent)
}

func TestExtract_TitleStopsAtLineEnd(t *testing.T) {
	post := Extract("**Title:** First Line\nSecond line is not the title")
	assert.Equal(t, "First Line", post.Title)
}

func TestExtract_BlockRunsToEndOfText(t *testing.T) {
	post := Extract("**Conclusion:** Final thoughts without a trailing marker")
	assert.Equal(t, "Final thoughts without a trailing marker", post.Conclusion)
}

func TestExtract_KeywordsTrimmedAndFiltered(t *testing.T) {
	post := Extract("**Keywords:**  one ,two,  , three ")
	assert.Equal(t, []string{"one", "two", "three"}, post.Keywords)
}

func TestExtract_EmptyInput(t *testing.T) {
	post := Extract("")
	require.NotNil(t, post)
	assert.Empty(t, post.Title)
	assert.Empty(t, post.MainContent)
	assert.NotNil(t, post.Keywords)
}

func TestExtract_Deterministic(t *testing.T) {
	a := Extract(fullResponse)
	b := Extract(fullResponse)
	assert.Equal(t, a.Title, b.Title)
	assert.Equal(t, a.MainContent, b.MainContent)
	assert.Equal(t, a.Keywords, b.Keywords)
}
