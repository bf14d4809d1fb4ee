package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/LocalBizGo/internal/domain"
)

func TestBuildPrompt(t *testing.T) {
	businesses := []domain.ChatContextBusiness{{
		ID:            "b-1",
		Name:          "Bean There",
		Location:      "Main St 1",
		CategoryID:    "c-1",
		CategoryName:  "Cafes",
		AverageRating: "4.5",
		ReviewCount:   2,
		Reviews: []domain.ChatContextReview{
			{Rating: 5, Comment: "Great <espresso> & cake"},
			{Rating: 4, Comment: ""},
		},
	}}

	prompt, err := BuildPrompt(businesses, "Where can I get coffee?")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "You are a helpful assistant for a business review platform."))
	assert.True(t, strings.HasSuffix(prompt, "User question: Where can I get coffee?"))
	assert.Contains(t, prompt, "\n[\n  {\n    \"id\": \"b-1\",")
	assert.Contains(t, prompt, `"averageRating": "4.5"`)
	assert.Contains(t, prompt, `"reviewCount": 2`)
	assert.Contains(t, prompt, "<reviewCount>10</reviewCount>")
	assert.Contains(t, prompt, "prioritize businesses with ratings 4.5+")
	assert.Contains(t, prompt, "Great \\u003cespresso\\u003e \\u0026 cake")
}

func TestBuildPrompt_NoBusinesses(t *testing.T) {
	prompt, err := BuildPrompt(nil, "anything good?")
	require.NoError(t, err)
	assert.Contains(t, prompt, "reference:\n[]\n")
}
