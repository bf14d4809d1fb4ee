package assistant

import (
	"encoding/json"
	"fmt"

	"github.com/tmc/langchaingo/prompts"

	"github.com/utafrali/LocalBizGo/internal/domain"
)

const promptText = `You are a helpful assistant for a business review platform.
You have access to information about local businesses, their reviews, and ratings.

Here is the business data you can reference:
{{.businesses}}

IMPORTANT FORMATTING RULES:
When recommending businesses, you MUST use this exact XML format for each business:

<business>
<data>
<id>business-id-here</id>
<name>Business Name</name>
<location>Full address</location>
<category>Category Name</category>
<rating>4.5</rating>
<reviewCount>10</reviewCount>
</data>
</business>

Example response format:
"Here are some great options for you:

<business>
<data>
<id>biz-001</id>
<name>The Golden Fork</name>
<location>456 Oak Avenue, Downtown District, New York, NY 10001</location>
<category>Restaurants</category>
<rating>4.8</rating>
<reviewCount>5</reviewCount>
</data>
</business>

This restaurant has excellent reviews! One customer said: 'Amazing food and great service!'

<business>
<data>
<id>biz-002</id>
<name>Mama's Italian Kitchen</name>
<location>789 Elm Street, Little Italy, New York, NY 10013</location>
<category>Restaurants</category>
<rating>4.7</rating>
<reviewCount>3</reviewCount>
</data>
</business>

Known for authentic Italian cuisine with generous portions."

RULES:
- Always use the XML format for business recommendations
- Include conversational text between business blocks
- Share relevant review quotes to support recommendations
- If they ask about "best" or "highest rated", prioritize businesses with ratings 4.5+
- Be friendly and helpful
- If asked about a specific business (businessId provided), give detailed information about that business only

User question: {{.question}}`

var promptTemplate = prompts.NewPromptTemplate(promptText, []string{"businesses", "question"})

// BuildPrompt renders the assistant prompt. The business context is embedded
// as JSON indented with two spaces.
func BuildPrompt(businesses []domain.ChatContextBusiness, question string) (string, error) {
	if businesses == nil {
		businesses = []domain.ChatContextBusiness{}
	}
	data, err := json.MarshalIndent(businesses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode chat context: %w", err)
	}

	prompt, err := promptTemplate.Format(map[string]any{
		"businesses": string(data),
		"question":   question,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return prompt, nil
}
