package models

// Tool pairs a model identifier with the presentation metadata the frontend
// needs to render a tool page. Pure lookup data, no behavior.
type Tool struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Model           string   `json:"model"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Icon            string   `json:"icon"`
	LongDescription string   `json:"longDescription"`
	UseCases        []string `json:"useCases"`
	ExamplePrompts  []string `json:"examplePrompts"`
}

var tools = []Tool{
	{
		ID:          "eugene-schwartz-pro",
		Name:        "Eugene Schwartz Pro",
		Model:       ModelEugeneSchwartz,
		Description: "Master copywriter persona for breakthrough advertising and sales copy",
		Category:    "Sales Copy",
		Icon:        "✍️",
		LongDescription: "Channel the legendary Eugene Schwartz, author of \"Breakthrough Advertising\". " +
			"This tool specializes in creating compelling sales copy that taps into mass desire and " +
			"creates breakthrough advertising campaigns.",
		UseCases: []string{
			"Long-form sales letters",
			"Email sequences",
			"Ad copy that breaks through market sophistication",
			"Product launch campaigns",
			"Direct response marketing",
		},
		ExamplePrompts: []string{
			"Write a sales letter for a weight loss supplement targeting women over 40",
			"Create an email sequence for launching a new online course",
			"Generate breakthrough ad copy for a revolutionary tech product",
		},
	},
	{
		ID:          "vsl-script",
		Name:        "5-Minute VSL Script",
		Model:       ModelVSLScript,
		Description: "Create compelling 5-minute Video Sales Letter scripts optimized for conversions",
		Category:    "Video Scripts",
		Icon:        "🎬",
		LongDescription: "Generate professional Video Sales Letter scripts designed to captivate viewers " +
			"and drive conversions in exactly 5 minutes. Perfect for webinars, product launches, and " +
			"sales videos.",
		UseCases: []string{
			"5-minute explainer videos",
			"Product demo scripts",
			"Webinar opening scripts",
			"Sales funnel videos",
			"YouTube ad scripts",
		},
		ExamplePrompts: []string{
			"Create a VSL script for a productivity app targeting entrepreneurs",
			"Write a webinar script introducing a new coaching program",
			"Generate a video sales script for a high-ticket consulting service",
		},
	},
}

// Tools returns the full preset registry in display order.
func Tools() []Tool {
	return tools
}

// ToolByID looks up a preset by its page identifier.
func ToolByID(id string) (Tool, bool) {
	for _, t := range tools {
		if t.ID == id {
			return t, true
		}
	}
	return Tool{}, false
}
