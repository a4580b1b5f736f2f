package agent

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/hfcharts"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Summaries are the markdown summaries of the funds, by ticker.
type Summaries map[string]string

const summariesFunc = "fund_summary"

func (s Summaries) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        summariesFunc,
		Description: `Returns the latest allocation summary of a fund: long, short and net market values and its largest positions.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"ticker": {
					Type:        genai.TypeString,
					Description: "The fund ticker, one of " + strings.Join(s.tickers(), ", ") + ".",
				},
			},
			Required: []string{"ticker"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown summary of the fund.",
		},
	}
}

func (s Summaries) Call(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
	ticker, ok := args["ticker"].(string)
	if !ok {
		return failure(id, summariesFunc, fmt.Errorf("argument 'ticker' is not a string as expected but %T", args["ticker"]))
	}
	md, ok := s[strings.ToLower(ticker)]
	if !ok {
		return failure(id, summariesFunc, fmt.Errorf("unknown fund %q, known funds are %s", ticker, strings.Join(s.tickers(), ", ")))
	}
	return &genai.FunctionResponse{
		ID:       id,
		Name:     summariesFunc,
		Response: map[string]any{"output": md},
	}
}

func (s Summaries) tickers() []string {
	t := make([]string, 0, len(s))
	for k := range s {
		t = append(t, k)
	}
	slices.Sort(t)
	return t
}

// NewAnalyst returns the expert commenting the funds' allocations. It can look up any of the
// summaries.
func NewAnalyst(summaries Summaries) *Expert {
	lib := []Function{summaries}
	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a hedge fund analyst writing for the readers of a static dashboard.
				Each fund publishes its positions' market values, shorts are negative.

				When asked about a fund, write a single short paragraph in markdown, no title, no table:
				  - the balance between long and short exposure
				  - the concentration of the largest positions
				Use the Tools to compare with the other funds when it helps. Never invent figures.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Comment asks the expert for a commentary on the fund's summary.
func (e *Expert) Comment(ctx context.Context, ticker, summary string) (string, error) {
	prompt := fmt.Sprintf("Comment the allocation of fund %s.\n\n%s", strings.ToUpper(ticker), summary)
	content, err := e.Ask(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("%w: no commentary for %s: %w", hfcharts.ErrNetwork, ticker, err)
	}
	return text(content), nil
}
