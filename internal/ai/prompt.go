package ai

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/Iron-Ham/cerebro/internal/errors"
)

// coachPersona is the system instruction for chat replies.
const coachPersona = "You are a compassionate, practical, non-judgmental ADHD coach. " +
	"Validate what the user feels (overwhelm, paralysis, distraction) in one short sentence, " +
	"then propose ONE tiny action they can start right now. " +
	"Stay under 50 words. Be encouraging but firm about small steps."

// breakdownPrompt asks for 3 to 5 micro-steps as a bare JSON array.
func breakdownPrompt(content string) string {
	return fmt.Sprintf(
		"Break down the task %q into 3 to 5 very small, incredibly actionable micro-steps for someone with ADHD. "+
			"Return ONLY a JSON array of strings. Example: [\"Step 1\", \"Step 2\"]. Keep it brief.",
		content,
	)
}

// parseSteps extracts a JSON array of strings from a model response,
// tolerating code fences and surrounding prose.
func parseSteps(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in response", errors.ErrMalformedResponse)
	}

	var steps []string
	if err := sonic.ConfigStd.UnmarshalFromString(text[start:end+1], &steps); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrMalformedResponse, err)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: empty array", errors.ErrMalformedResponse)
	}
	return steps, nil
}
