package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractedReminder is one decision parsed from the model's response.
// UpdateID is set only when Action is "UPDATE".
type ExtractedReminder struct {
	Text     string
	Action   string
	UpdateID int64
	Tags     *string
}

// Extraction is the structured result of a successfully parsed response.
type Extraction struct {
	Reminders []ExtractedReminder
	Reasoning string
}

// wire types use pointers so missing fields are distinguishable from
// zero values.
type wireReminder struct {
	Text     *string `json:"text"`
	Action   *string `json:"action"`
	UpdateID *int64  `json:"update_id"`
	Tags     *string `json:"tags"`
}

type wireResponse struct {
	Reminders *[]wireReminder `json:"reminders"`
	Reasoning *string         `json:"reasoning"`
}

// ParseResponse parses raw model output into an Extraction. The model is
// an untrusted input source: responses that do not conform to the schema
// in ResponseSchema are rejected as a whole, with no partial recovery.
//
// Fenced code-block markers the model may have wrapped around the JSON
// payload are stripped before parsing.
func ParseResponse(raw string) (*Extraction, error) {
	content := stripCodeFence(raw)

	var resp wireResponse
	if err := json.Unmarshal([]byte(content), &resp); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if resp.Reminders == nil {
		return nil, fmt.Errorf("response is missing required field \"reminders\"")
	}
	if resp.Reasoning == nil {
		return nil, fmt.Errorf("response is missing required field \"reasoning\"")
	}

	reminders := make([]ExtractedReminder, 0, len(*resp.Reminders))
	for i, item := range *resp.Reminders {
		if item.Text == nil || strings.TrimSpace(*item.Text) == "" {
			return nil, fmt.Errorf("reminder %d is missing required field \"text\"", i)
		}
		if item.Action == nil {
			return nil, fmt.Errorf("reminder %d is missing required field \"action\"", i)
		}

		extracted := ExtractedReminder{
			Text:   *item.Text,
			Action: *item.Action,
			Tags:   item.Tags,
		}

		switch *item.Action {
		case "CREATE":
			// update_id is ignored for creates
		case "UPDATE":
			if item.UpdateID == nil {
				return nil, fmt.Errorf("reminder %d has action UPDATE but no update_id", i)
			}
			extracted.UpdateID = *item.UpdateID
		default:
			return nil, fmt.Errorf("reminder %d has unknown action %q", i, *item.Action)
		}

		reminders = append(reminders, extracted)
	}

	return &Extraction{
		Reminders: reminders,
		Reasoning: *resp.Reasoning,
	}, nil
}

// stripCodeFence removes markdown code-block markers that models sometimes
// wrap around JSON payloads.
func stripCodeFence(raw string) string {
	content := strings.TrimSpace(raw)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
