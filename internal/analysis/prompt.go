// Package analysis holds the pure pieces of the note-analysis pipeline:
// building the extraction prompt and parsing the model's structured reply.
package analysis

import (
	"fmt"
	"strings"

	"daynote-ai/internal/storage"
)

// DateDisplayFormat is the layout used for the date embedded in prompts,
// e.g. "Sunday, December 14, 2025".
const DateDisplayFormat = "Monday, January 02, 2006"

// ResponseSchema is the JSON shape the model is instructed to return.
// It is part of the contract with the model; logged prompts and the
// response parser both depend on it staying stable.
const ResponseSchema = `{"reminders": [{"text": string, "action": "CREATE" | "UPDATE", "update_id": number | null, "tags": string | null}], "reasoning": string}`

// EmptyResponseExample is the canonical shape for a run with no actionable
// items.
const EmptyResponseExample = `{"reminders": [], "reasoning": "<brief explanation of why nothing was extracted>"}`

// BuildPrompt builds the extraction prompt for one note. It is pure and
// deterministic: the same note text, display date and reminder list always
// produce the same string.
//
// The existing reminders are embedded verbatim (id, text, tags) so the
// model can tell new items from changed and unchanged ones, and the prompt
// mandates that unchanged items be omitted from the response entirely.
func BuildPrompt(noteText, displayDate string, existing []storage.Reminder) string {
	var b strings.Builder

	b.WriteString("Today's date is ")
	b.WriteString(displayDate)
	b.WriteString(".\n\n")

	b.WriteString("You are an assistant that extracts actionable reminders from a user's daily note. ")
	b.WriteString("Read the note below and identify tasks the user needs to act on. ")
	b.WriteString("Interpret relative date expressions against today's date using this vocabulary: ")
	b.WriteString(`"today", "tomorrow", "end of week", "next week", "end of month", "in N days". `)
	b.WriteString("When a task mentions a due date or lead time, keep that information in the reminder text. ")
	b.WriteString("Short topical labels (for example #work or #home) become comma-separated tags; strip them from the reminder text.\n\n")

	b.WriteString("Existing reminders:\n")
	if len(existing) == 0 {
		b.WriteString("(none)\n")
	} else {
		for _, rem := range existing {
			tags := ""
			if rem.Tags != nil {
				tags = *rem.Tags
			}
			fmt.Fprintf(&b, "- id: %d, text: %q, tags: %q\n", rem.ID, rem.Text, tags)
		}
	}
	b.WriteString("\n")

	b.WriteString("Rules:\n")
	b.WriteString("1. Use action \"CREATE\" with update_id null for a task that has no existing reminder.\n")
	b.WriteString("2. Use action \"UPDATE\" with update_id set to the existing reminder's id when the note changes that reminder's text or tags.\n")
	b.WriteString("3. If an existing reminder's text and tags are unchanged by the note, omit it from the response entirely. Never return an UPDATE that changes nothing.\n")
	b.WriteString("4. Do not invent tasks that are not in the note.\n\n")

	b.WriteString("Respond with a single JSON object and nothing else, matching exactly this schema:\n")
	b.WriteString(ResponseSchema)
	b.WriteString("\n\n")
	b.WriteString("If the note contains no actionable items, respond with:\n")
	b.WriteString(EmptyResponseExample)
	b.WriteString("\n\n")

	b.WriteString("Note:\n")
	b.WriteString(noteText)
	b.WriteString("\n")

	return b.String()
}
