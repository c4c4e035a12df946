package analysis

import (
	"strings"
	"testing"
)

func TestParseResponse_Valid(t *testing.T) {
	raw := `{"reminders": [
		{"text": "Buy milk", "action": "CREATE", "update_id": null, "tags": null},
		{"text": "Call Bob at 3pm", "action": "UPDATE", "update_id": 4, "tags": "work"}
	], "reasoning": "two actionable items"}`

	extraction, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}

	if extraction.Reasoning != "two actionable items" {
		t.Errorf("Reasoning = %q, want %q", extraction.Reasoning, "two actionable items")
	}
	if len(extraction.Reminders) != 2 {
		t.Fatalf("len(Reminders) = %d, want 2", len(extraction.Reminders))
	}

	create := extraction.Reminders[0]
	if create.Action != "CREATE" || create.Text != "Buy milk" || create.Tags != nil {
		t.Errorf("unexpected CREATE item: %+v", create)
	}

	update := extraction.Reminders[1]
	if update.Action != "UPDATE" || update.UpdateID != 4 {
		t.Errorf("unexpected UPDATE item: %+v", update)
	}
	if update.Tags == nil || *update.Tags != "work" {
		t.Errorf("UPDATE tags = %v, want work", update.Tags)
	}
}

func TestParseResponse_FencedPayload(t *testing.T) {
	raw := "```json\n{\"reminders\": [], \"reasoning\": \"nothing actionable\"}\n```"

	extraction, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if len(extraction.Reminders) != 0 {
		t.Errorf("len(Reminders) = %d, want 0", len(extraction.Reminders))
	}
	if extraction.Reasoning != "nothing actionable" {
		t.Errorf("Reasoning = %q", extraction.Reasoning)
	}
}

func TestParseResponse_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name:    "not JSON",
			raw:     "I could not find any reminders, sorry!",
			wantErr: "not valid JSON",
		},
		{
			name:    "missing reminders field",
			raw:     `{"reasoning": "hm"}`,
			wantErr: `missing required field "reminders"`,
		},
		{
			name:    "missing reasoning field",
			raw:     `{"reminders": []}`,
			wantErr: `missing required field "reasoning"`,
		},
		{
			name:    "missing text",
			raw:     `{"reminders": [{"action": "CREATE"}], "reasoning": "x"}`,
			wantErr: `missing required field "text"`,
		},
		{
			name:    "blank text",
			raw:     `{"reminders": [{"text": "  ", "action": "CREATE"}], "reasoning": "x"}`,
			wantErr: `missing required field "text"`,
		},
		{
			name:    "missing action",
			raw:     `{"reminders": [{"text": "Buy milk"}], "reasoning": "x"}`,
			wantErr: `missing required field "action"`,
		},
		{
			name:    "unknown action",
			raw:     `{"reminders": [{"text": "Buy milk", "action": "DELETE"}], "reasoning": "x"}`,
			wantErr: `unknown action "DELETE"`,
		},
		{
			name:    "update without id",
			raw:     `{"reminders": [{"text": "Buy milk", "action": "UPDATE", "update_id": null}], "reasoning": "x"}`,
			wantErr: "no update_id",
		},
		{
			name:    "wrong type for update_id",
			raw:     `{"reminders": [{"text": "Buy milk", "action": "UPDATE", "update_id": "four"}], "reasoning": "x"}`,
			wantErr: "not valid JSON",
		},
		{
			name:    "wrong type for reminders",
			raw:     `{"reminders": "none", "reasoning": "x"}`,
			wantErr: "not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extraction, err := ParseResponse(tt.raw)
			if err == nil {
				t.Fatalf("ParseResponse() = %+v, want error", extraction)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseResponse() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseResponse_CreateIgnoresUpdateID(t *testing.T) {
	raw := `{"reminders": [{"text": "Buy milk", "action": "CREATE", "update_id": 9}], "reasoning": "x"}`

	extraction, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if extraction.Reminders[0].UpdateID != 0 {
		t.Errorf("UpdateID = %d, want 0 for CREATE", extraction.Reminders[0].UpdateID)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare JSON", raw: `{"a": 1}`, want: `{"a": 1}`},
		{name: "json fence", raw: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "plain fence", raw: "```\n{\"a\": 1}\n```", want: `{"a": 1}`},
		{name: "surrounding whitespace", raw: "  \n{\"a\": 1}\n  ", want: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.raw); got != tt.want {
				t.Errorf("stripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}
