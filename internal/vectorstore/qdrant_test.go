package vectorstore

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestNewQdrantStore_InvalidURL(t *testing.T) {
	if _, err := NewQdrantStore("://invalid"); err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"for_date": {Kind: &qdrant.Value_StringValue{StringValue: "2026-03-01"}},
		"count":    {Kind: &qdrant.Value_IntegerValue{IntegerValue: 7}},
		"score":    {Kind: &qdrant.Value_DoubleValue{DoubleValue: 0.5}},
		"flag":     {Kind: &qdrant.Value_BoolValue{BoolValue: true}},
		"nil":      nil,
	}

	result := convertPayloadToMap(payload)

	if len(result) != 4 {
		t.Errorf("len(result) = %d, want 4 (nil values skipped)", len(result))
	}
	if result["for_date"] != "2026-03-01" {
		t.Errorf("for_date = %v, want 2026-03-01", result["for_date"])
	}
	if result["count"] != int64(7) {
		t.Errorf("count = %v, want int64(7)", result["count"])
	}
	if result["score"] != 0.5 {
		t.Errorf("score = %v, want 0.5", result["score"])
	}
	if result["flag"] != true {
		t.Errorf("flag = %v, want true", result["flag"])
	}
}

func TestConvertValue_Nested(t *testing.T) {
	value := &qdrant.Value{
		Kind: &qdrant.Value_ListValue{
			ListValue: &qdrant.ListValue{
				Values: []*qdrant.Value{
					{Kind: &qdrant.Value_StringValue{StringValue: "a"}},
					{
						Kind: &qdrant.Value_StructValue{
							StructValue: &qdrant.Struct{
								Fields: map[string]*qdrant.Value{
									"inner": {Kind: &qdrant.Value_StringValue{StringValue: "b"}},
								},
							},
						},
					},
				},
			},
		},
	}

	result, ok := convertValue(value).([]any)
	if !ok {
		t.Fatalf("convertValue() = %T, want []any", convertValue(value))
	}
	if len(result) != 2 || result[0] != "a" {
		t.Errorf("unexpected list: %v", result)
	}
	inner, ok := result[1].(map[string]any)
	if !ok || inner["inner"] != "b" {
		t.Errorf("unexpected nested struct: %v", result[1])
	}
}
