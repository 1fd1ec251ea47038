package llm

import (
	"context"
	"errors"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with prose", "Here is the plan:\n```json\n{\"a\": 1}\n```\nHope it helps!", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"whitespace only", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.in); got != tc.want {
				t.Fatalf("StripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUnmarshalResponse(t *testing.T) {
	var out struct {
		Slogan string `json:"slogan"`
	}
	if err := UnmarshalResponse("```json\n{\"slogan\": \"Go far\"}\n```", &out); err != nil {
		t.Fatalf("unmarshal fenced response: %v", err)
	}
	if out.Slogan != "Go far" {
		t.Fatalf("unexpected slogan %q", out.Slogan)
	}

	if err := UnmarshalResponse("I could not produce JSON, sorry.", &out); err == nil {
		t.Fatalf("expected error for non-JSON response")
	}
}

func TestCompleteTextRendersErrors(t *testing.T) {
	failing := &Mock{Respond: func(Request) (string, error) {
		return "", errors.New("connection refused")
	}}
	got := CompleteText(context.Background(), failing, Request{User: "anything"})
	if got != "Error: connection refused" {
		t.Fatalf("expected rendered error string, got %q", got)
	}
}

func TestMockDispatchesOnPromptMarkers(t *testing.T) {
	m := &Mock{}
	ctx := context.Background()

	plan, err := m.Complete(ctx, Request{User: "Analyze this campaign brief and create a detailed execution plan: ..."})
	if err != nil {
		t.Fatalf("mock plan: %v", err)
	}
	var planOut struct {
		Strategy string `json:"strategy"`
	}
	if err := UnmarshalResponse(plan, &planOut); err != nil || planOut.Strategy == "" {
		t.Fatalf("mock plan response not parseable: %v", err)
	}

	eval, err := m.Complete(ctx, Request{User: "Review the campaign outputs below."})
	if err != nil {
		t.Fatalf("mock evaluation: %v", err)
	}
	var evalOut struct {
		ReadyForFinal bool `json:"ready_for_final"`
	}
	if err := UnmarshalResponse(eval, &evalOut); err != nil || !evalOut.ReadyForFinal {
		t.Fatalf("mock evaluation should be ready for final: %v", err)
	}

	other, err := m.Complete(ctx, Request{User: "something unrelated"})
	if err != nil || other != "{}" {
		t.Fatalf("expected empty object for unknown prompt, got %q err %v", other, err)
	}
}
