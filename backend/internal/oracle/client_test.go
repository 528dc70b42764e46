package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkwell-labs/content-guard/backend/internal/provider"
)

func openAICompletion(content string) string {
	body := map[string]interface{}{
		"id":    "chatcmpl-test",
		"model": "test-model",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	ts := httptest.NewServer(handler)
	p := provider.NewOpenAIProvider(ts.URL, "", 5*time.Second)
	return NewClient(p, "test-model", nil), ts.Close
}

func TestAssessParsesStructuredResponse(t *testing.T) {
	completion := `Here is the analysis:
{"personal_names":["Jane Roe"],"organization_names":["Initech"],"financial_info":[],"locations":["Springfield"]}`

	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, openAICompletion(completion))
	})
	defer closeFn()

	assessment, err := client.Assess(context.Background(), "Jane Roe of Initech lives in Springfield")
	if err != nil {
		t.Fatalf("assess failed: %v", err)
	}
	if len(assessment.PersonalNames) != 1 || assessment.PersonalNames[0] != "Jane Roe" {
		t.Errorf("personal names = %v", assessment.PersonalNames)
	}
	if len(assessment.OrganizationNames) != 1 || assessment.OrganizationNames[0] != "Initech" {
		t.Errorf("organization names = %v", assessment.OrganizationNames)
	}
	if len(assessment.Locations) != 1 {
		t.Errorf("locations = %v", assessment.Locations)
	}
	if len(assessment.ConfidentialInfo) != 0 {
		t.Errorf("absent field should stay empty, got %v", assessment.ConfidentialInfo)
	}
}

func TestAssessRejectsProseOnlyResponse(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, openAICompletion("I could not find anything sensitive."))
	})
	defer closeFn()

	if _, err := client.Assess(context.Background(), "some text"); err == nil {
		t.Fatalf("expected error for response without a JSON object")
	}
}

func TestAssessRejectsUpstreamError(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream on fire", http.StatusBadGateway)
	})
	defer closeFn()

	if _, err := client.Assess(context.Background(), "some text"); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}

func TestAssessRejectsEmptyChoices(t *testing.T) {
	client, closeFn := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"x","model":"test-model","choices":[]}`)
	})
	defer closeFn()

	if _, err := client.Assess(context.Background(), "some text"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestExtractAssessmentFromFencedOutput(t *testing.T) {
	content := "```json\n{\"personal_names\":[\"Ada\"]}\n```"
	assessment, err := extractAssessment(content)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(assessment.PersonalNames) != 1 || assessment.PersonalNames[0] != "Ada" {
		t.Errorf("assessment = %+v", assessment)
	}
}
