package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeAPI serves the subset of the Gemini REST API used by this package.
// Embedding requests get one vector per input text whose single value is
// the text length.
type fakeAPI struct {
	generateText string
	fail         bool
	embedCalls   atomic.Int32
	lastPrompt   atomic.Value
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if f.fail {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend exploded","status":"INTERNAL"}}`))
		return
	}

	switch {
	case strings.Contains(r.URL.Path, "mbed"):
		f.embedCalls.Add(1)
		var body struct {
			Requests []struct {
				Content content `json:"content"`
			} `json:"requests"`
			Content *content `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		var texts []string
		for _, req := range body.Requests {
			texts = append(texts, joinParts(req.Content))
		}
		if body.Content != nil {
			texts = append(texts, joinParts(*body.Content))
		}

		type embedding struct {
			Values []float32 `json:"values"`
		}
		resp := struct {
			Embeddings []embedding `json:"embeddings"`
		}{}
		for _, text := range texts {
			resp.Embeddings = append(resp.Embeddings, embedding{Values: []float32{float32(len(text))}})
		}
		_ = json.NewEncoder(w).Encode(resp)

	case strings.Contains(r.URL.Path, "generateContent"):
		var body struct {
			Contents []content `json:"contents"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body.Contents) > 0 {
			f.lastPrompt.Store(joinParts(body.Contents[0]))
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": f.generateText}},
				},
				"finishReason": "STOP",
			}},
		})

	default:
		http.NotFound(w, r)
	}
}

func joinParts(c content) string {
	var sb strings.Builder
	for _, p := range c.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func newClient(t *testing.T, api *fakeAPI) *genai.Client {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: srv.URL},
	})
	require.NoError(t, err)
	return client
}
