// Package memory stores finished campaigns in an embedded vector database so
// later briefs can retrieve similar past work. It is strictly optional: every
// failure degrades to "no memory" and the campaign workflow never depends on
// it succeeding.
package memory

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"strings"
	"time"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"automark/internal/contextstore"
)

const collectionName = "campaign_memory"

// Memory wraps a persistent chromem collection of past campaigns.
// A nil *Memory is valid and turns every operation into a no-op.
type Memory struct {
	db         *chromem.DB
	collection *chromem.Collection
	logger     *zap.Logger
}

// Result is one remembered campaign returned from a similarity search.
type Result struct {
	CampaignID string
	Brief      string
	Timestamp  string
	Document   string
	Similarity float32
}

// Open creates or reopens the campaign memory persisted under dir. The
// embedding function is injected so tests can run without a network.
func Open(dir string, embed chromem.EmbeddingFunc, logger *zap.Logger) (*Memory, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure memory dir: %w", err)
	}
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("open memory collection: %w", err)
	}
	return &Memory{db: db, collection: collection, logger: logger}, nil
}

// OpenAIEmbedding returns the default embedding function backed by an
// OpenAI-compatible embeddings endpoint.
func OpenAIEmbedding(baseURL, apiKey, model string) chromem.EmbeddingFunc {
	return chromem.NewEmbeddingFuncOpenAICompat(baseURL, apiKey, model, nil)
}

// HashEmbedding returns a deterministic, offline embedding function: token
// hashing into dim buckets, L2-normalized. It has no semantic power beyond
// shared vocabulary, which is enough for the mock provider and for tests.
func HashEmbedding(dim int) chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		vec := make([]float32, dim)
		for _, token := range strings.Fields(strings.ToLower(text)) {
			h := fnv.New32a()
			h.Write([]byte(token))
			vec[int(h.Sum32())%dim]++
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		if norm == 0 {
			vec[0] = 1
			return vec, nil
		}
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
		return vec, nil
	}
}

// StoreCampaign remembers a finished campaign. The embedded document is a
// digest of the brief and the report's key fields, which is what similarity
// search should match on.
func (m *Memory) StoreCampaign(ctx context.Context, campaignID, brief string, report contextstore.FinalReport) error {
	if m == nil {
		return nil
	}
	doc := chromem.Document{
		ID:      campaignID,
		Content: digest(brief, report),
		Metadata: map[string]string{
			"campaign_id": campaignID,
			"brief":       brief,
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := m.collection.AddDocument(ctx, doc); err != nil {
		return fmt.Errorf("store campaign %s: %w", campaignID, err)
	}
	m.logger.Debug("campaign remembered", zap.String("campaign_id", campaignID))
	return nil
}

// SearchSimilar returns up to n past campaigns most similar to the query,
// best match first. An empty memory returns no results, not an error.
func (m *Memory) SearchSimilar(ctx context.Context, query string, n int) ([]Result, error) {
	if m == nil {
		return nil, nil
	}
	count := m.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if n > count {
		n = count
	}
	hits, err := m.collection.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("search campaigns: %w", err)
	}
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		results = append(results, Result{
			CampaignID: hit.ID,
			Brief:      hit.Metadata["brief"],
			Timestamp:  hit.Metadata["timestamp"],
			Document:   hit.Content,
			Similarity: hit.Similarity,
		})
	}
	return results, nil
}

func digest(brief string, report contextstore.FinalReport) string {
	parts := []string{"Brief: " + brief}
	if report.TargetAudience != "" {
		parts = append(parts, "Target Audience: "+report.TargetAudience)
	}
	if report.CoreMessage != "" {
		parts = append(parts, "Core Message: "+report.CoreMessage)
	}
	if report.Strategy != "" {
		parts = append(parts, "Strategy: "+report.Strategy)
	}
	if len(report.RecommendedChannels) > 0 {
		channels := report.RecommendedChannels[0]
		for _, c := range report.RecommendedChannels[1:] {
			channels += ", " + c
		}
		parts = append(parts, "Channels: "+channels)
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " | " + p
	}
	return out
}
