package service

import (
	"encoding/json"
	"testing"

	"github.com/meilisearch/meilisearch-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSearchHits(t *testing.T) {
	raw := meilisearch.Hits{
		{
			"id":      json.RawMessage(`"q-1"`),
			"title":   json.RawMessage(`"How do I reset a switch port?"`),
			"content": json.RawMessage(`"Plain text body"`),
			"tags":    json.RawMessage(`["networking"]`),
		},
		{
			"id":    json.RawMessage(`"q-2"`),
			"title": json.RawMessage(`"VPN drops every hour"`),
		},
	}

	hits, err := decodeSearchHits(raw)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "q-1", hits[0].ID)
	assert.Equal(t, "How do I reset a switch port?", hits[0].Title)
	assert.Equal(t, "Plain text body", hits[0].Content)
	assert.Equal(t, "q-2", hits[1].ID)
	assert.Empty(t, hits[1].Content)
}

func TestSearchWithoutClient(t *testing.T) {
	svc := NewSearchService(nil)

	hits, err := svc.Search("anything", 10)
	require.NoError(t, err)
	assert.Nil(t, hits)

	require.NoError(t, svc.IndexQuestion(nil))
	require.NoError(t, svc.DeleteQuestion("q-1"))
}
