package topics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, topic := range Catalog {
		assert.False(t, seen[topic.ID], "duplicate topic id %s", topic.ID)
		seen[topic.ID] = true
		assert.NotEmpty(t, topic.Title)
		assert.NotEmpty(t, topic.Description)
		assert.NotEmpty(t, topic.Category)
	}
}

func TestFind(t *testing.T) {
	topic, ok := Find("6")
	assert.True(t, ok)
	assert.Equal(t, "Remote Work", topic.Title)

	_, ok = Find("no-such-topic")
	assert.False(t, ok)
}
