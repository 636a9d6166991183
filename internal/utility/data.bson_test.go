package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToMap_HonorsBsonTags(t *testing.T) {
	type sample struct {
		Title   string `bson:"title"`
		DueAt   int64  `bson:"resolveDueAt"`
		Skipped string `bson:"-"`
	}

	m, err := ToMap(sample{Title: "pothole", DueAt: 42, Skipped: "x"})
	require.NoError(t, err)

	assert.Equal(t, "pothole", m["title"])
	assert.EqualValues(t, 42, m["resolveDueAt"])
	assert.NotContains(t, m, "Skipped")
}

func TestParseObjectID(t *testing.T) {
	want := primitive.NewObjectID()
	got, err := ParseObjectID("issueId", want.Hex())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseObjectID("issueId", "not-hex")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issueId")
}
