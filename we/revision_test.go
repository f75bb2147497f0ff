package we

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCovertsToISODatetime(t *testing.T) {
	timestamp := string(InitialRevision.Timestamp())
	assert.Equal(t, timestamp, time.Unix(0, 0).UTC().Format(RFC3339Milli))

	now := time.Now()
	revision, err := EncodeRevision(now, 1)
	require.NoError(t, err)

	timestamp = string(revision.Timestamp())
	assert.Equal(t, now.UTC().Format(RFC3339Milli), timestamp)
}

func TestRevisionsAreOrdered(t *testing.T) {
	now := time.Now()

	first, err := EncodeRevision(now, 1)
	require.NoError(t, err)
	second, err := EncodeRevision(now, 2)
	require.NoError(t, err)
	later, err := EncodeRevision(now.Add(time.Millisecond), 3)
	require.NoError(t, err)

	assert.Greater(t, second.String(), first.String())
	assert.Greater(t, later.String(), second.String())
	assert.Greater(t, first.String(), InitialRevision.String())
}

func TestRevisionSequence(t *testing.T) {
	sequence, err := InitialRevision.Sequence()
	require.NoError(t, err)
	assert.Zero(t, sequence)

	revision, err := EncodeRevision(time.Now(), 42)
	require.NoError(t, err)

	sequence, err = revision.Sequence()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), sequence)

	_, err = Revision("not a revision").Sequence()
	assert.Error(t, err)
}

func TestTimestampRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 30, 15, 250*int(time.Millisecond), time.UTC)

	parsed, err := TimestampFromTime(now).Time()
	require.NoError(t, err)
	assert.True(t, now.Equal(parsed))
}

func TestAggregateIdEncoding(t *testing.T) {
	id := AggregateId{Type: "counter", Key: "01H.session"}

	decoded, err := id.Encode().Decode()
	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	_, err = EncodedAggregateId("counter").Decode()
	assert.Error(t, err)
}
