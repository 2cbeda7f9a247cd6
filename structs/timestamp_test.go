package structs

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampMarshalsAtSeconds(t *testing.T) {
	ts := NewTimestamp(time.Date(2024, 3, 9, 14, 5, 7, 987654000, time.UTC))

	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-03-09T14:05:07"`, string(out))
}

func TestTimestampUnmarshalLayouts(t *testing.T) {
	want := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	for _, input := range []string{
		`"2024-03-09T14:05:07"`,
		`"2024-03-09 14:05:07"`,
		`"2024-03-09T14:05:07Z"`,
		`"2024-03-09T16:05:07+02:00"`,
	} {
		t.Run(input, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(input), &ts))
			assert.True(t, want.Equal(ts.Time), "got %s", ts.Time)
		})
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestOrderNoRefNullCompleted(t *testing.T) {
	out, err := json.Marshal(OrderNoRef{ID: 1, Created: NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"baristaId":0,"created":"2024-01-01T00:00:00","completed":null,"price":0}`, string(out))
}

func TestOrderUpdateNullCompleted(t *testing.T) {
	var dto OrderUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"baristaId":1,"created":"2024-01-01T10:00:00","completed":null,"coffeeIdList":[]}`), &dto))
	assert.Nil(t, dto.Completed)
	require.NotNil(t, dto.Created)
	assert.Nil(t, (*Timestamp)(nil).TimePtr())
}
