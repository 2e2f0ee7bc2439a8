package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/domain/valueobject"
)

func TestRequestStatus_TransitionTable(t *testing.T) {
	allowed := map[valueobject.RequestStatus][]valueobject.RequestStatus{
		valueobject.RequestStatusPending: {
			valueobject.RequestStatusAccepted,
			valueobject.RequestStatusRejected,
			valueobject.RequestStatusCancelled,
		},
		valueobject.RequestStatusAccepted: {
			valueobject.RequestStatusCompleted,
			valueobject.RequestStatusCancelled,
		},
	}

	for _, from := range valueobject.AllRequestStatuses() {
		for _, to := range valueobject.AllRequestStatuses() {
			want := false
			for _, s := range allowed[from] {
				if s == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestRequestStatus_Terminal(t *testing.T) {
	assert.False(t, valueobject.RequestStatusPending.IsTerminal())
	assert.False(t, valueobject.RequestStatusAccepted.IsTerminal())
	assert.True(t, valueobject.RequestStatusRejected.IsTerminal())
	assert.True(t, valueobject.RequestStatusCompleted.IsTerminal())
	assert.True(t, valueobject.RequestStatusCancelled.IsTerminal())
	assert.False(t, valueobject.RequestStatus("bogus").IsTerminal())
}

func TestParseStatusFilter(t *testing.T) {
	s, err := valueobject.ParseStatusFilter("all")
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = valueobject.ParseStatusFilter("accepted")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, valueobject.RequestStatusAccepted, *s)

	_, err = valueobject.ParseStatusFilter("archived")
	assert.Error(t, err)
}

func TestRatingStats_Average(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty", nil, 0},
		{"descending", []int{5, 4, 3}, 4.0},
		{"all fives", []int{5, 5}, 5.0},
		{"rounds to tenth", []int{5, 4, 4}, 4.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stats valueobject.RatingStats
			for _, r := range tc.ratings {
				stats.Add(valueobject.Rating(r))
			}
			assert.Equal(t, tc.want, stats.Average())
		})
	}
}

func TestRatingStats_Breakdown(t *testing.T) {
	var stats valueobject.RatingStats
	for _, r := range []int{5, 5, 1, 3} {
		stats.Add(valueobject.Rating(r))
	}
	stats.Add(valueobject.Rating(9))

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 2, stats.StarCount(5))
	assert.Equal(t, 1, stats.StarCount(1))
	assert.Equal(t, 0, stats.StarCount(2))
	assert.Equal(t, 0, stats.StarCount(6))
}

func TestNewRating(t *testing.T) {
	for _, v := range []int{0, 6, -1} {
		_, err := valueobject.NewRating(v)
		assert.Error(t, err, "rating %d", v)
	}
	r, err := valueobject.NewOptionalRating(nil)
	require.NoError(t, err)
	assert.Equal(t, valueobject.Rating(5), r)
}

func TestSkillDefaults(t *testing.T) {
	level, err := valueobject.NewSkillLevel("")
	require.NoError(t, err)
	assert.Equal(t, valueobject.SkillLevelIntermediate, level)

	mode, err := valueobject.NewLocationMode("")
	require.NoError(t, err)
	assert.Equal(t, valueobject.LocationBoth, mode)

	_, err = valueobject.NewSkillLevel("guru")
	assert.Error(t, err)
	assert.Equal(t, valueobject.SkillSortRecent, valueobject.NewSkillSort("random"))
}
