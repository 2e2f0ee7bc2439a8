package dashboard_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/infrastructure/memory"
	"github.com/skillswap/backend/internal/usecase/dashboard"
)

type fixture struct {
	store   *memory.Store
	me      *entity.User
	mentor *entity.User
	uc      *dashboard.DashboardUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	me := &entity.User{ID: uuid.New(), Email: "me@example.com", Username: "me"}
	mentor := &entity.User{ID: uuid.New(), Email: "t@example.com", Username: "mentor"}
	require.NoError(t, store.Users().Create(ctx, me))
	require.NoError(t, store.Users().Create(ctx, mentor))
	return &fixture{
		store:   store,
		me:      me,
		mentor: mentor,
		uc:      dashboard.NewDashboardUseCase(store.Users(), store.UserSkills(), store.Skills(), store.SkillRequests(), store.Reviews()),
	}
}

func (f *fixture) skill(t *testing.T, owner uuid.UUID, title string) *entity.Skill {
	t.Helper()
	sk, err := entity.NewSkill(owner, entity.SkillInput{Title: title, Description: "lessons"})
	require.NoError(t, err)
	require.NoError(t, f.store.Skills().Create(context.Background(), sk))
	return sk
}

func (f *fixture) request(t *testing.T, sender uuid.UUID, sk *entity.Skill) *entity.SkillRequest {
	t.Helper()
	req, err := entity.NewSkillRequest(sender, sk, "hi")
	require.NoError(t, err)
	require.NoError(t, f.store.SkillRequests().Create(context.Background(), req))
	return req
}

func TestOverview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guitar := f.skill(t, f.mentor.ID, "Guitar")
	drums := f.skill(t, f.mentor.ID, "Drums")
	mine := f.skill(t, f.me.ID, "Chess")

	f.request(t, f.me.ID, guitar)
	accepted := f.request(t, f.me.ID, drums)
	require.NoError(t, accepted.Accept(f.mentor.ID))
	_, err := f.store.SkillRequests().UpdateStatus(ctx, accepted, valueobject.RequestStatusPending)
	require.NoError(t, err)
	incoming := f.request(t, f.mentor.ID, mine)

	o, err := f.uc.Overview(ctx, f.me.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, o.Counts.SkillsOffered)
	assert.Equal(t, 2, o.Counts.RequestsSent)
	assert.Equal(t, 1, o.Counts.RequestsReceived)
	assert.Equal(t, 0, o.Counts.ReviewsReceived)
	require.Len(t, o.PendingSent, 1)
	assert.Equal(t, guitar.ID, o.PendingSent[0].SkillID)
	require.Len(t, o.PendingReceived, 1)
	assert.Equal(t, incoming.ID, o.PendingReceived[0].ID)
	require.Len(t, o.Active, 1)
	assert.Equal(t, accepted.ID, o.Active[0].ID)
	assert.Equal(t, 0.0, o.AverageRating)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	guitar := f.skill(t, f.mentor.ID, "Guitar")
	req := f.request(t, f.me.ID, guitar)
	require.NoError(t, req.Cancel(f.me.ID))
	_, err := f.store.SkillRequests().UpdateStatus(ctx, req, valueobject.RequestStatusPending)
	require.NoError(t, err)
	f.request(t, f.me.ID, guitar)

	popular := f.skill(t, f.me.ID, "Popular")
	f.skill(t, f.me.ID, "Quiet")
	require.NoError(t, f.store.Skills().IncrementViews(ctx, popular.ID))

	s, err := f.uc.Stats(ctx, f.me.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.SentByStatus[valueobject.RequestStatusPending])
	assert.Equal(t, 1, s.SentByStatus[valueobject.RequestStatusCancelled])
	assert.Equal(t, 0, s.SentByStatus[valueobject.RequestStatusCompleted])
	assert.Len(t, s.RatingBreakdown, 5)
	require.Len(t, s.MostViewed, 2)
	assert.Equal(t, popular.ID, s.MostViewed[0].ID)
}

func TestRecommended(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.skill(t, f.mentor.ID, "Italian cooking")
	f.skill(t, f.mentor.ID, "Tennis")
	f.skill(t, f.me.ID, "Cooking for kids")

	all, err := f.uc.Recommended(ctx, f.me.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2, "own skills are never recommended")

	want, err := entity.NewUserSkill(f.me.ID, "cooking", "want", "")
	require.NoError(t, err)
	require.NoError(t, f.store.UserSkills().Create(ctx, want))

	matched, err := f.uc.Recommended(ctx, f.me.ID)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Italian cooking", matched[0].Title)
}
