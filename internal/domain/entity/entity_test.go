package entity_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/pkg/apperror"
)

func newTestSkill(owner uuid.UUID) *entity.Skill {
	skill, _ := entity.NewSkill(owner, entity.SkillInput{Title: "Go", Description: "Concurrency basics"})
	return skill
}

func newPendingRequest(t *testing.T) (*entity.SkillRequest, uuid.UUID, uuid.UUID) {
	t.Helper()
	sender, receiver := uuid.New(), uuid.New()
	req, err := entity.NewSkillRequest(sender, newTestSkill(receiver), "hello")
	require.NoError(t, err)
	return req, sender, receiver
}

func TestNewSkillRequest(t *testing.T) {
	owner := uuid.New()
	skill := newTestSkill(owner)

	_, err := entity.NewSkillRequest(owner, skill, "teach me")
	assert.Equal(t, apperror.ErrCodeSelfRequest, apperror.CodeOf(err))

	_, err = entity.NewSkillRequest(uuid.New(), skill, "   ")
	assert.True(t, apperror.IsValidation(err))

	sender := uuid.New()
	req, err := entity.NewSkillRequest(sender, skill, "teach me")
	require.NoError(t, err)
	assert.Equal(t, owner, req.ReceiverID)
	assert.Equal(t, valueobject.RequestStatusPending, req.Status)
	assert.False(t, req.CreatedAt.IsZero())
}

func TestSkillRequest_RoleGuards(t *testing.T) {
	req, sender, receiver := newPendingRequest(t)
	stranger := uuid.New()

	assert.True(t, apperror.IsForbidden(req.Accept(sender)))
	assert.True(t, apperror.IsForbidden(req.Reject(stranger)))
	assert.True(t, apperror.IsForbidden(req.Cancel(receiver)))
	assert.True(t, apperror.IsForbidden(req.Complete(stranger)))
	assert.Equal(t, valueobject.RequestStatusPending, req.Status)
}

func TestSkillRequest_HappyPath(t *testing.T) {
	req, sender, receiver := newPendingRequest(t)

	require.NoError(t, req.Accept(receiver))
	assert.Equal(t, valueobject.RequestStatusAccepted, req.Status)
	require.NotNil(t, req.AcceptedAt)

	assert.True(t, apperror.IsInvalidTransition(req.Reject(receiver)))

	require.NoError(t, req.Complete(sender))
	assert.Equal(t, valueobject.RequestStatusCompleted, req.Status)
	require.NotNil(t, req.CompletedAt)

	assert.True(t, apperror.IsInvalidTransition(req.Cancel(sender)))
	assert.True(t, apperror.IsInvalidTransition(req.Complete(receiver)))
}

func TestSkillRequest_CompleteRequiresAccepted(t *testing.T) {
	req, sender, _ := newPendingRequest(t)
	assert.True(t, apperror.IsInvalidTransition(req.Complete(sender)))

	require.NoError(t, req.Cancel(sender))
	assert.Equal(t, valueobject.RequestStatusCancelled, req.Status)
}

func TestNewReview(t *testing.T) {
	req, sender, receiver := newPendingRequest(t)

	_, err := entity.NewReview(req, sender, entity.ReviewRatings{Rating: 5}, "")
	assert.Equal(t, apperror.ErrCodeInvalidState, apperror.CodeOf(err))

	require.NoError(t, req.Accept(receiver))
	require.NoError(t, req.Complete(receiver))

	_, err = entity.NewReview(req, uuid.New(), entity.ReviewRatings{Rating: 5}, "")
	assert.True(t, apperror.IsForbidden(err))

	bad := 0
	_, err = entity.NewReview(req, sender, entity.ReviewRatings{Rating: 5, Patience: &bad}, "")
	assert.True(t, apperror.IsValidation(err))

	_, err = entity.NewReview(req, sender, entity.ReviewRatings{Rating: 6}, "")
	assert.True(t, apperror.IsValidation(err))

	knowledge := 3
	review, err := entity.NewReview(req, sender, entity.ReviewRatings{Rating: 4, Knowledge: &knowledge}, " thanks ")
	require.NoError(t, err)
	assert.Equal(t, receiver, review.ReviewedUserID)
	assert.Equal(t, valueobject.Rating(5), review.CommunicationRating)
	assert.Equal(t, "thanks", review.Comment)
	assert.Equal(t, 4.3, review.AverageDetailedRating())
}

func TestUser_ProfileCompletionIsSticky(t *testing.T) {
	u := &entity.User{}
	assert.Equal(t, 0, u.ProfileCompletion())

	bio, loc, phone := "bio", "Berlin", "+49"
	u.UpdateProfile(entity.ProfileInput{Bio: &bio, Location: &loc, Phone: &phone})
	assert.Equal(t, 75, u.ProfileCompletion())
	assert.False(t, u.ProfileCompleted)

	u.SetAvatar("avatars/x.jpg")
	assert.True(t, u.ProfileCompleted)

	empty := ""
	u.UpdateProfile(entity.ProfileInput{Bio: &empty})
	assert.Equal(t, 75, u.ProfileCompletion())
	assert.True(t, u.ProfileCompleted)
}

func TestNewCategory_DefaultIcon(t *testing.T) {
	c, err := entity.NewCategory(" Music ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Music", c.Name)
	assert.Equal(t, entity.DefaultCategoryIcon, c.Icon)
}
