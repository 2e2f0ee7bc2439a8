package review_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/infrastructure/memory"
	"github.com/skillswap/backend/internal/pkg/apperror"
	"github.com/skillswap/backend/internal/security"
	"github.com/skillswap/backend/internal/usecase/notification"
	"github.com/skillswap/backend/internal/usecase/review"
	"github.com/skillswap/backend/internal/usecase/skillrequest"
)

type nopNotifier struct {
	calls int
}

func (n *nopNotifier) ReviewSubmitted(ctx context.Context, r *entity.Review) { n.calls++ }

func createUser(t *testing.T, store *memory.Store, username string) *entity.User {
	t.Helper()
	u := &entity.User{ID: uuid.New(), Email: username + "@example.com", Username: username}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func completedRequest(t *testing.T, store *memory.Store) *entity.SkillRequest {
	t.Helper()
	ctx := context.Background()
	skill, err := entity.NewSkill(uuid.New(), entity.SkillInput{Title: "Guitar", Description: "Chords"})
	require.NoError(t, err)
	require.NoError(t, store.Skills().Create(ctx, skill))

	req, err := entity.NewSkillRequest(uuid.New(), skill, "teach me")
	require.NoError(t, err)
	require.NoError(t, store.SkillRequests().Create(ctx, req))

	from := req.Status
	require.NoError(t, req.Accept(req.ReceiverID))
	_, err = store.SkillRequests().UpdateStatus(ctx, req, from)
	require.NoError(t, err)
	from = req.Status
	require.NoError(t, req.Complete(req.SenderID))
	_, err = store.SkillRequests().UpdateStatus(ctx, req, from)
	require.NoError(t, err)
	return req
}

func TestSubmitReview_OncePerReviewer(t *testing.T) {
	store := memory.NewStore()
	req := completedRequest(t, store)
	notifier := &nopNotifier{}
	uc := review.NewSubmitReviewUseCase(store.SkillRequests(), store.Reviews(), security.NewSanitizer(0), notifier)
	ctx := context.Background()

	rv, err := uc.Execute(ctx, review.SubmitReviewInput{
		RequestID:  req.ID,
		ReviewerID: req.SenderID,
		Ratings:    entity.ReviewRatings{Rating: 4},
		Comment:    "<script>x</script>Great",
	})
	require.NoError(t, err)
	assert.Equal(t, req.ReceiverID, rv.ReviewedUserID)
	assert.Equal(t, "Great", rv.Comment)
	assert.Equal(t, valueobject.Rating(5), rv.PatienceRating)

	_, err = uc.Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: req.SenderID, Ratings: entity.ReviewRatings{Rating: 1}})
	assert.Equal(t, apperror.ErrCodeDuplicateReview, apperror.CodeOf(err))

	// второй участник оценивает независимо
	rv2, err := uc.Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: req.ReceiverID, Ratings: entity.ReviewRatings{Rating: 5}})
	require.NoError(t, err)
	assert.Equal(t, req.SenderID, rv2.ReviewedUserID)
	assert.Equal(t, 2, notifier.calls)
}

func TestSubmitReview_Rejections(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	uc := review.NewSubmitReviewUseCase(store.SkillRequests(), store.Reviews(), security.NewSanitizer(0), &nopNotifier{})

	_, err := uc.Execute(ctx, review.SubmitReviewInput{RequestID: uuid.New(), ReviewerID: uuid.New(), Ratings: entity.ReviewRatings{Rating: 5}})
	assert.True(t, apperror.IsNotFound(err))

	skill, _ := entity.NewSkill(uuid.New(), entity.SkillInput{Title: "Chess", Description: "Openings"})
	require.NoError(t, store.Skills().Create(ctx, skill))
	pending, _ := entity.NewSkillRequest(uuid.New(), skill, "hi")
	require.NoError(t, store.SkillRequests().Create(ctx, pending))

	_, err = uc.Execute(ctx, review.SubmitReviewInput{RequestID: pending.ID, ReviewerID: pending.SenderID, Ratings: entity.ReviewRatings{Rating: 5}})
	assert.Equal(t, apperror.ErrCodeInvalidState, apperror.CodeOf(err))

	done := completedRequest(t, store)
	_, err = uc.Execute(ctx, review.SubmitReviewInput{RequestID: done.ID, ReviewerID: uuid.New(), Ratings: entity.ReviewRatings{Rating: 5}})
	assert.True(t, apperror.IsForbidden(err))

	_, err = uc.Execute(ctx, review.SubmitReviewInput{RequestID: done.ID, ReviewerID: done.SenderID, Ratings: entity.ReviewRatings{Rating: 6}})
	assert.True(t, apperror.IsValidation(err))
}

func TestSubmitReview_ValidationBeforeDuplicate(t *testing.T) {
	store := memory.NewStore()
	req := completedRequest(t, store)
	uc := review.NewSubmitReviewUseCase(store.SkillRequests(), store.Reviews(), security.NewSanitizer(0), &nopNotifier{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: req.SenderID, Ratings: entity.ReviewRatings{Rating: 4}})
	require.NoError(t, err)

	// некорректная оценка отклоняется раньше, чем проверяется повтор
	_, err = uc.Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: req.SenderID, Ratings: entity.ReviewRatings{Rating: 0}})
	assert.Equal(t, apperror.ErrCodeValidation, apperror.CodeOf(err))

	_, err = uc.Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: req.SenderID, Ratings: entity.ReviewRatings{Rating: 3}})
	assert.Equal(t, apperror.ErrCodeDuplicateReview, apperror.CodeOf(err))
}

func TestCanReview(t *testing.T) {
	store := memory.NewStore()
	req := completedRequest(t, store)
	ctx := context.Background()
	can := review.NewCanReviewUseCase(store.SkillRequests(), store.Reviews())
	submit := review.NewSubmitReviewUseCase(store.SkillRequests(), store.Reviews(), security.NewSanitizer(0), &nopNotifier{})

	ok, err := can.Execute(ctx, req.ID, req.SenderID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = can.Execute(ctx, req.ID, uuid.New())
	assert.False(t, ok)

	_, err = submit.Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: req.SenderID, Ratings: entity.ReviewRatings{Rating: 3}})
	require.NoError(t, err)

	ok, _ = can.Execute(ctx, req.ID, req.SenderID)
	assert.False(t, ok)
	ok, _ = can.Execute(ctx, req.ID, req.ReceiverID)
	assert.True(t, ok)
}

func TestAverageRating(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	avg := review.NewAverageRatingUseCase(store.Reviews())
	submit := review.NewSubmitReviewUseCase(store.SkillRequests(), store.Reviews(), security.NewSanitizer(0), &nopNotifier{})

	got, err := avg.ForUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	// три отзыва разных учеников одному преподавателю: 5, 4, 4 -> 4.3
	mentor := uuid.New()
	skill, _ := entity.NewSkill(mentor, entity.SkillInput{Title: "Piano", Description: "Scales"})
	require.NoError(t, store.Skills().Create(ctx, skill))
	for _, stars := range []int{5, 4, 4} {
		req, err := entity.NewSkillRequest(uuid.New(), skill, "please")
		require.NoError(t, err)
		require.NoError(t, store.SkillRequests().Create(ctx, req))
		require.NoError(t, req.Accept(mentor))
		_, err = store.SkillRequests().UpdateStatus(ctx, req, valueobject.RequestStatusPending)
		require.NoError(t, err)
		require.NoError(t, req.Complete(mentor))
		_, err = store.SkillRequests().UpdateStatus(ctx, req, valueobject.RequestStatusAccepted)
		require.NoError(t, err)

		_, err = submit.Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: req.SenderID, Ratings: entity.ReviewRatings{Rating: stars}})
		require.NoError(t, err)
	}

	got, err = avg.ForUser(ctx, mentor)
	require.NoError(t, err)
	assert.Equal(t, 4.3, got)

	got, err = avg.ForSkill(ctx, skill.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.3, got)

	summary, err := avg.Summary(ctx, mentor)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Breakdown[4])
	assert.Equal(t, 0, summary.Breakdown[1])

	list, err := review.NewListReviewsUseCase(store.Reviews()).ForUser(ctx, mentor)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

// Полный сценарий: заявка, принятие, завершение, отзыв и уведомления преподавателю.
func TestExchangeScenario(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	student := createUser(t, store, "sam")
	mentor := createUser(t, store, "rita")

	dispatcher := notification.NewDispatcher(store.Notifications(), store.Users(), store.Skills(), nil)
	sanitizer := security.NewSanitizer(0)

	skill, err := entity.NewSkill(mentor.ID, entity.SkillInput{Title: "Pottery", Description: "Wheel basics"})
	require.NoError(t, err)
	require.NoError(t, store.Skills().Create(ctx, skill))

	req, err := skillrequest.NewCreateRequestUseCase(store.SkillRequests(), store.Skills(), dispatcher).
		Execute(ctx, skillrequest.CreateRequestInput{SenderID: student.ID, SkillID: skill.ID, Message: "I'd like to learn"})
	require.NoError(t, err)

	_, err = skillrequest.NewAcceptRequestUseCase(store.SkillRequests(), dispatcher).Execute(ctx, req.ID, mentor.ID)
	require.NoError(t, err)

	result, err := skillrequest.NewCompleteRequestUseCase(store.SkillRequests()).Execute(ctx, req.ID, student.ID)
	require.NoError(t, err)
	assert.True(t, result.ReviewUnlocked)

	_, err = review.NewSubmitReviewUseCase(store.SkillRequests(), store.Reviews(), sanitizer, dispatcher).
		Execute(ctx, review.SubmitReviewInput{RequestID: req.ID, ReviewerID: student.ID, Ratings: entity.ReviewRatings{Rating: 5}})
	require.NoError(t, err)

	avg, err := review.NewAverageRatingUseCase(store.Reviews()).ForUser(ctx, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)

	items, total, err := store.Notifications().List(ctx, mentor.ID, repository.NotificationFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	byType := map[valueobject.NotificationType]int{}
	for _, n := range items {
		byType[n.Type]++
	}
	assert.Equal(t, 1, byType[valueobject.NotificationRequestReceived])
	assert.Equal(t, 1, byType[valueobject.NotificationNewReview])

	_, studentTotal, err := store.Notifications().List(ctx, student.ID, repository.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, studentTotal, "student gets only the acceptance notice")
}
