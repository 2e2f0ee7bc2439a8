package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/infrastructure/memory"
	"github.com/skillswap/backend/internal/usecase/notification"
)

type mockNotificationRepo struct {
	mock.Mock
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Notification), args.Error(1)
}

func (m *mockNotificationRepo) List(ctx context.Context, userID uuid.UUID, f repository.NotificationFilter) ([]*entity.Notification, int, error) {
	args := m.Called(ctx, userID, f)
	return args.Get(0).([]*entity.Notification), args.Int(1), args.Error(2)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPusher struct {
	mock.Mock
}

func (m *mockPusher) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	return m.Called(userID, event, data).Error(0)
}

type fixture struct {
	store    *memory.Store
	sender   *entity.User
	receiver *entity.User
	request  *entity.SkillRequest
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	sender := &entity.User{ID: uuid.New(), Email: "s@x.io", Username: "sam"}
	receiver := &entity.User{ID: uuid.New(), Email: "r@x.io", Username: "rita"}
	require.NoError(t, store.Users().Create(ctx, sender))
	require.NoError(t, store.Users().Create(ctx, receiver))

	skill, _ := entity.NewSkill(receiver.ID, entity.SkillInput{Title: "Salsa", Description: "dance"})
	require.NoError(t, store.Skills().Create(ctx, skill))
	req, err := entity.NewSkillRequest(sender.ID, skill, "hi")
	require.NoError(t, err)

	return fixture{store: store, sender: sender, receiver: receiver, request: req}
}

func TestDispatcher_RequestCreated_NotifiesReceiver(t *testing.T) {
	f := newFixture(t)
	repo := new(mockNotificationRepo)
	pusher := new(mockPusher)
	d := notification.NewDispatcher(repo, f.store.Users(), f.store.Skills(), pusher)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == f.receiver.ID &&
			n.Type == valueobject.NotificationRequestReceived &&
			n.Message == "sam хочет изучить «Salsa»" &&
			n.Link == "/requests/"+f.request.ID.String()
	})).Return(nil).Once()
	pusher.On("BroadcastToUser", f.receiver.ID, notification.EventNotification, mock.Anything).Return(nil).Once()

	d.RequestCreated(context.Background(), f.request)

	repo.AssertExpectations(t)
	pusher.AssertExpectations(t)
}

func TestDispatcher_StatusEvents_NotifySender(t *testing.T) {
	f := newFixture(t)
	repo := new(mockNotificationRepo)
	d := notification.NewDispatcher(repo, f.store.Users(), f.store.Skills(), nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == f.sender.ID && n.Type == valueobject.NotificationRequestAccepted
	})).Return(nil).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == f.sender.ID && n.Type == valueobject.NotificationRequestRejected
	})).Return(nil).Once()

	d.RequestAccepted(context.Background(), f.request)
	d.RequestRejected(context.Background(), f.request)

	repo.AssertExpectations(t)
}

func TestDispatcher_MessagePosted_NotifiesCounterpart(t *testing.T) {
	f := newFixture(t)
	repo := new(mockNotificationRepo)
	d := notification.NewDispatcher(repo, f.store.Users(), f.store.Skills(), nil)

	msg, err := entity.NewRequestMessage(f.request, f.receiver.ID, "see you")
	require.NoError(t, err)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == f.sender.ID && n.Type == valueobject.NotificationNewMessage
	})).Return(nil).Once()

	d.MessagePosted(context.Background(), f.request, msg)

	repo.AssertExpectations(t)
}

func TestDispatcher_ReviewSubmitted_LinksToReviewedProfile(t *testing.T) {
	f := newFixture(t)
	repo := new(mockNotificationRepo)
	d := notification.NewDispatcher(repo, f.store.Users(), f.store.Skills(), nil)

	review := &entity.Review{ReviewerID: f.sender.ID, ReviewedUserID: f.receiver.ID, Rating: 4}
	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == f.receiver.ID && n.Link == "/users/rita" && n.Type == valueobject.NotificationNewReview
	})).Return(nil).Once()

	d.ReviewSubmitted(context.Background(), review)

	repo.AssertExpectations(t)
}

func TestDispatcher_FailuresAreSwallowed(t *testing.T) {
	f := newFixture(t)
	repo := new(mockNotificationRepo)
	pusher := new(mockPusher)
	d := notification.NewDispatcher(repo, f.store.Users(), f.store.Skills(), pusher)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	assert.NotPanics(t, func() { d.RequestCreated(context.Background(), f.request) })
	pusher.AssertNotCalled(t, "BroadcastToUser", mock.Anything, mock.Anything, mock.Anything)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	pusher.On("BroadcastToUser", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("closed")).Once()

	assert.NotPanics(t, func() { d.RequestAccepted(context.Background(), f.request) })
	repo.AssertExpectations(t)
	pusher.AssertExpectations(t)
}

func TestInbox_OwnershipAndFilters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	inbox := notification.NewInbox(store.Notifications())
	owner, other := uuid.New(), uuid.New()

	first := entity.NewNotification(owner, valueobject.NotificationSystem, "a", "a", "")
	second := entity.NewNotification(owner, valueobject.NotificationSystem, "b", "b", "")
	require.NoError(t, store.Notifications().Create(ctx, first))
	require.NoError(t, store.Notifications().Create(ctx, second))

	err := inbox.MarkAsRead(ctx, first.ID, other)
	assert.Error(t, err)

	require.NoError(t, inbox.MarkAsRead(ctx, first.ID, owner))
	require.NoError(t, inbox.MarkAsRead(ctx, first.ID, owner), "idempotent")

	unread, total, err := inbox.List(ctx, owner, valueobject.NotificationFilterUnread, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, second.ID, unread[0].ID)

	count, err := inbox.CountUnread(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	assert.Error(t, inbox.Delete(ctx, second.ID, other))
	require.NoError(t, inbox.Delete(ctx, second.ID, owner))

	recent, err := inbox.Recent(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
