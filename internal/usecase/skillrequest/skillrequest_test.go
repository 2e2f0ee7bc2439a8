package skillrequest_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/valueobject"
	"github.com/skillswap/backend/internal/infrastructure/memory"
	"github.com/skillswap/backend/internal/pkg/apperror"
	"github.com/skillswap/backend/internal/usecase/skillrequest"
)

type recordedEvent struct {
	kind    string
	request uuid.UUID
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) record(kind string, req *entity.SkillRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{kind: kind, request: req.ID})
}

func (n *recordingNotifier) RequestCreated(ctx context.Context, req *entity.SkillRequest) {
	n.record("created", req)
}

func (n *recordingNotifier) RequestAccepted(ctx context.Context, req *entity.SkillRequest) {
	n.record("accepted", req)
}

func (n *recordingNotifier) RequestRejected(ctx context.Context, req *entity.SkillRequest) {
	n.record("rejected", req)
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, e := range n.events {
		if e.kind == kind {
			c++
		}
	}
	return c
}

type testEnv struct {
	store    *memory.Store
	notifier *recordingNotifier
	create   *skillrequest.CreateRequestUseCase
	accept   *skillrequest.AcceptRequestUseCase
	reject   *skillrequest.RejectRequestUseCase
	complete *skillrequest.CompleteRequestUseCase
	cancel   *skillrequest.CancelRequestUseCase
	skill    *entity.Skill
	sender   uuid.UUID
	receiver uuid.UUID
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	receiver := uuid.New()

	skill, err := entity.NewSkill(receiver, entity.SkillInput{Title: "Guitar", Description: "Chords"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Skills().Create(context.Background(), skill); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &testEnv{
		store:    store,
		notifier: notifier,
		create:   skillrequest.NewCreateRequestUseCase(store.SkillRequests(), store.Skills(), notifier),
		accept:   skillrequest.NewAcceptRequestUseCase(store.SkillRequests(), notifier),
		reject:   skillrequest.NewRejectRequestUseCase(store.SkillRequests(), notifier),
		complete: skillrequest.NewCompleteRequestUseCase(store.SkillRequests()),
		cancel:   skillrequest.NewCancelRequestUseCase(store.SkillRequests()),
		skill:    skill,
		sender:   uuid.New(),
		receiver: receiver,
	}
}

func (e *testEnv) newPending(t *testing.T) *entity.SkillRequest {
	t.Helper()
	req, err := e.create.Execute(context.Background(), skillrequest.CreateRequestInput{
		SenderID: e.sender,
		SkillID:  e.skill.ID,
		Message:  "Can you teach me?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return req
}

func TestCreateRequest_Success(t *testing.T) {
	env := newTestEnv(t)
	req := env.newPending(t)

	if req.ReceiverID != env.receiver {
		t.Errorf("expected receiver %s, got %s", env.receiver, req.ReceiverID)
	}
	if req.Status != valueobject.RequestStatusPending {
		t.Errorf("expected pending, got %s", req.Status)
	}
	if env.notifier.count("created") != 1 {
		t.Errorf("expected 1 created event, got %d", env.notifier.count("created"))
	}
}

func TestCreateRequest_OwnSkill(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.create.Execute(context.Background(), skillrequest.CreateRequestInput{
		SenderID: env.receiver,
		SkillID:  env.skill.ID,
		Message:  "me",
	})
	if apperror.CodeOf(err) != apperror.ErrCodeSelfRequest {
		t.Fatalf("expected SELF_REQUEST, got %v", err)
	}
	if env.notifier.count("created") != 0 {
		t.Error("no notification expected on failure")
	}
}

func TestCreateRequest_SkillMissingOrInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.create.Execute(ctx, skillrequest.CreateRequestInput{SenderID: env.sender, SkillID: uuid.New(), Message: "x"})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}

	env.skill.IsActive = false
	if err := env.store.Skills().Update(ctx, env.skill); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = env.create.Execute(ctx, skillrequest.CreateRequestInput{SenderID: env.sender, SkillID: env.skill.ID, Message: "x"})
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND for inactive skill, got %v", err)
	}
}

func TestCreateRequest_DuplicateRedirectsToExisting(t *testing.T) {
	env := newTestEnv(t)
	first := env.newPending(t)

	_, err := env.create.Execute(context.Background(), skillrequest.CreateRequestInput{
		SenderID: env.sender,
		SkillID:  env.skill.ID,
		Message:  "again",
	})

	var appErr *apperror.AppError
	if !asAppError(err, &appErr) || appErr.Code != apperror.ErrCodeDuplicateRequest {
		t.Fatalf("expected DUPLICATE_REQUEST, got %v", err)
	}
	if appErr.Details[apperror.DetailExistingRequestID] != first.ID.String() {
		t.Errorf("expected existing id %s, got %s", first.ID, appErr.Details[apperror.DetailExistingRequestID])
	}
	if env.notifier.count("created") != 1 {
		t.Errorf("expected exactly 1 created event, got %d", env.notifier.count("created"))
	}
}

func TestCreateRequest_AllowedAfterRejection(t *testing.T) {
	env := newTestEnv(t)
	first := env.newPending(t)

	if _, err := env.reject.Execute(context.Background(), first.ID, env.receiver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := env.newPending(t)
	if second.ID == first.ID {
		t.Fatal("expected a new request")
	}
}

func TestAcceptRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := env.newPending(t)

	if _, err := env.accept.Execute(ctx, req.ID, env.sender); !apperror.IsForbidden(err) {
		t.Fatalf("expected FORBIDDEN for sender, got %v", err)
	}

	accepted, err := env.accept.Execute(ctx, req.ID, env.receiver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != valueobject.RequestStatusAccepted || accepted.AcceptedAt == nil {
		t.Errorf("expected accepted with timestamp, got %s", accepted.Status)
	}
	if env.notifier.count("accepted") != 1 {
		t.Errorf("expected 1 accepted event, got %d", env.notifier.count("accepted"))
	}

	if _, err := env.accept.Execute(ctx, req.ID, env.receiver); !apperror.IsInvalidTransition(err) {
		t.Fatalf("expected INVALID_TRANSITION on second accept, got %v", err)
	}
	if env.notifier.count("accepted") != 1 {
		t.Error("failed accept must not notify")
	}
}

func TestRejectRequest_OnlyReceiverFromPending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := env.newPending(t)

	if _, err := env.reject.Execute(ctx, req.ID, uuid.New()); !apperror.IsForbidden(err) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	rejected, err := env.reject.Execute(ctx, req.ID, env.receiver)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.Status != valueobject.RequestStatusRejected {
		t.Errorf("expected rejected, got %s", rejected.Status)
	}
	if _, err := env.cancel.Execute(ctx, req.ID, env.sender); !apperror.IsInvalidTransition(err) {
		t.Fatalf("terminal request must not move, got %v", err)
	}
}

func TestCompleteRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := env.newPending(t)

	if _, err := env.complete.Execute(ctx, req.ID, env.sender); !apperror.IsInvalidTransition(err) {
		t.Fatalf("expected INVALID_TRANSITION from pending, got %v", err)
	}
	if _, err := env.accept.Execute(ctx, req.ID, env.receiver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.complete.Execute(ctx, req.ID, uuid.New()); !apperror.IsForbidden(err) {
		t.Fatalf("expected FORBIDDEN for outsider, got %v", err)
	}

	result, err := env.complete.Execute(ctx, req.ID, env.sender)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.ReviewUnlocked || result.Request.CompletedAt == nil {
		t.Error("expected review unlocked and completed_at set")
	}
}

func TestCancelRequest_OnlySender(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := env.newPending(t)

	if _, err := env.accept.Execute(ctx, req.ID, env.receiver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.cancel.Execute(ctx, req.ID, env.receiver); !apperror.IsForbidden(err) {
		t.Fatalf("expected FORBIDDEN for receiver, got %v", err)
	}
	cancelled, err := env.cancel.Execute(ctx, req.ID, env.sender)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != valueobject.RequestStatusCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}
}

func TestAcceptRequest_ConcurrentCallersExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	req := env.newPending(t)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.accept.Execute(context.Background(), req.ID, env.receiver)
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
				return
			}
			if !apperror.IsInvalidTransition(err) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly 1 successful accept, got %d", successes)
	}
	if env.notifier.count("accepted") != 1 {
		t.Errorf("expected 1 accepted event, got %d", env.notifier.count("accepted"))
	}
}

func TestListRequests_StatusFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	req := env.newPending(t)
	if _, err := env.accept.Execute(ctx, req.ID, env.receiver); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := skillrequest.NewListRequestsUseCase(env.store.SkillRequests())
	pending := valueobject.RequestStatusPending

	all, err := list.Execute(ctx, env.receiver, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all.Received) != 1 || len(all.Sent) != 0 {
		t.Errorf("expected 1 received / 0 sent, got %d / %d", len(all.Received), len(all.Sent))
	}

	filtered, err := list.Execute(ctx, env.sender, &pending)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered.Sent) != 0 {
		t.Errorf("expected no pending sent requests, got %d", len(filtered.Sent))
	}

	get := skillrequest.NewGetRequestUseCase(env.store.SkillRequests())
	if _, err := get.Execute(ctx, req.ID, uuid.New()); !apperror.IsForbidden(err) {
		t.Fatalf("expected FORBIDDEN for outsider, got %v", err)
	}
}
