package dashboard

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/skillswap/backend/internal/domain/entity"
	"github.com/skillswap/backend/internal/domain/repository"
	"github.com/skillswap/backend/internal/domain/valueobject"
)

const (
	listLimit        = 5
	recommendedLimit = 6
)

type Counts struct {
	SkillsOffered    int
	RequestsSent     int
	RequestsReceived int
	ReviewsReceived  int
}

type Overview struct {
	User            *entity.User
	Counts          Counts
	PendingSent     []*entity.SkillRequest
	PendingReceived []*entity.SkillRequest
	Active          []*entity.SkillRequest
	RecentReviews   []*entity.Review
	AverageRating   float64
	Completion      int
	Recommended     []*entity.Skill
}

type Stats struct {
	SentByStatus    map[valueobject.RequestStatus]int
	RatingBreakdown map[int]int
	MostViewed      []*entity.Skill
}

type DashboardUseCase struct {
	userRepo      repository.UserRepository
	userSkillRepo repository.UserSkillRepository
	skillRepo     repository.SkillRepository
	requestRepo   repository.SkillRequestRepository
	reviewRepo    repository.ReviewRepository
}

func NewDashboardUseCase(
	userRepo repository.UserRepository,
	userSkillRepo repository.UserSkillRepository,
	skillRepo repository.SkillRepository,
	requestRepo repository.SkillRequestRepository,
	reviewRepo repository.ReviewRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		userRepo:      userRepo,
		userSkillRepo: userSkillRepo,
		skillRepo:     skillRepo,
		requestRepo:   requestRepo,
		reviewRepo:    reviewRepo,
	}
}

func (uc *DashboardUseCase) Overview(ctx context.Context, actorID uuid.UUID) (*Overview, error) {
	user, err := uc.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	_, offered, err := uc.skillRepo.Search(ctx, repository.SkillFilter{OwnerID: &actorID, Limit: 1})
	if err != nil {
		return nil, err
	}
	byStatus, err := uc.requestRepo.CountByStatusForSender(ctx, actorID)
	if err != nil {
		return nil, err
	}
	received, err := uc.requestRepo.CountForReceiver(ctx, actorID)
	if err != nil {
		return nil, err
	}
	stats, err := uc.reviewRepo.StatsForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	pending := valueobject.RequestStatusPending
	pendingSent, err := uc.requestRepo.ListBySender(ctx, actorID, &pending, listLimit)
	if err != nil {
		return nil, err
	}
	pendingReceived, err := uc.requestRepo.ListByReceiver(ctx, actorID, &pending, listLimit)
	if err != nil {
		return nil, err
	}
	active, err := uc.activeRequests(ctx, actorID)
	if err != nil {
		return nil, err
	}
	reviews, err := uc.reviewRepo.ListByReviewedUser(ctx, actorID, listLimit)
	if err != nil {
		return nil, err
	}
	recommended, err := uc.Recommended(ctx, actorID)
	if err != nil {
		return nil, err
	}

	sent := 0
	for _, n := range byStatus {
		sent += n
	}

	return &Overview{
		User: user,
		Counts: Counts{
			SkillsOffered:    offered,
			RequestsSent:     sent,
			RequestsReceived: received,
			ReviewsReceived:  stats.Count,
		},
		PendingSent:     pendingSent,
		PendingReceived: pendingReceived,
		Active:          active,
		RecentReviews:   reviews,
		AverageRating:   stats.Average(),
		Completion:      user.ProfileCompletion(),
		Recommended:     recommended,
	}, nil
}

// activeRequests принятые заявки с обеих сторон, свежие первыми.
func (uc *DashboardUseCase) activeRequests(ctx context.Context, actorID uuid.UUID) ([]*entity.SkillRequest, error) {
	accepted := valueobject.RequestStatusAccepted
	asSender, err := uc.requestRepo.ListBySender(ctx, actorID, &accepted, listLimit)
	if err != nil {
		return nil, err
	}
	asReceiver, err := uc.requestRepo.ListByReceiver(ctx, actorID, &accepted, listLimit)
	if err != nil {
		return nil, err
	}

	all := append(asSender, asReceiver...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	if len(all) > listLimit {
		all = all[:listLimit]
	}
	return all, nil
}

func (uc *DashboardUseCase) Stats(ctx context.Context, actorID uuid.UUID) (*Stats, error) {
	byStatus, err := uc.requestRepo.CountByStatusForSender(ctx, actorID)
	if err != nil {
		return nil, err
	}
	sent := make(map[valueobject.RequestStatus]int, len(valueobject.AllRequestStatuses()))
	for _, s := range valueobject.AllRequestStatuses() {
		sent[s] = byStatus[s]
	}

	ratings, err := uc.reviewRepo.StatsForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	breakdown := make(map[int]int, valueobject.MaxRating)
	for stars := valueobject.MinRating; stars <= valueobject.MaxRating; stars++ {
		breakdown[stars] = ratings.StarCount(stars)
	}

	mostViewed, _, err := uc.skillRepo.Search(ctx, repository.SkillFilter{
		OwnerID: &actorID,
		Sort:    valueobject.SkillSortPopular,
		Limit:   listLimit,
	})
	if err != nil {
		return nil, err
	}

	return &Stats{
		SentByStatus:    sent,
		RatingBreakdown: breakdown,
		MostViewed:      mostViewed,
	}, nil
}

// Recommended активные чужие навыки по первому навыку из списка "хочу изучить",
// лучшие по рейтингу. Без таких навыков в профиле подбираются самые популярные.
func (uc *DashboardUseCase) Recommended(ctx context.Context, actorID uuid.UUID) ([]*entity.Skill, error) {
	userSkills, err := uc.userSkillRepo.ListByUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	filter := repository.SkillFilter{
		ExcludeOwner: &actorID,
		ActiveOnly:   true,
		Sort:         valueobject.SkillSortPopular,
		Limit:        recommendedLimit,
	}
	for _, us := range userSkills {
		if us.SkillType == valueobject.UserSkillWant {
			filter.Query = us.SkillName
			filter.Sort = valueobject.SkillSortRating
			break
		}
	}

	skills, _, err := uc.skillRepo.Search(ctx, filter)
	return skills, err
}
