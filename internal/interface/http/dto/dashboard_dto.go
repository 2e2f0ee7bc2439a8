package dto

import (
	"github.com/skillswap/backend/internal/usecase/dashboard"
)

type DashboardCountsResponse struct {
	SkillsOffered    int `json:"skills_offered"`
	RequestsSent     int `json:"requests_sent"`
	RequestsReceived int `json:"requests_received"`
	ReviewsReceived  int `json:"reviews_received"`
}

type DashboardResponse struct {
	User            UserResponse            `json:"user"`
	Counts          DashboardCountsResponse `json:"counts"`
	PendingSent     []SkillRequestResponse  `json:"pending_sent"`
	PendingReceived []SkillRequestResponse  `json:"pending_received"`
	Active          []SkillRequestResponse  `json:"active"`
	RecentReviews   []ReviewResponse        `json:"recent_reviews"`
	AverageRating   float64                 `json:"average_rating"`
	Completion      int                     `json:"profile_completion"`
	Recommended     []SkillResponse         `json:"recommended_skills"`
}

func ToDashboardResponse(o *dashboard.Overview) DashboardResponse {
	return DashboardResponse{
		User: ToOwnUserResponse(o.User),
		Counts: DashboardCountsResponse{
			SkillsOffered:    o.Counts.SkillsOffered,
			RequestsSent:     o.Counts.RequestsSent,
			RequestsReceived: o.Counts.RequestsReceived,
			ReviewsReceived:  o.Counts.ReviewsReceived,
		},
		PendingSent:     ToSkillRequestResponses(o.PendingSent),
		PendingReceived: ToSkillRequestResponses(o.PendingReceived),
		Active:          ToSkillRequestResponses(o.Active),
		RecentReviews:   ToReviewResponses(o.RecentReviews),
		AverageRating:   o.AverageRating,
		Completion:      o.Completion,
		Recommended:     ToSkillResponses(o.Recommended),
	}
}

type DashboardStatsResponse struct {
	SentByStatus    map[string]int  `json:"sent_by_status"`
	RatingBreakdown map[int]int     `json:"rating_breakdown"`
	MostViewed      []SkillResponse `json:"most_viewed_skills"`
}

func ToDashboardStatsResponse(s *dashboard.Stats) DashboardStatsResponse {
	byStatus := make(map[string]int, len(s.SentByStatus))
	for status, n := range s.SentByStatus {
		byStatus[string(status)] = n
	}
	return DashboardStatsResponse{
		SentByStatus:    byStatus,
		RatingBreakdown: s.RatingBreakdown,
		MostViewed:      ToSkillResponses(s.MostViewed),
	}
}
