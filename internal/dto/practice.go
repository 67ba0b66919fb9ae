package dto

import (
	"time"

	"github.com/estudiolink/estudio_backend/internal/core/domain"
)

// CreatePracticeRequest defines the data needed to create a new practice.
type CreatePracticeRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=150"`
	Description string `json:"description"`
}

// AddMemberRequest defines the payload for adding a user to a practice.
type AddMemberRequest struct {
	UserID string                  `json:"userID" binding:"required"`
	Role   domain.UserPracticeRole `json:"role" binding:"required,oneof=ADMIN ADVISOR CLIENT READONLY"`
}

// UpdateMemberRoleRequest defines the payload for changing a member's role.
type UpdateMemberRoleRequest struct {
	Role domain.UserPracticeRole `json:"role" binding:"required,oneof=ADMIN ADVISOR CLIENT READONLY REMOVED"`
}

// PracticeResponse defines the data returned for a practice.
type PracticeResponse struct {
	PracticeID  string    `json:"practiceID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToPracticeResponse converts a domain.Practice to PracticeResponse
func ToPracticeResponse(p *domain.Practice) PracticeResponse {
	return PracticeResponse{
		PracticeID:  p.PracticeID,
		Name:        p.Name,
		Description: p.Description,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

// MemberResponse defines the data returned for a practice membership.
type MemberResponse struct {
	UserID   string                  `json:"userID"`
	UserName string                  `json:"userName"`
	Role     domain.UserPracticeRole `json:"role"`
	JoinedAt time.Time               `json:"joinedAt"`
}

// ListPracticesResponse wraps the list of practices.
type ListPracticesResponse struct {
	Practices []PracticeResponse `json:"practices"`
}

// ToListPracticesResponse converts domain practices to the list response.
func ToListPracticesResponse(ps []domain.Practice) ListPracticesResponse {
	res := make([]PracticeResponse, len(ps))
	for i := range ps {
		res[i] = ToPracticeResponse(&ps[i])
	}
	return ListPracticesResponse{Practices: res}
}

// ToMemberResponses converts domain memberships to member responses.
func ToMemberResponses(ms []domain.UserPractice) []MemberResponse {
	res := make([]MemberResponse, len(ms))
	for i, m := range ms {
		res[i] = MemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return res
}
