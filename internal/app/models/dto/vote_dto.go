package dto

import "time"

// VoteRequest is the payload for casting or updating a vote
type VoteRequest struct {
	Category string  `json:"category" binding:"required,oneof=mejor_curso mejor_profesor experiencia_general" example:"mejor_curso"`
	Option   string  `json:"option" binding:"required" example:"Programación en Go"`
	Comment  *string `json:"comment,omitempty" example:"Muy buen curso"`
}

// VoteOption is a selectable answer within a category
type VoteOption struct {
	ID   string `json:"id" example:"programacion-en-go"`
	Name string `json:"name" example:"Programación en Go"`
}

// VoteCategory describes one voting category and the caller's state in it
type VoteCategory struct {
	ID       string        `json:"id" example:"mejor_curso"`
	Name     string        `json:"name" example:"Mejor Curso"`
	Options  []VoteOption  `json:"options"`
	HasVoted bool          `json:"hasVoted" example:"false"`
	Vote     *VoteResponse `json:"vote,omitempty"`
}

// VoteResponse is a registered vote
type VoteResponse struct {
	ID        int64     `json:"id" example:"15"`
	Category  string    `json:"category" example:"mejor_curso"`
	Option    string    `json:"option" example:"Programación en Go"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VoteCategoriesResponse is the student-facing voting page payload
type VoteCategoriesResponse struct {
	Categories []VoteCategory `json:"categories"`
}

// OptionCount is the tally for one option within a category
type OptionCount struct {
	Option     string  `json:"option" example:"Programación en Go"`
	Count      int     `json:"count" example:"8"`
	Percentage float64 `json:"percentage" example:"53.3"`
}

// CategoryStats holds the distribution for one voting category
type CategoryStats struct {
	Category string        `json:"category" example:"mejor_curso"`
	Total    int           `json:"total" example:"15"`
	Options  []OptionCount `json:"options"`
}

// RecentVote is an anonymized recent vote for the activity feed
type RecentVote struct {
	Category  string    `json:"category" example:"mejor_curso"`
	Option    string    `json:"option" example:"Programación en Go"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteComment is an anonymized free-text comment
type VoteComment struct {
	Category  string    `json:"category" example:"experiencia_general"`
	Comment   string    `json:"comment" example:"Muy buena organización"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrendPoint is the vote count for a single day
type TrendPoint struct {
	Date  string `json:"date" example:"2025-06-10"`
	Count int    `json:"count" example:"4"`
}

// VoteStatisticsResponse is the full voting analytics payload
type VoteStatisticsResponse struct {
	TotalVotes        int             `json:"totalVotes" example:"45"`
	TotalVoters       int             `json:"totalVoters" example:"18"`
	TotalStudents     int             `json:"totalStudents" example:"40"`
	ParticipationRate float64         `json:"participationRate" example:"45.0"`
	Categories        []CategoryStats `json:"categories"`
	RecentVotes       []RecentVote    `json:"recentVotes"`
	Comments          []VoteComment   `json:"comments"`
	Trend             []TrendPoint    `json:"trend"`
}

// DeleteVotesResponse reports how many votes were removed
type DeleteVotesResponse struct {
	Deleted int64 `json:"deleted" example:"45"`
}
