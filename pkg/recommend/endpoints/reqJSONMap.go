package endpoints

import (
	"github.com/ColinToft/CourseFinder/pkg/recommend"
)

// RecommendRequest is a decoded and validated search.
type RecommendRequest = recommend.SearchParameters

type RecommendResponse struct {
	Message string             `json:"message,omitempty"`
	Courses []recommend.Course `json:"courses"`
}
