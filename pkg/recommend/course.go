package recommend

import (
	"strconv"

	"github.com/ColinToft/CourseFinder/internal/util/geo"
)

// A Course is a fetched path whose length is close enough to the desired distance.
// Its ID is only meaningful within the response that produced it.
type Course struct {
	ID          string   `json:"id"`
	Coordinates geo.Path `json:"coordinates"`
	LengthKM    float64  `json:"length_km"`
}

// CourseID names the path found at position index of the fetched list.
func CourseID(index int) string {
	return "path_" + strconv.Itoa(index)
}

// Filter keeps the paths whose length lies in [desiredKM-toleranceKM, desiredKM+toleranceKM].
// Input order is preserved and every course keeps the position of its path in paths.
func Filter(paths []geo.Path, desiredKM, toleranceKM float64) []Course {
	minLen := desiredKM - toleranceKM
	maxLen := desiredKM + toleranceKM

	courses := []Course{}
	for i, path := range paths {
		length := geo.PathLength(path)
		if length < minLen || length > maxLen {
			continue
		}
		courses = append(courses, Course{
			ID:          CourseID(i),
			Coordinates: path,
			LengthKM:    geo.Round(length, 2),
		})
	}
	return courses
}
