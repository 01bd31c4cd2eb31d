package rounds

import "time"

// Round is a saved round. Saved rounds are never edited.
type Round struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CourseID  int64     `json:"course_id"`
	TeeBoxID  int64     `json:"tee_box_id"`
	Date      string    `json:"date"`
	Scores    []int     `json:"scores"`
	Putts     []int     `json:"putts"`
	GIR       []bool    `json:"gir"`
	Fairways  []bool    `json:"fairways"`
	Bunkers   []int     `json:"bunkers"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is a saved round joined with its course and tee names.
type HistoryEntry struct {
	Round
	CourseName string `json:"course_name"`
	TeeName    string `json:"tee_name"`
	TeeColor   string `json:"tee_color"`
	TotalScore int    `json:"total_score"`
}

// TotalScore sums the entered scores.
func TotalScore(scores []int) int {
	total := 0
	for _, s := range scores {
		if s > 0 {
			total += s
		}
	}
	return total
}
