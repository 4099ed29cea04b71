package slot

import "time"

// PostMetrics is the immutable engagement record handed to the scheduler by
// the publishing side after a post has been live long enough to measure.
// Hour/Weekday are the publish bucket (Weekday Monday-first, like Key).
type PostMetrics struct {
	PostID      string    `json:"post_id"`
	Platform    string    `json:"platform"`
	PublishTime time.Time `json:"publish_time"`
	Hour        int       `json:"hour"`
	Weekday     int       `json:"day_of_week"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	Shares      int64     `json:"shares"`
	Saves       int64     `json:"saves"`
	Clicks      int64     `json:"clicks"`
	Reach       int64     `json:"reach"`
	Impressions int64     `json:"impressions"`
}

// EngagementRate is interactions over views. Views is floored at 1 so a post
// with zero recorded views yields a finite rate rather than dividing by zero.
func (m PostMetrics) EngagementRate() float64 {
	views := m.Views
	if views < 1 {
		views = 1
	}
	interactions := m.Likes + m.Comments + m.Shares + m.Saves
	return float64(interactions) / float64(views)
}
