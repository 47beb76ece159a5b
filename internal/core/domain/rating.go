package domain

// Rating classifies content sensitivity for tags and media.
// Ratings are ordinal: unrated < safe < questionable < explicit.
type Rating string

const (
	RatingUnrated      Rating = "u"
	RatingSafe         Rating = "s"
	RatingQuestionable Rating = "q"
	RatingExplicit     Rating = "e"
)

// ParseRating normalizes a rating token (single letter or full word).
// Anything unrecognized maps to RatingUnrated.
func ParseRating(s string) Rating {
	switch s {
	case "u", "unrated", "unknown":
		return RatingUnrated
	case "s", "safe":
		return RatingSafe
	case "q", "questionable":
		return RatingQuestionable
	case "e", "explicit":
		return RatingExplicit
	default:
		return RatingUnrated
	}
}

// IsValid reports whether the rating is one of the four known levels.
func (r Rating) IsValid() bool {
	switch r {
	case RatingUnrated, RatingSafe, RatingQuestionable, RatingExplicit:
		return true
	}
	return false
}
