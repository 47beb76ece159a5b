package domain

// Role determines which ratings a caller may see.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// CallerContext carries the visibility attributes of one caller
// session. The search evaluator and the similarity ranker both filter
// through it; it is passed explicitly rather than read from ambient
// state.
type CallerContext struct {
	Role Role `json:"role"`
	SFW  bool `json:"sfw"`
}

// IsAdmin reports whether the caller holds the administrator role.
func (c CallerContext) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CensorshipTerms returns the terms unconditionally conjoined to every
// query for this caller: SFW sessions only see safe media, and
// non-admins never see explicit or unrated media.
func (c CallerContext) CensorshipTerms() []SearchTerm {
	var terms []SearchTerm
	if c.SFW {
		terms = append(terms, RatingTerm{Rating: RatingSafe})
	}
	if !c.IsAdmin() {
		terms = append(terms,
			NegativeTerm{Inner: RatingTerm{Rating: RatingExplicit}},
			NegativeTerm{Inner: RatingTerm{Rating: RatingUnrated}},
		)
	}
	return terms
}

// CanSee evaluates just the censorship terms against a medium, used
// for direct lookups and similarity candidates.
func (c CallerContext) CanSee(m *IndexedMedium) bool {
	for _, term := range c.CensorshipTerms() {
		if !term.AppliesTo(m) {
			return false
		}
	}
	return true
}
