package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SearchTerm is one parsed query term. The variant set is closed: the
// evaluator's conjunction loop relies on every variant answering
// AppliesTo, and on String being a canonical form usable for
// deduplication of repeated query tokens.
type SearchTerm interface {
	// AppliesTo reports whether the medium matches this term.
	AppliesTo(m *IndexedMedium) bool

	// String returns the canonical token form of the term.
	String() string
}

// Operator is a comparison operator in counting terms. ":" and "="
// both mean equality and canonicalize to "=".
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpLess         Operator = "<"
	OpGreater      Operator = ">"
	OpLessEqual    Operator = "<="
	OpGreaterEqual Operator = ">="
)

// Compare applies the operator to (actual, wanted).
func (op Operator) Compare(actual, wanted int) bool {
	switch op {
	case OpEqual:
		return actual == wanted
	case OpNotEqual:
		return actual != wanted
	case OpLess:
		return actual < wanted
	case OpGreater:
		return actual > wanted
	case OpLessEqual:
		return actual <= wanted
	case OpGreaterEqual:
		return actual >= wanted
	}
	return false
}

// PositiveTerm matches media whose Searchable set contains the name.
type PositiveTerm struct {
	Name string
}

func (t PositiveTerm) AppliesTo(m *IndexedMedium) bool {
	return m.Searchable.Has(t.Name)
}

func (t PositiveTerm) String() string { return t.Name }

// ExactTerm matches media whose Innate set contains the name.
// Implications and aliases do not count.
type ExactTerm struct {
	Name string
}

func (t ExactTerm) AppliesTo(m *IndexedMedium) bool {
	return m.Innate.Has(t.Name)
}

func (t ExactTerm) String() string { return "+" + t.Name }

// RatingTerm matches media with exactly the given rating.
type RatingTerm struct {
	Rating Rating
}

func (t RatingTerm) AppliesTo(m *IndexedMedium) bool {
	return m.Rating == t.Rating
}

func (t RatingTerm) String() string { return "rating:" + string(t.Rating) }

// CountingTerm compares the innate tag count of a medium.
type CountingTerm struct {
	Op     Operator
	Number int
}

func (t CountingTerm) AppliesTo(m *IndexedMedium) bool {
	return t.Op.Compare(len(m.Innate), t.Number)
}

func (t CountingTerm) String() string {
	return fmt.Sprintf("tags%s%d", t.Op, t.Number)
}

// CategoryTerm compares the count of innate tags carrying a category
// prefix, e.g. "artisttags>0" counts innate "artist:*" names.
type CategoryTerm struct {
	Category string
	Op       Operator
	Number   int
}

func (t CategoryTerm) AppliesTo(m *IndexedMedium) bool {
	return t.Op.Compare(m.InnateWithCategory(t.Category), t.Number)
}

func (t CategoryTerm) String() string {
	return fmt.Sprintf("%stags%s%d", t.Category, t.Op, t.Number)
}

// NegativeTerm is the boolean complement of its inner term.
type NegativeTerm struct {
	Inner SearchTerm
}

func (t NegativeTerm) AppliesTo(m *IndexedMedium) bool {
	return !t.Inner.AppliesTo(m)
}

func (t NegativeTerm) String() string { return "-" + t.Inner.String() }

var (
	countingPattern = regexp.MustCompile(`^tags(:|=|!=|<=|>=|<|>)([0-9]+)$`)
	categoryPattern = regexp.MustCompile(`^([a-z]+)tags(:|=|!=|<=|>=|<|>)([0-9]+)$`)
	ratingPattern   = regexp.MustCompile(`^rating:(u|s|q|e|unrated|unknown|safe|questionable|explicit)$`)
	exactPattern    = regexp.MustCompile(`^\+([a-z0-9_.:-]+)$`)
	positivePattern = regexp.MustCompile(`^[a-z0-9_.:-]+$`)
)

func parseOperator(s string) Operator {
	if s == ":" {
		return OpEqual
	}
	return Operator(s)
}

// ParseTerm parses one query token. The most specific pattern wins:
// counting, then category counting, rating, exact, positive. A leading
// "-" negates whatever the rest parses to. The second return value is
// false for unparseable tokens, which callers silently drop.
func ParseTerm(token string) (SearchTerm, bool) {
	if strings.HasPrefix(token, "-") {
		inner, ok := ParseTerm(token[1:])
		if !ok {
			return nil, false
		}
		return NegativeTerm{Inner: inner}, true
	}

	if m := countingPattern.FindStringSubmatch(token); m != nil {
		n, _ := strconv.Atoi(m[2])
		return CountingTerm{Op: parseOperator(m[1]), Number: n}, true
	}
	if m := categoryPattern.FindStringSubmatch(token); m != nil {
		n, _ := strconv.Atoi(m[3])
		return CategoryTerm{Category: m[1], Op: parseOperator(m[2]), Number: n}, true
	}
	if m := ratingPattern.FindStringSubmatch(token); m != nil {
		return RatingTerm{Rating: ParseRating(m[1])}, true
	}
	if m := exactPattern.FindStringSubmatch(token); m != nil {
		return ExactTerm{Name: m[1]}, true
	}
	if positivePattern.MatchString(token) {
		return PositiveTerm{Name: token}, true
	}
	return nil, false
}

// ParseTerms parses a token list, dropping unparseable tokens and
// deduplicating by canonical string form. Order of first occurrence is
// preserved.
func ParseTerms(tokens []string) []SearchTerm {
	seen := make(map[string]struct{}, len(tokens))
	terms := make([]SearchTerm, 0, len(tokens))
	for _, token := range tokens {
		term, ok := ParseTerm(token)
		if !ok {
			continue
		}
		key := term.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		terms = append(terms, term)
	}
	return terms
}
