package assistant

import (
	"regexp"
	"strings"

	"github.com/utafrali/LocalBizGo/internal/domain"
)

var (
	businessBlockRe = regexp.MustCompile(`(?s)<business>.*?</business>`)
	leftoverTagRe   = regexp.MustCompile(`</?business>|</?data>`)

	idRe          = fieldRe("id")
	nameRe        = fieldRe("name")
	locationRe    = fieldRe("location")
	categoryRe    = fieldRe("category")
	ratingRe      = fieldRe("rating")
	reviewCountRe = fieldRe("reviewCount")
)

func fieldRe(tag string) *regexp.Regexp {
	return regexp.MustCompile(`<` + tag + `>(.*?)</` + tag + `>`)
}

func firstMatch(re *regexp.Regexp, s, fallback string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return fallback
}

// ParseRecommendation extracts the fields of one <business> block. It returns
// nil unless both id and name are present.
func ParseRecommendation(block string) *domain.Recommendation {
	id := idRe.FindStringSubmatch(block)
	name := nameRe.FindStringSubmatch(block)
	if id == nil || name == nil {
		return nil
	}
	return &domain.Recommendation{
		ID:          id[1],
		Name:        name[1],
		Location:    firstMatch(locationRe, block, ""),
		Category:    firstMatch(categoryRe, block, ""),
		Rating:      firstMatch(ratingRe, block, "0"),
		ReviewCount: firstMatch(reviewCountRe, block, "0"),
	}
}

// ParseAnswer splits a model answer into text and business segments in the
// order they appear. Blocks that cannot be parsed are kept as text with the
// wrapper tags removed; blank text is dropped.
func ParseAnswer(answer string) []domain.AnswerSegment {
	segments := make([]domain.AnswerSegment, 0)
	addText := func(s string) {
		s = strings.TrimSpace(leftoverTagRe.ReplaceAllString(s, ""))
		if s != "" {
			segments = append(segments, domain.AnswerSegment{Kind: domain.SegmentText, Text: s})
		}
	}

	pos := 0
	for _, loc := range businessBlockRe.FindAllStringIndex(answer, -1) {
		addText(answer[pos:loc[0]])
		block := answer[loc[0]:loc[1]]
		if rec := ParseRecommendation(block); rec != nil {
			segments = append(segments, domain.AnswerSegment{Kind: domain.SegmentBusiness, Business: rec})
		} else {
			addText(block)
		}
		pos = loc[1]
	}
	addText(answer[pos:])
	return segments
}
