package analysis

import (
	"regexp"
	"strconv"
	"strings"

	"alertpilot/src/model"
)

// Conservative defaults applied when a marker is missing from the reply.
// Defaulting biases toward inaction so unparseable output never triggers a
// trade.
const (
	DefaultConfidence = 50
	DefaultAction     = model.RecommendHold
	DefaultRisk       = model.RiskMedium
)

// Extraction is the structured triple recovered from one agent reply, plus
// the names of any fields that fell back to defaults.
type Extraction struct {
	Confidence int
	Action     string
	RiskLevel  string
	Defaulted  []string
}

// ResponseExtractor recovers the decision triple from an agent reply. The
// regex implementation is the legacy-compatibility path; a schema-constrained
// implementation can replace it without touching the pipeline.
type ResponseExtractor interface {
	Extract(response string) Extraction
}

var (
	confidencePattern = regexp.MustCompile(`(?i)confidence:?\s*(\d{1,3})\s*%`)
	actionPattern     = regexp.MustCompile(`(?i)recommended action:?\s*(buy|sell|hold)`)
	riskPattern       = regexp.MustCompile(`(?i)risk level:?\s*(low|medium|high)`)
)

// RegexExtractor scrapes the three markers out of free text. First match
// wins for each marker; matching is case-insensitive and deterministic, so
// re-running on the same text always yields the same triple.
type RegexExtractor struct{}

func (RegexExtractor) Extract(response string) Extraction {
	out := Extraction{
		Confidence: DefaultConfidence,
		Action:     DefaultAction,
		RiskLevel:  DefaultRisk,
	}

	if m := confidencePattern.FindStringSubmatch(response); m != nil {
		n, _ := strconv.Atoi(m[1]) // pattern guarantees 1-3 digits
		if n > 100 {
			n = 100
		}
		out.Confidence = n
	} else {
		out.Defaulted = append(out.Defaulted, "confidence")
	}

	if m := actionPattern.FindStringSubmatch(response); m != nil {
		out.Action = strings.ToLower(m[1])
	} else {
		out.Defaulted = append(out.Defaulted, "recommendedAction")
	}

	if m := riskPattern.FindStringSubmatch(response); m != nil {
		out.RiskLevel = strings.ToLower(m[1])
	} else {
		out.Defaulted = append(out.Defaulted, "riskLevel")
	}

	return out
}
