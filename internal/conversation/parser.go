// Package conversation parses line-mode input for the guide and the
// troubleshooting dialog when no interactive terminal is available.
package conversation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hammamikhairi/ottobrew/internal/domain"
	"github.com/hammamikhairi/ottobrew/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple patterns.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log.With("parser")}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(next|n|continue|skip)$`), domain.IntentNext},
		{regexp.MustCompile(`(?i)^(back|b|prev|previous|undo)$`), domain.IntentBack},
		{regexp.MustCompile(`(?i)^(reset|start over|restart|again|try another( issue)?)$`), domain.IntentReset},
		{regexp.MustCompile(`(?i)^(quit|exit|q|stop|done)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
	}
	return p
}

// Parse converts user input into an intent. A bare number, or "pick N" /
// "select N", chooses the N-th option (1-based).
func (p *KeywordParser) Parse(input string) domain.Intent {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return domain.Intent{Type: domain.IntentUnknown}
	}

	p.log.Debug("parsing input: %q", trimmed)

	if n, ok := parseChoice(trimmed); ok {
		return domain.Intent{Type: domain.IntentChoose, Choice: n, Raw: trimmed}
	}

	for _, rule := range p.patterns {
		if rule.regex.MatchString(trimmed) {
			p.log.Debug("matched intent: %s", rule.intent)
			return domain.Intent{Type: rule.intent, Raw: trimmed}
		}
	}

	p.log.Debug("no match, returning unknown intent")
	return domain.Intent{Type: domain.IntentUnknown, Raw: trimmed}
}

func parseChoice(s string) (int, bool) {
	lower := strings.ToLower(s)
	for _, prefix := range []string{"select ", "pick ", "#"} {
		if strings.HasPrefix(lower, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}
	if !isDigits(s) || len(s) > 3 {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
