package naming

import (
	"regexp"
)

// TokenPattern finds "<show> - <token>" inside a subtitle filename. The
// token is a run of Unicode letters and digits and ends at the first other
// character, so "High School Fleet - 01 [BD].ass" yields "01".
type TokenPattern struct {
	show string
	re   *regexp.Regexp
}

// NewTokenPattern compiles the pattern for show. The show name is matched
// literally and case-sensitively.
func NewTokenPattern(show string) *TokenPattern {
	return &TokenPattern{
		show: show,
		re:   regexp.MustCompile(regexp.QuoteMeta(show+" - ") + `([\p{L}\p{N}]+)`),
	}
}

// Extract returns the token from the first match in name.
func (p *TokenPattern) Extract(name string) (string, bool) {
	m := p.re.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// String returns the human-readable form used in log lines.
func (p *TokenPattern) String() string {
	return p.show + " - <token>"
}
