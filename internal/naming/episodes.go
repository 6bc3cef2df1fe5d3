package naming

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// maxRangeSpan bounds a single "A-B" range so a typo cannot allocate a huge set.
const maxRangeSpan = 9999

// EpisodeSet is a selection of episode numbers. A nil set selects everything.
type EpisodeSet map[int]struct{}

// ParseEpisodes parses selections like "3", "1-5", "1,3,7-9" or "all".
// An empty spec or "all" returns a nil set.
func ParseEpisodes(spec string) (EpisodeSet, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "all") {
		return nil, nil
	}

	set := make(EpisodeSet)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("invalid episode specification %q: empty item", spec)
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := parseEpisode(lo)
			if err != nil {
				return nil, err
			}
			end, err := parseEpisode(hi)
			if err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("invalid episode range %q: end before start", part)
			}
			if end-start > maxRangeSpan {
				return nil, fmt.Errorf("invalid episode range %q: too large", part)
			}
			for ep := start; ep <= end; ep++ {
				set[ep] = struct{}{}
			}
			continue
		}
		ep, err := parseEpisode(part)
		if err != nil {
			return nil, err
		}
		set[ep] = struct{}{}
	}
	return set, nil
}

func parseEpisode(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid episode number %q", s)
	}
	return n, nil
}

// All reports whether the set selects every token.
func (s EpisodeSet) All() bool { return s == nil }

// Allows reports whether a subtitle token is selected. With a non-nil set
// only numeric tokens in the set pass; "NF" or "OVA" never do.
func (s EpisodeSet) Allows(token string) bool {
	if s == nil {
		return true
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return false
	}
	_, ok := s[n]
	return ok
}

// Sorted returns the selected episode numbers in ascending order.
func (s EpisodeSet) Sorted() []int {
	eps := make([]int, 0, len(s))
	for ep := range s {
		eps = append(eps, ep)
	}
	sort.Ints(eps)
	return eps
}

// ReadyEpisodes returns the sorted episode numbers of names (basenames)
// with extension ext whose first two characters are digits. That is the
// rule the mux script uses to discover "all" episodes.
func ReadyEpisodes(names []string, ext string) []int {
	seen := make(map[int]bool)
	var eps []int
	for _, name := range names {
		if !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		if len(stem) < 2 || !isDigit(stem[0]) || !isDigit(stem[1]) {
			continue
		}
		ep := int(stem[0]-'0')*10 + int(stem[1]-'0')
		if !seen[ep] {
			seen[ep] = true
			eps = append(eps, ep)
		}
	}
	sort.Ints(eps)
	return eps
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// FormatEpisodes renders sorted episode numbers with consecutive runs
// collapsed: [1 2 3 5] -> "01-03, 05".
func FormatEpisodes(eps []int) string {
	if len(eps) == 0 {
		return "none"
	}
	var parts []string
	start := eps[0]
	prev := eps[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("%02d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%02d-%02d", start, prev))
		}
	}
	for _, ep := range eps[1:] {
		if ep == prev+1 {
			prev = ep
			continue
		}
		flush()
		start, prev = ep, ep
	}
	flush()
	return strings.Join(parts, ", ")
}
