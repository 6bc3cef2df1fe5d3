package pipeline

import (
	"github.com/haifuri/organize/internal/fonts"
	"github.com/haifuri/organize/internal/subtitle"
)

// RunStats aggregates the step results of one run.
type RunStats struct {
	Fonts       fonts.Result
	Subtitles   subtitle.Result
	Interrupted bool
}

// Failed returns how many moves or renames failed across both steps.
func (s *RunStats) Failed() int {
	return s.Fonts.Failed + s.Subtitles.Failed
}

// Changed returns how many files were moved or renamed.
func (s *RunStats) Changed() int {
	return s.Fonts.Moved + s.Subtitles.Renamed
}
