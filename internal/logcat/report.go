package logcat

import (
	"encoding/json"
	"fmt"
	"io"
)

// textWriter wraps an io.Writer and captures the first error.
type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) println(args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintln(tw.w, args...)
}

// WriteText renders the summary as a human-readable report.
func (s *Summary) WriteText(w io.Writer) error {
	tw := &textWriter{w: w}

	if s.File != "" {
		tw.printf("File:         %s\n", s.File)
	}
	tw.printf("Analyzed:     %s\n", s.AnalyzedAt.Format("2006-01-02 15:04:05"))
	tw.printf("Lines:        %d (%d unstructured)\n", s.TotalLines, s.Unstructured)
	tw.printf("Fatals/ANRs:  %d\n", s.FatalsOrANRs)

	tw.println()
	tw.println("Levels:")
	for l := LevelVerbose; l <= LevelFatal; l++ {
		name := l.String()
		if count, ok := s.Levels[name]; ok {
			tw.printf("  %c %-8s %d\n", l.Char(), name, count)
		}
	}

	if len(s.TopTags) > 0 {
		tw.println()
		tw.printf("Top %d tags by error count:\n", len(s.TopTags))
		for i, tc := range s.TopTags {
			tw.printf("  %2d. %-32s %6d lines  %6d errors\n", i+1, tc.Tag, tc.Count, tc.Errors)
		}
	}

	return tw.err
}

// WriteJSON renders the summary as indented JSON. The counts are the same
// ones WriteText prints.
func (s *Summary) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}
