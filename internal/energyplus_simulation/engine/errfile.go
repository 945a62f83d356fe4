package engine

import (
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Files EnergyPlus writes into its output directory.
const (
	ErrFile   = "eplusout.err"
	CSVFile   = "eplusout.csv"
	TableFile = "eplustbl.htm"
	ESOFile   = "eplusout.eso"
)

// OutputFiles lists the result files checked after every run.
var OutputFiles = []string{CSVFile, TableFile, ESOFile, ErrFile}

// DefaultTailLines is how much of eplusout.err a run keeps.
const DefaultTailLines = 15

var completionRe = regexp.MustCompile(`EnergyPlus (Completed Successfully|Terminated)--.*?(\d+)\s+Warning;\s*(\d+)\s+Severe Errors`)

// ErrSummary is what the error file says about a run.
type ErrSummary struct {
	Warnings     int
	SevereErrors int
	Fatal        bool
	Completed    bool
}

// ReadTail returns the last n lines of the file at path. Bytes that are
// not valid UTF-8 are dropped.
func ReadTail(path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := splitLines(strings.ToValidUTF8(string(data), ""))
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// Summarize counts warnings and severe errors in the lines of an error
// file. The engine's closing line wins over the counted markers.
func Summarize(lines []string) ErrSummary {
	var s ErrSummary
	for _, l := range lines {
		switch {
		case strings.Contains(l, "** Warning **"):
			s.Warnings++
		case strings.Contains(l, "** Severe  **"):
			s.SevereErrors++
		case strings.Contains(l, "**  Fatal  **"):
			s.Fatal = true
		}

		if m := completionRe.FindStringSubmatch(l); m != nil {
			s.Completed = m[1] == "Completed Successfully"
			s.Warnings, _ = strconv.Atoi(m[2])
			s.SevereErrors, _ = strconv.Atoi(m[3])
		}
	}
	return s
}

func ReadErrFile(path string) (ErrSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ErrSummary{}, err
	}
	return Summarize(splitLines(strings.ToValidUTF8(string(data), ""))), nil
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
