package in

import (
	"context"
	"fmt"
	"math"
	"strings"

	progressdto "wellness/internal/modules/progress/dto"
	progressin "wellness/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context) (progressdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Report(ctx context.Context) (string, error) {
	summary, err := h.usecase.Summary(ctx)
	if err != nil {
		return "", err
	}
	return FormatReport(summary), nil
}

// FormatReport renders the stats command output.
func FormatReport(s progressdto.SummaryOutput) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "Streak:        %d days\n", s.Streak)
	fmt.Fprintf(&b, "Sessions:      %d (%d successful)\n", s.Total, s.Successful)
	fmt.Fprintf(&b, "Weekly goal:   %d%%\n", int(math.Round(s.WeeklyPercent)))
	fmt.Fprintf(&b, "Average:       %s\n", s.AverageClock)
	fmt.Fprintf(&b, "Success rate:  %d%%\n", int(math.Round(s.SuccessRate)))
	if len(s.Recent) == 0 {
		b.WriteString("\nNo sessions yet.\n")
		return b.String()
	}
	b.WriteString("\nRecent sessions:\n")
	for _, r := range s.Recent {
		mark := "-"
		if r.Success {
			mark = "+"
		}
		fmt.Fprintf(&b, "  %s %s  %02d:%02d\n", mark, r.Date.Format("2006-01-02 15:04"), r.DurationSeconds/60, r.DurationSeconds%60)
	}
	return b.String()
}
