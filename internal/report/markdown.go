package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/triplefit/internal/analysis"
)

// Markdown renders a compact report suitable for standalone docs.
func Markdown(rep *analysis.Report, p Precision) string {
	var b strings.Builder
	b.WriteString("[RUN SUMMARY]\n")
	if rep.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", rep.Source))
	}
	b.WriteString(fmt.Sprintf("Run: %s\n", rep.RunID))
	b.WriteString(fmt.Sprintf("Datasets: %d\n", len(rep.Outcomes)))
	b.WriteString(fmt.Sprintf("Rating: %s (%s)\n\n", rep.Rating, rep.Assessment))

	b.WriteString("[BEST COMBINATIONS]\n")
	b.WriteString("| Dataset | Target | n₁ | n₂ | n₃ | Result | ε (%) | \\|r - t\\| |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: | ---: |\n")
	for _, o := range rep.Outcomes {
		c := o.Match.Combination
		b.WriteString(fmt.Sprintf("| %s | %.*e | %g | %g | %g | %.*e | %.*f | %.*e |\n",
			o.Label,
			p.Scientific, o.Target,
			c.N1, c.N2, c.N3,
			p.Scientific, o.Match.Result,
			p.Error, o.Match.Error,
			p.Scientific, o.Delta(),
		))
	}

	s := rep.Statistics
	b.WriteString("\n[ERROR STATISTICS]\n")
	b.WriteString(fmt.Sprintf("- mean %.*f%%, median %.*f%%\n", p.Error, s.Mean, p.Error, s.Median))
	b.WriteString(fmt.Sprintf("- std dev %.*f%%, variance %.*f\n", p.Error, s.StdDev, p.Error, s.Variance))
	b.WriteString(fmt.Sprintf("- min %.*f%%, max %.*f%%, range %.*f%%\n", p.Error, s.Min, p.Error, s.Max, p.Error, s.Range))
	b.WriteString(fmt.Sprintf("- Q1 %.*f%%, Q3 %.*f%%, IQR %.*f%%\n", p.Error, s.Q1, p.Error, s.Q3, p.Error, s.IQR))

	b.WriteString("\n[ERROR TOLERANCE]\n")
	for _, c := range rep.Tolerance {
		b.WriteString(fmt.Sprintf("- ε < %.1f%%: %d/%d datasets (%.1f%%)\n", c.Threshold, c.Count, c.Total, c.Percent()))
	}
	return b.String()
}
