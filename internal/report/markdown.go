// Package report renders a FullReport as Markdown or a standalone HTML page.
package report

import (
	"fmt"
	"strings"

	"koistat/app"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MultiplicityRows caps the host-star table.
const MultiplicityRows = 10

// Markdown renders every section that is present.
func Markdown(r *app.FullReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Kepler Objects of Interest: statistical report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if r.Source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", r.Source)
	}
	fmt.Fprintf(&b, "- Objects: %d\n\n", r.Objects)

	if r.Probability != nil {
		writeProbability(&b, r.Probability)
	}
	if r.Radius != nil {
		writeRadius(&b, r.Radius)
	}
	if r.Moments != nil {
		writeMoments(&b, r.Moments)
	}
	if r.Correlation != nil {
		writeCorrelation(&b, r.Correlation)
	}
	if r.Hypothesis != nil {
		writeHypothesis(&b, r.Hypothesis)
	}
	return b.String()
}

// HTML renders the Markdown report as a complete HTML document.
func HTML(r *app.FullReport) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "KOI report " + r.RunID.String(),
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(Markdown(r)), p, renderer)
}

func writeProbability(b *strings.Builder, p *app.ProbabilityReport) {
	fmt.Fprintf(b, "## Conditional probability by signal-to-noise ratio\n\n")
	fmt.Fprintf(b, "N = %d objects (confirmed or false positive).\n\n", p.N)
	fmt.Fprintf(b, "| Bin | Range | Count | P(bin) | P(%s \\| bin) |\n", p.Target)
	fmt.Fprintf(b, "|---|---|---:|---:|---:|\n")
	for i, term := range p.Total.Terms {
		count := 0
		if i < len(p.Counts) {
			count = p.Counts[i].Count
		}
		fmt.Fprintf(b, "| %s | %s | %d | %.4f | %.4f |\n", term.Category, binRange(p, i), count, term.Marginal, term.Conditional)
	}
	fmt.Fprintf(b, "\nTotal probability: reconstructed P(%s) = %.4f, observed = %.4f.\n\n",
		p.Target, p.Total.Reconstructed, p.Total.Direct)

	if len(p.Bayes) > 0 {
		fmt.Fprintf(b, "| Bin | P(bin \\| %s) via Bayes | observed |\n|---|---:|---:|\n", p.Target)
		for _, rev := range p.Bayes {
			fmt.Fprintf(b, "| %s | %.4f | %.4f |\n", rev.Category, rev.ViaTheorem, rev.DirectCount)
		}
		b.WriteString("\n")
	}
}

func binRange(p *app.ProbabilityReport, i int) string {
	if i >= len(p.Bins) {
		return ""
	}
	bin := p.Bins[i]
	if bin.Unbounded() {
		return fmt.Sprintf("≥ %g", bin.Lower)
	}
	return fmt.Sprintf("[%g, %g)", bin.Lower, bin.Upper)
}

func writeRadius(b *strings.Builder, r *app.RadiusReport) {
	fmt.Fprintf(b, "## Planet radius distribution\n\n")
	fmt.Fprintf(b, "Normal fit over %d rocky planets: μ = %.4f, σ = %.4f Earth radii (median %.4f, range %.2f to %.2f).\n\n",
		r.Fit.N, r.Fit.Mu, r.Fit.Sigma, r.Summary.Median, r.Summary.Min, r.Summary.Max)
	fmt.Fprintf(b, "Earth (%.1f): z = %.4f, density = %.4f.\n\n", r.EarthRadius, r.EarthZ, r.EarthDensity)
	fmt.Fprintf(b, "Earth analogues: %d of %d confirmed planets, p = %.5f.\n\n",
		r.EarthAnalogs.Successes, r.EarthAnalogs.Trials, r.EarthAnalogs.P)
	fmt.Fprintf(b, "Scanning %d new stars: P(none) = %.4f, P(at least one) = %.4f.\n\n", r.FutureStars, r.PNone, r.PAtLeastOne)
}

func writeMoments(b *strings.Builder, m *app.MomentsReport) {
	fmt.Fprintf(b, "## Moments\n\n")
	fmt.Fprintf(b, "| Moment | Radius (n = %d) |\n|---|---:|\n", m.Radius.N)
	fmt.Fprintf(b, "| Mean | %.4f |\n| Variance | %.4f |\n| Skewness | %.4f |\n| Excess kurtosis | %.4f |\n\n",
		m.Radius.Mean, m.Radius.Variance, m.Radius.Skewness, m.Radius.Kurtosis)
	fmt.Fprintf(b, "The radius distribution is %s.\n\n", m.Skew)

	fmt.Fprintf(b, "Planets per host star over %d systems: mean %.4f, variance %.4f, largest %d.\n\n",
		m.Multiplicity.Groups, m.Multiplicity.Mean, m.Multiplicity.Variance, m.Multiplicity.MaxCount)
	rows := min(len(m.Multiplicity.Counts), MultiplicityRows)
	if rows > 0 {
		b.WriteString("| Host (kepid) | Planets |\n|---|---:|\n")
		for _, g := range m.Multiplicity.Counts[:rows] {
			fmt.Fprintf(b, "| %s | %d |\n", g.Key, g.Count)
		}
		b.WriteString("\n")
	}
}

func writeCorrelation(b *strings.Builder, c *app.CorrelationReport) {
	fmt.Fprintf(b, "## Correlation and sampling\n\n")
	verdict := "not significant"
	if c.Significant {
		verdict = "significant"
	}
	fmt.Fprintf(b, "Stellar radius vs orbital period: r = %.4f, t = %.4f on %d df, p = %.4e (%s at α = %g).\n\n",
		c.Pearson.R, c.Pearson.T, c.Pearson.DegreesOfFreedom, c.Pearson.PValue, verdict, c.Alpha)

	s := c.Sampling
	fmt.Fprintf(b, "| Sampling distribution (n = %d, %d samples, seed %d) | Value |\n|---|---:|\n", s.SampleSize, s.NumSamples, c.Seed)
	fmt.Fprintf(b, "| Population mean | %.4f |\n| Mean of sample means | %.4f |\n", s.PopulationMean, s.MeanOfMeans)
	fmt.Fprintf(b, "| Theoretical standard error | %.4f |\n| Empirical standard error | %.4f |\n\n", s.TheoreticalStdError, s.EmpiricalStdError)
}

func writeHypothesis(b *strings.Builder, h *app.HypothesisReport) {
	r := h.Result
	fmt.Fprintf(b, "## Hypothesis test\n\n")
	fmt.Fprintf(b, "H₀: mean radius of habitable-zone rocky planets = %.4f.\n\n", r.HypothesizedMean)
	fmt.Fprintf(b, "n = %d, mean = %.4f, s = %.4f, SE = %.4f, z = %.4f, p = %.4e.\n\n",
		r.N, r.SampleMean, r.SampleStdDev, r.StandardError, r.Z, r.PValue)
	if len(r.Decisions) > 0 {
		b.WriteString("| α | Critical z | Decision |\n|---:|---:|---|\n")
		for _, d := range r.Decisions {
			fmt.Fprintf(b, "| %g | ±%.4f | %s |\n", d.Alpha, d.CriticalZ, d.Verdict())
		}
		b.WriteString("\n")
	}
}
