// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"fmt"
	"math"
	"strings"
)

// optimalDensity maps a section type to its recommended citations-per-100-
// words range. Section types without an entry use defaultDensityRange.
var optimalDensity = map[string][2]float64{
	"introduccion":  {1, 3},
	"marco_teorico": {3, 7},
	"metodologia":   {2, 5},
	"resultados":    {0.5, 2},
	"discusion":     {2, 5},
	"conclusiones":  {0.5, 2},
}

var defaultDensityRange = [2]float64{1, 5}

// DensityReport classifies the citation density of a section's rendered
// text against the optimal range for its section type.
type DensityReport struct {
	// Density is citations per 100 words, rounded to two decimals.
	Density float64 `json:"densidad" yaml:"densidad"`

	// Citations is the heuristic citation count.
	Citations int `json:"citas_total" yaml:"citas_total"`

	// Words is the total word count.
	Words int `json:"palabras_total" yaml:"palabras_total"`

	// Range is the optimal [min, max] for the section type.
	Range [2]float64 `json:"rango_optimo" yaml:"rango_optimo"`

	// Optimal reports whether Density falls within Range.
	Optimal bool `json:"optimo" yaml:"optimo"`

	// Assessment is the human-readable classification.
	Assessment string `json:"recomendacion" yaml:"recomendacion"`
}

// AnalyzeDensity measures citation density in rendered text. The citation
// count is a deliberate heuristic inherited from the original tool: open
// parentheses minus occurrences of "http", which miscounts parenthetical
// prose unrelated to citations. It classifies, it does not count precisely.
func AnalyzeDensity(text, sectionType string) DensityReport {
	words := len(strings.Fields(text))
	citations := strings.Count(text, "(") - strings.Count(text, "http")

	rng, ok := optimalDensity[sectionType]
	if !ok {
		rng = defaultDensityRange
	}

	report := DensityReport{Citations: citations, Words: words, Range: rng}
	if words == 0 {
		report.Assessment = "sin contenido"
		return report
	}

	density := float64(citations) / (float64(words) / 100)
	report.Density = math.Round(density*100) / 100

	switch {
	case density < rng[0]:
		report.Assessment = fmt.Sprintf(
			"pocas citas (%.1f por 100 palabras); se recomienda %g-%g",
			density, rng[0], rng[1])
	case density > rng[1]:
		report.Assessment = fmt.Sprintf(
			"demasiadas citas (%.1f por 100 palabras); se recomienda %g-%g",
			density, rng[0], rng[1])
	default:
		report.Optimal = true
		report.Assessment = "densidad de citas óptima"
	}
	return report
}
