package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

var grainWeightPattern = regexp.MustCompile(`(\d+)\s*(?:GR\b|GRAIN)`)

// bulletTypeTable maps canonical bullet type codes to their textual
// variants, tried in declared order. Longer spelled-out forms are listed
// after their abbreviations but within the same entry, so "FULL METAL
// JACKET" and "FMJ" both resolve to FMJ.
var bulletTypeTable = []struct {
	canonical string
	variants  []string
}{
	{"FMJ", []string{"FMJ", "FULL METAL JACKET"}},
	{"JHP", []string{"JHP", "JACKETED HOLLOW POINT"}},
	{"JSP", []string{"JSP", "JACKETED SOFT POINT"}},
	{"TMJ", []string{"TMJ", "TOTAL METAL JACKET"}},
	{"LRN", []string{"LRN", "LEAD ROUND NOSE"}},
	{"LSWC", []string{"LSWC", "LEAD SEMI WADCUTTER"}},
	{"HP", []string{"HP", "HOLLOW POINT", "HOLLOWPOINT"}},
	{"SP", []string{"SP", "SOFT POINT", "SOFTPOINT"}},
	{"MATCH", []string{"MATCH GRADE", "MATCH"}},
	{"BALL", []string{"BALL AMMO", "BALL"}},
}

// ExtractGrainWeight parses the projectile weight ("124gr", "55 grain") from
// listing text. Returns false when absent; grain weight is optional metadata
// and never a rejection cause.
func ExtractGrainWeight(text string) (int, bool) {
	match := grainWeightPattern.FindStringSubmatch(strings.ToUpper(text))
	if match == nil {
		return 0, false
	}

	grains, err := strconv.Atoi(match[1])
	if err != nil || grains <= 0 {
		return 0, false
	}
	return grains, true
}

// ExtractBulletType resolves the projectile type code (FMJ, JHP, ...) from
// listing text. The multi-letter jacketed variants are declared before their
// two-letter parents so "JHP" never degrades to "HP".
func ExtractBulletType(text string) (string, bool) {
	upper := strings.ToUpper(text)
	for _, entry := range bulletTypeTable {
		for _, variant := range entry.variants {
			if strings.Contains(upper, variant) {
				return entry.canonical, true
			}
		}
	}
	return "", false
}
