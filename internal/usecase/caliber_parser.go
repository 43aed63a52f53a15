package usecase

import (
	"regexp"
	"strings"
)

// caliberEntry maps one canonical caliber name to the textual variants that
// identify it. Matching is performed against upper-cased text.
type caliberEntry struct {
	canonical string
	variants  []*regexp.Regexp
}

// caliberTable is the fixed, ordered canonical caliber mapping. Order
// matters: entries are tried top to bottom and the first canonical whose any
// variant matches wins, so ambiguous text like ".223 / 5.56 NATO" always
// resolves to the earlier entry.
var caliberTable = []caliberEntry{
	{"9MM", compileVariants(`9\s*MM`, `9X19`, `9\s*LUGER`, `9\s*PARA`)},
	{".223", compileVariants(`\.223`, `223\s*REM`, `223\s*REMINGTON`)},
	{"5.56", compileVariants(`5\.56`, `5\.56X45`, `5\.56\s*NATO`)},
	{".308", compileVariants(`\.308`, `308\s*WIN`, `308\s*WINCHESTER`, `7\.62X51`)},
	{".45 ACP", compileVariants(`\.45\s*ACP`, `45\s*ACP`, `\.45\s*AUTO`)},
	{".40 S&W", compileVariants(`\.40\s*S&W`, `40\s*S&W`, `\.40\s*SW`)},
	{".380", compileVariants(`\.380`, `380\s*ACP`, `380\s*AUTO`)},
	{"7.62X39", compileVariants(`7\.62X39`, `7\.62\s*X\s*39`)},
	{"22LR", compileVariants(`22\s*LR`, `\.22\s*LR`, `22\s*LONG\s*RIFLE`)},
	{"300 BLK", compileVariants(`300\s*BLK`, `300\s*BLACKOUT`, `300\s*AAC`)},
	{"6.5 CM", compileVariants(`6\.5\s*CM`, `6\.5\s*CREEDMOOR`)},
	{".30-06", compileVariants(`\.30-06`, `30-06`, `30\.06`)},
}

func compileVariants(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// ExtractCaliber returns the first canonical caliber whose any variant
// matches the text. The boolean is false when nothing matches; downstream
// logic treats an unknown caliber as a hard rejection.
func ExtractCaliber(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	upper := strings.ToUpper(text)
	for _, entry := range caliberTable {
		for _, variant := range entry.variants {
			if variant.MatchString(upper) {
				return entry.canonical, true
			}
		}
	}

	return "", false
}

// ExtractCalibers returns every canonical caliber present in the text, in
// table order without duplicates. Email deals frequently advertise several
// calibers at once.
func ExtractCalibers(text string) []string {
	if text == "" {
		return nil
	}

	upper := strings.ToUpper(text)
	var found []string
	for _, entry := range caliberTable {
		for _, variant := range entry.variants {
			if variant.MatchString(upper) {
				found = append(found, entry.canonical)
				break
			}
		}
	}

	return found
}

// CanonicalCalibers returns the declared caliber order, primarily for
// validation and diagnostics.
func CanonicalCalibers() []string {
	names := make([]string, 0, len(caliberTable))
	for _, entry := range caliberTable {
		names = append(names, entry.canonical)
	}
	return names
}
