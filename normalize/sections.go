package normalize

import (
	"regexp"
	"strings"

	"github.com/Robotu-ai/robotu-molkit/pubchem"
)

var (
	ghsCodePattern = regexp.MustCompile(`\b[HP]\d{3}\b`)
	casPattern     = regexp.MustCompile(`^\d+-\d+-\d+$`)
	peakPattern    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*(?:nm|m/z))`)
)

// findSection walks the PUG-View section tree depth-first and returns
// the first section with the given TOC heading.
func findSection(sections []pubchem.ViewSection, heading string) *pubchem.ViewSection {
	for i := range sections {
		if sections[i].TOCHeading == heading {
			return &sections[i]
		}
		if nested := findSection(sections[i].Section, heading); nested != nil {
			return nested
		}
	}
	return nil
}

// sectionInformation returns the information entries of the named
// section, or nil when the section is absent.
func sectionInformation(sections []pubchem.ViewSection, heading string) []pubchem.ViewInformation {
	sec := findSection(sections, heading)
	if sec == nil {
		return nil
	}
	return sec.Information
}

// extractNumber returns the first numeric value of the named entry.
func extractNumber(info []pubchem.ViewInformation, name string) *float64 {
	for _, entry := range info {
		if entry.Name != name {
			continue
		}
		if len(entry.Value.Number) > 0 {
			v := entry.Value.Number[0]
			return &v
		}
	}
	return nil
}

// extractGHSCodes collects GHS hazard and precaution codes from the
// text of the given information entries, deduplicated in first-seen order.
func extractGHSCodes(info []pubchem.ViewInformation) []string {
	var blob strings.Builder
	for _, entry := range info {
		for _, s := range entry.Value.Strings() {
			blob.WriteString(s)
			blob.WriteString(" ")
		}
	}

	seen := make(map[string]bool)
	var codes []string
	for _, code := range ghsCodePattern.FindAllString(blob.String(), -1) {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}

// extractPeak scans spectral sections for the first wavelength or
// mass-to-charge value, e.g. "273 nm" or "194.08 m/z".
func extractPeak(sections []pubchem.ViewSection) string {
	for _, sec := range sections {
		for _, entry := range sec.Information {
			for _, s := range entry.Value.Strings() {
				if m := peakPattern.FindString(s); m != "" {
					return m
				}
			}
		}
		if peak := extractPeak(sec.Section); peak != "" {
			return peak
		}
	}
	return ""
}

// spectraKinds lists the spectral categories present under the
// "Spectral Information" section, with the " Spectra" suffix trimmed.
func spectraKinds(sections []pubchem.ViewSection) []string {
	spec := findSection(sections, "Spectral Information")
	if spec == nil {
		return nil
	}
	kinds := make([]string, 0, len(spec.Section))
	for _, sub := range spec.Section {
		kind := strings.TrimSuffix(sub.TOCHeading, " Spectra")
		if kind != "" {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
