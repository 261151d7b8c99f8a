package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/Robotu-ai/robotu-molkit/core"
)

const (
	defaultChunkSize    = 250
	defaultChunkOverlap = 40
)

// section is one named block of searchable text built from a record.
type section struct {
	name string
	text string
}

// buildSections flattens a record into its searchable text sections.
// Only sections with content are produced. The summary section prefers
// the generated blurb; without one it falls back to the derived tags so
// a record ingested with enrichment skipped is still findable.
func buildSections(record *core.MoleculeRecord) []section {
	var sections []section
	add := func(name, text string) {
		text = strings.TrimSpace(text)
		if text != "" {
			sections = append(sections, section{name: name, text: text})
		}
	}

	name := record.DisplayName()

	if record.Enrichment != nil && record.Enrichment.Blurb != "" {
		add("summary", record.Enrichment.Blurb)
	} else {
		add("summary", fmt.Sprintf("%s (CID %s): %s, %s, %s.",
			name, record.CID, record.Tags.Hazard, record.Tags.Solubility, record.Tags.Spectra))
	}

	if len(record.Names.Synonyms) > 0 {
		add("names", fmt.Sprintf("%s is also known as: %s.",
			name, strings.Join(record.Names.Synonyms, ", ")))
	}

	var structure []string
	if record.Identifiers.SMILES != "" {
		structure = append(structure, "SMILES "+record.Identifiers.SMILES)
	}
	if record.Identifiers.InChIKey != "" {
		structure = append(structure, "InChIKey "+record.Identifiers.InChIKey)
	}
	if n := len(record.Structure.AtomSymbols); n > 0 {
		structure = append(structure, fmt.Sprintf("%d atoms, %d bonds", n, len(record.Structure.BondOrders)))
	}
	if len(structure) > 0 {
		add("structure", fmt.Sprintf("Structure of %s: %s.", name, strings.Join(structure, "; ")))
	}

	var safety []string
	if len(record.Safety.GHSCodes) > 0 {
		safety = append(safety, "GHS codes "+strings.Join(record.Safety.GHSCodes, ", "))
	}
	if record.Safety.FlashPoint != nil {
		safety = append(safety, fmt.Sprintf("flash point %s °C", formatFloat(*record.Safety.FlashPoint)))
	}
	if record.Safety.LD50 != nil {
		safety = append(safety, fmt.Sprintf("LD50 %s mg/kg", formatFloat(*record.Safety.LD50)))
	}
	if len(safety) > 0 {
		add("safety", fmt.Sprintf("%s is classified as %s: %s.", name, record.Tags.Hazard, strings.Join(safety, "; ")))
	}

	var properties []string
	if record.Solubility.LogP != nil {
		properties = append(properties, "logP "+formatFloat(*record.Solubility.LogP))
	}
	if len(record.Solubility.PKa) > 0 {
		pka := make([]string, len(record.Solubility.PKa))
		for i, v := range record.Solubility.PKa {
			pka[i] = formatFloat(v)
		}
		properties = append(properties, "pKa "+strings.Join(pka, ", "))
	}
	if record.Thermo.StandardEnthalpy != nil {
		properties = append(properties, fmt.Sprintf("standard enthalpy %s kJ/mol", formatFloat(*record.Thermo.StandardEnthalpy)))
	}
	if record.Thermo.Entropy != nil {
		properties = append(properties, fmt.Sprintf("entropy %s J/mol·K", formatFloat(*record.Thermo.Entropy)))
	}
	if record.Thermo.HeatCapacity != nil {
		properties = append(properties, fmt.Sprintf("heat capacity %s J/mol·K", formatFloat(*record.Thermo.HeatCapacity)))
	}
	if len(properties) > 0 {
		add("properties", fmt.Sprintf("%s is %s: %s.", name, record.Tags.Solubility, strings.Join(properties, "; ")))
	}

	if len(record.Spectra.Kinds) > 0 {
		text := fmt.Sprintf("Spectra available for %s: %s.", name, strings.Join(record.Spectra.Kinds, ", "))
		if record.Spectra.NotablePeak != "" {
			text += " Most notable peak: " + record.Spectra.NotablePeak + "."
		}
		add("spectra", text)
	}

	return sections
}

// chunkSection splits a section's text into overlapping chunks sized
// for embedding. Short sections come back as a single chunk.
func chunkSection(splitter textsplitter.TextSplitter, s section) ([]string, error) {
	chunks, err := splitter.SplitText(s.text)
	if err != nil {
		return nil, fmt.Errorf("split section %s: %w", s.name, err)
	}
	if len(chunks) == 0 {
		chunks = []string{s.text}
	}
	return chunks, nil
}

// entryMetadata builds the filterable metadata attached to every index
// entry of a record.
func entryMetadata(record *core.MoleculeRecord) map[string]string {
	metadata := map[string]string{
		"name":       record.DisplayName(),
		"hazard":     record.Tags.Hazard,
		"solubility": record.Tags.Solubility,
		"spectra":    record.Tags.Spectra,
	}
	if len(record.Tags.Categories) > 0 {
		categories := make([]string, len(record.Tags.Categories))
		for i, c := range record.Tags.Categories {
			categories[i] = string(c)
		}
		metadata["categories"] = strings.Join(categories, ",")
	}
	if record.Solubility.LogP != nil {
		metadata["logp"] = formatFloat(*record.Solubility.LogP)
	}
	return metadata
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
