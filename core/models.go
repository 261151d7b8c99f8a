package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// CID is a PubChem compound identifier.
type CID int64

func (c CID) String() string {
	return fmt.Sprintf("%d", int64(c))
}

// ID is a unique identifier for index entries.
// It is generated using content-based hashing so that the same
// (cid, section, chunk) triple always maps to the same entry.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category is an audience category used for prompt template selection.
type Category string

const (
	CategoryGeneral      Category = "general"
	CategoryMaterials    Category = "materials"
	CategoryPharmacology Category = "pharmacology"
	CategorySafety       Category = "safety"
	CategorySpectroscopy Category = "spectroscopy"
)

// CategoryPriority orders categories from most to least preferred for
// template selection. Safety always outranks the rest so that hazard
// information is never dropped in favor of a narrower template.
var CategoryPriority = []Category{
	CategorySafety,
	CategoryPharmacology,
	CategorySpectroscopy,
	CategoryMaterials,
	CategoryGeneral,
}

// BondOrder describes one bond between two atoms. I and J index into
// the Structure coordinate list.
type BondOrder struct {
	I     int     `json:"i"`
	J     int     `json:"j"`
	Order float64 `json:"order"`
}

// Structure holds the structural essentials of a molecule.
type Structure struct {
	XYZ          [][3]float64 `json:"xyz,omitempty"`         // Cartesian coordinates (Å), one per atom
	AtomSymbols  []string     `json:"atomSymbols,omitempty"` // element symbols in XYZ order
	BondOrders   []BondOrder  `json:"bondOrders,omitempty"`
	FormalCharge *int         `json:"formalCharge,omitempty"` // net formal charge (e)
}

// Thermo holds gas-phase thermodynamic functions at standard state.
type Thermo struct {
	StandardEnthalpy *float64 `json:"standardEnthalpy,omitempty"` // ΔH°f (kJ/mol)
	Entropy          *float64 `json:"entropy,omitempty"`          // S° (J/mol·K)
	HeatCapacity     *float64 `json:"heatCapacity,omitempty"`     // Cp° (J/mol·K)
}

// Safety holds hazard and regulatory information.
type Safety struct {
	GHSCodes   []string `json:"ghsCodes,omitempty"`   // GHS hazard/precaution codes, e.g. "H301"
	FlashPoint *float64 `json:"flashPoint,omitempty"` // °C
	LD50       *float64 `json:"ld50,omitempty"`       // mg/kg
}

// Spectra summarizes the spectral information available for a molecule.
type Spectra struct {
	Kinds       []string `json:"kinds,omitempty"`       // e.g. "UV", "MS", "IR"
	NotablePeak string   `json:"notablePeak,omitempty"` // e.g. "273 nm", empty if none found
}

// Solubility holds partitioning behaviour.
type Solubility struct {
	LogP *float64  `json:"logP,omitempty"`
	LogS *float64  `json:"logS,omitempty"`
	PKa  []float64 `json:"pKa,omitempty"`
}

// Names holds the naming information collected from the synonyms endpoint.
type Names struct {
	Preferred string   `json:"preferred,omitempty"` // first synonym reported by PubChem
	CASLike   string   `json:"casLike,omitempty"`   // first synonym shaped like a CAS number
	Synonyms  []string `json:"synonyms,omitempty"`
}

// Identifiers holds canonical structural identifiers.
type Identifiers struct {
	SMILES   string `json:"smiles,omitempty"`
	InChI    string `json:"inchi,omitempty"`
	InChIKey string `json:"inchiKey,omitempty"`
}

// Tags holds the classification tags derived by the normalizer. The
// textual tags feed prompt placeholders verbatim; Categories drives
// template selection.
type Tags struct {
	Hazard     string     `json:"hazard"`     // "high hazard", "moderate hazard", "low hazard", "no known hazard"
	Solubility string     `json:"solubility"` // "very soluble" .. "unknown solubility"
	Spectra    string     `json:"spectra"`    // "UV, MS spectra available" or "no spectra available"
	Categories []Category `json:"categories,omitempty"`
}

// Meta holds provenance information. Always present.
type Meta struct {
	Fetched       time.Time `json:"fetched"`
	Source        string    `json:"source"`
	SourceVersion string    `json:"sourceVersion,omitempty"`
}

// MoleculeRecord is the canonical per-molecule record built by the
// normalizer. It is immutable once built; enrichment results are
// attached as a separate sub-record, never written back into the
// normalized fields.
type MoleculeRecord struct {
	CID         CID         `json:"cid"`
	Names       Names       `json:"names"`
	Structure   Structure   `json:"structure"`
	Thermo      Thermo      `json:"thermo"`
	Safety      Safety      `json:"safety"`
	Spectra     Spectra     `json:"spectra"`
	Solubility  Solubility  `json:"solubility"`
	Identifiers Identifiers `json:"identifiers"`
	Tags        Tags        `json:"tags"`
	Enrichment  *Enrichment `json:"enrichment,omitempty"`
	Meta        Meta        `json:"meta"`
}

// DisplayName returns the best available human-readable name.
func (m *MoleculeRecord) DisplayName() string {
	if m.Names.Preferred != "" {
		return m.Names.Preferred
	}
	if m.Names.CASLike != "" {
		return m.Names.CASLike
	}
	return "CID " + m.CID.String()
}

// HasCategory reports whether the record carries the given category tag.
func (m *MoleculeRecord) HasCategory(c Category) bool {
	for _, have := range m.Tags.Categories {
		if have == c {
			return true
		}
	}
	return false
}

// Enrichment is the result of one enrichment request: a short generated
// blurb and, optionally, an embedding vector. Keyed by CID.
type Enrichment struct {
	CID         CID       `json:"cid"`
	Blurb       string    `json:"blurb"`
	Vector      []float32 `json:"vector,omitempty"`
	Model       string    `json:"model,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// IndexEntry is one embedded chunk in the vector index. Entries are
// content-addressed: identical (cid, section, seq) triples map to the
// same ID, so re-ingesting a molecule overwrites rather than duplicates.
type IndexEntry struct {
	Id         ID                `json:"id"`
	CID        CID               `json:"cid"`
	Section    string            `json:"section"` // "summary", "structure", "safety", ...
	Seq        int               `json:"seq"`     // chunk sequence within the section
	Text       string            `json:"text"`
	Vector     []float32         `json:"vector,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	InsertedAt time.Time         `json:"insertedAt"`
}

// ContentKey returns the string the entry ID is derived from.
func (e *IndexEntry) ContentKey() string {
	return fmt.Sprintf("(%d,%s,%d)", e.CID, e.Section, e.Seq)
}

// SearchResult pairs an index entry with its similarity score.
type SearchResult struct {
	Entry *IndexEntry
	Score float32
}
