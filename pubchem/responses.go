package pubchem

// Response shapes for the PubChem PUG REST and PUG-View APIs. Only the
// fields the normalizer consumes are mapped; everything else is dropped
// at decode time.

// RecordResponse is the full-record payload (record_type=3d).
type RecordResponse struct {
	PCCompounds []PCCompound `json:"PC_Compounds"`
}

// PCCompound is a single compound entry in a record response.
type PCCompound struct {
	ID struct {
		ID struct {
			CID int64 `json:"cid"`
		} `json:"id"`
	} `json:"id"`
	Atoms struct {
		AID     []int `json:"aid"`
		Element []int `json:"element"` // atomic numbers
	} `json:"atoms"`
	Bonds struct {
		AID1  []int `json:"aid1"`
		AID2  []int `json:"aid2"`
		Order []int `json:"order"`
	} `json:"bonds"`
	Coords []struct {
		AID        []int `json:"aid"`
		Conformers []struct {
			X []float64 `json:"x"`
			Y []float64 `json:"y"`
			Z []float64 `json:"z"`
		} `json:"conformers"`
	} `json:"coords"`
	Charge int `json:"charge"`
}

// SynonymsResponse is the synonyms-per-CID payload.
type SynonymsResponse struct {
	InformationList struct {
		Information []struct {
			CID     int64    `json:"CID"`
			Synonym []string `json:"Synonym"`
		} `json:"Information"`
	} `json:"InformationList"`
}

// Synonyms returns the synonym list of the first information block.
func (r *SynonymsResponse) Synonyms() []string {
	if len(r.InformationList.Information) == 0 {
		return nil
	}
	return r.InformationList.Information[0].Synonym
}

// PropertiesResponse is the property-table payload.
type PropertiesResponse struct {
	PropertyTable struct {
		Properties []PropertyRow `json:"Properties"`
	} `json:"PropertyTable"`
}

// PropertyRow is one row of a property table.
type PropertyRow struct {
	CID             int64    `json:"CID"`
	CanonicalSMILES string   `json:"CanonicalSMILES"`
	InChI           string   `json:"InChI"`
	InChIKey        string   `json:"InChIKey"`
	XLogP           *float64 `json:"XLogP"`
	Charge          *int     `json:"Charge"`
}

// First returns the first property row, or a zero row if the table is empty.
func (r *PropertiesResponse) First() PropertyRow {
	if len(r.PropertyTable.Properties) == 0 {
		return PropertyRow{}
	}
	return r.PropertyTable.Properties[0]
}

// ViewResponse is the PUG-View payload: a tree of annotated sections.
type ViewResponse struct {
	Record ViewRecord `json:"Record"`
}

// ViewRecord is the root of the PUG-View section tree.
type ViewRecord struct {
	RecordTitle string        `json:"RecordTitle"`
	Section     []ViewSection `json:"Section"`
}

// ViewSection is one node in the PUG-View section tree.
type ViewSection struct {
	TOCHeading  string            `json:"TOCHeading"`
	Section     []ViewSection     `json:"Section"`
	Information []ViewInformation `json:"Information"`
}

// ViewInformation is one annotation inside a section.
type ViewInformation struct {
	Name            string    `json:"Name"`
	ReferenceNumber int       `json:"ReferenceNumber"`
	Value           ViewValue `json:"Value"`
}

// ViewValue is the polymorphic value of an annotation.
type ViewValue struct {
	StringWithMarkup []struct {
		String string `json:"String"`
	} `json:"StringWithMarkup"`
	Number []float64 `json:"Number"`
	Unit   string    `json:"Unit"`
}

// Strings returns all markup-stripped strings of the value.
func (v ViewValue) Strings() []string {
	out := make([]string, 0, len(v.StringWithMarkup))
	for _, s := range v.StringWithMarkup {
		out = append(out, s.String)
	}
	return out
}

// CIDsResponse is the name-to-CID resolution payload.
type CIDsResponse struct {
	IdentifierList struct {
		CID []int64 `json:"CID"`
	} `json:"IdentifierList"`
}
