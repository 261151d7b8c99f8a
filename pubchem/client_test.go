package pubchem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordBody = `{
  "PC_Compounds": [{
    "id": {"id": {"cid": 2519}},
    "atoms": {"aid": [1, 2], "element": [8, 6]},
    "bonds": {"aid1": [1], "aid2": [2], "order": [1]},
    "coords": [{"aid": [1, 2], "conformers": [{"x": [0.0, 1.2], "y": [0.0, 0.0], "z": [0.0, 0.0]}]}],
    "charge": 0
  }]
}`

const synonymsBody = `{
  "InformationList": {"Information": [{"CID": 2519, "Synonym": ["caffeine", "58-08-2", "guaranine"]}]}
}`

const propertiesBody = `{
  "PropertyTable": {"Properties": [{
    "CID": 2519,
    "CanonicalSMILES": "CN1C=NC2=C1C(=O)N(C(=O)N2C)C",
    "InChIKey": "RYYVLZVUVIJVGH-UHFFFAOYSA-N",
    "XLogP": -0.1,
    "Charge": 0
  }]}
}`

const viewBody = `{
  "Record": {
    "RecordTitle": "Caffeine",
    "Section": [{
      "TOCHeading": "Safety and Hazards",
      "Section": [{
        "TOCHeading": "GHS Classification",
        "Information": [{"Name": "GHS Hazard Statements", "Value": {"StringWithMarkup": [{"String": "H302: Harmful if swallowed"}]}}]
      }]
    }]
  }
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/record/"):
			w.Write([]byte(recordBody))
		case strings.Contains(r.URL.Path, "/synonyms/"):
			w.Write([]byte(synonymsBody))
		case strings.Contains(r.URL.Path, "/property/"):
			w.Write([]byte(propertiesBody))
		case strings.Contains(r.URL.Path, "/pug_view/"):
			w.Write([]byte(viewBody))
		case strings.Contains(r.URL.Path, "/name/caffeine/"):
			w.Write([]byte(`{"IdentifierList": {"CID": [2519]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFetch(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	payload, err := client.Fetch(context.Background(), 2519)
	require.NoError(t, err)

	require.Len(t, payload.Record.PCCompounds, 1)
	compound := payload.Record.PCCompounds[0]
	assert.Equal(t, int64(2519), compound.ID.ID.CID)
	assert.Equal(t, []int{8, 6}, compound.Atoms.Element)
	assert.NotEmpty(t, payload.RawRecord)

	assert.Equal(t, []string{"caffeine", "58-08-2", "guaranine"}, payload.Synonyms.Synonyms())

	row := payload.Properties.First()
	assert.Equal(t, "CN1C=NC2=C1C(=O)N(C(=O)N2C)C", row.CanonicalSMILES)
	require.NotNil(t, row.XLogP)
	assert.InDelta(t, -0.1, *row.XLogP, 1e-9)

	assert.Equal(t, "Caffeine", payload.View.Record.RecordTitle)
}

func TestFetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Fetch(context.Background(), 999999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetch_InvalidCID(t *testing.T) {
	client := NewClient()
	_, err := client.Fetch(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidCID)
}

func TestFetch_MissingOptionalPayloads(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/record/") {
			w.Write([]byte(recordBody))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	payload, err := client.Fetch(context.Background(), 2519)
	require.NoError(t, err)

	// Synonyms, properties, and view are best-effort.
	assert.Empty(t, payload.Synonyms.Synonyms())
	assert.Empty(t, payload.Properties.First().CanonicalSMILES)
	assert.Empty(t, payload.View.Record.Section)
}

func TestFetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Fetch(context.Background(), 2519)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestResolveName(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))

	cid, err := client.ResolveName(context.Background(), "caffeine")
	require.NoError(t, err)
	assert.EqualValues(t, 2519, cid)

	_, err = client.ResolveName(context.Background(), "no-such-compound")
	assert.ErrorIs(t, err, ErrNotFound)
}
