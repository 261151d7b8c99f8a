// Package ingest orchestrates the full pipeline for a batch of
// compounds: fetch from PubChem, normalize into molecule records,
// enrich with generated blurbs, chunk the record's text sections, embed
// the chunks, and write everything to storage. Batches run on a worker
// pool; one compound failing does not abort the rest.
package ingest
