package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/Robotu-ai/robotu-molkit/core"
)

// Key prefixes for different data types
const (
	moleculePrefix   = "molrec"
	rawPayloadPrefix = "molraw"
	indexEntryPrefix = "idxent"
	indexCIDPrefix   = "idxcid"
)

// makeMoleculeKey generates a key for a molecule record by CID.
func makeMoleculeKey(cid core.CID) []byte {
	return []byte(fmt.Sprintf("%s:%d", moleculePrefix, cid))
}

// makeRawPayloadKey generates a key for a cached raw payload by CID.
func makeRawPayloadKey(cid core.CID) []byte {
	return []byte(fmt.Sprintf("%s:%d", rawPayloadPrefix, cid))
}

// makeIndexEntryKey generates a key for an index entry by ID.
func makeIndexEntryKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", indexEntryPrefix, id))
}

// makeIndexCIDKey generates a composite key for the CID index.
// Format: prefix:cid:entryID, fixed-width BigEndian so lexicographic
// sort groups a molecule's entries together.
func makeIndexCIDKey(cid core.CID, id core.ID) []byte {
	prefix := indexCIDPrefix + ":"
	buf := make([]byte, len(prefix)+16)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(cid))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialIndexCIDKey generates a partial key for scanning all
// entries of one molecule.
func makePartialIndexCIDKey(cid core.CID) []byte {
	prefix := indexCIDPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(cid))
	return buf
}

// entryIDFromCIDKey recovers the entry ID from a CID index key.
func entryIDFromCIDKey(key []byte) core.ID {
	return core.ID(binary.BigEndian.Uint64(key[len(key)-8:]))
}
