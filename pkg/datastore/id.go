package datastore

// Resource ids follow the format {type}_{random}_{parent_fingerprint}_{step}:
// a type prefix, an 8 character random segment, a 6 hex character fingerprint
// of the immediate parent id (RootFingerprint for roots) and the step index
// along the lineage chain.  FormatID and ParseID are total inverses for all
// well-formed ids.

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/dataspine/mcda-go/pkg/errors"
)

const (
	// URIScheme wraps a bare resource id into its URI form.
	URIScheme = "data://"

	// RootFingerprint marks resources without a parent.
	RootFingerprint = "000000"

	randomLen      = 8
	fingerprintLen = 6
)

// ParsedID is the decomposed form of a resource id.
type ParsedID struct {
	Type              ResourceType
	Random            string
	ParentFingerprint string
	Step              int
}

// FormatID assembles a resource id from its components.
func FormatID(typ ResourceType, random, parentFingerprint string, step int) string {
	return fmt.Sprintf("%s_%s_%s_%d", typ.Prefix(), random, parentFingerprint, step)
}

// ParseID decomposes a resource id, failing with a malformed id error on any
// input FormatID could not have produced.
func ParseID(id string) (ParsedID, error) {
	parts := strings.Split(id, "_")
	if len(parts) != 4 {
		return ParsedID{}, errors.MalformedID(id, "expected 4 underscore-separated segments")
	}

	typ, ok := TypeForPrefix(parts[0])
	if !ok {
		return ParsedID{}, errors.MalformedID(id, "unknown type prefix "+parts[0])
	}

	if len(parts[1]) != randomLen || !isLowerHex(parts[1]) {
		return ParsedID{}, errors.MalformedID(id, "random segment must be 8 hex characters")
	}

	if len(parts[2]) != fingerprintLen || !isLowerHex(parts[2]) {
		return ParsedID{}, errors.MalformedID(id, "parent fingerprint must be 6 hex characters")
	}

	step, err := strconv.Atoi(parts[3])
	if err != nil || step < 0 || (parts[3] != "0" && strings.HasPrefix(parts[3], "0")) {
		return ParsedID{}, errors.MalformedID(id, "step must be a non-negative integer")
	}

	return ParsedID{
		Type:              typ,
		Random:            parts[1],
		ParentFingerprint: parts[2],
		Step:              step,
	}, nil
}

// Fingerprint derives the lineage fingerprint recorded in child ids.
func Fingerprint(parentID string) string {
	sum := md5.Sum([]byte(parentID))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// URI wraps a bare id in the data:// scheme.
func URI(id string) string {
	return URIScheme + id
}

// NormalizeID accepts either a bare id or its data:// URI and returns the
// canonical bare id.  Every lookup goes through this single function instead
// of branching on the string shape at each call site.
func NormalizeID(idOrURI string) string {
	return strings.TrimPrefix(idOrURI, URIScheme)
}

func isLowerHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
