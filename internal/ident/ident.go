// Package ident derives stable identifiers for harvested elements.
//
// Identifiers are a pure function of their inputs so that harvesting the same
// tree twice yields byte-identical authoring, regardless of traversal order.
package ident

import (
	"crypto/sha1"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// Category prefixes for generated identifiers.
const (
	ComponentPrefix = "cmp"
	DirectoryPrefix = "dir"
	FilePrefix      = "fil"
)

// AutoGUID asks the packager to generate the component GUID at build time.
const AutoGUID = "*"

// guidNamespace scopes name-based component GUIDs.
var guidNamespace = uuid.MustParse("6f0c3b6e-2c8e-5d4b-9b1a-7e3f2d8c4a15")

// segmentEscaper escapes the join separator and the escape character itself.
var segmentEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`)

// Generate returns prefix followed by a 27 character suffix derived from the
// SHA-1 of segments joined with "|". The suffix uses the base64 alphabet with
// '+' and '/' replaced by '.' and '_' so the result is a valid identifier.
//
// A "|" or "\" inside a segment is backslash-escaped before joining, so
// ("a|b") and ("a", "b") yield different ids. Neither character can appear in
// a Windows file name, so ids for such names match the plain join.
func Generate(prefix string, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = segmentEscaper.Replace(seg)
	}
	sum := sha1.Sum([]byte(strings.Join(escaped, "|")))

	var b strings.Builder
	b.Grow(len(prefix) + base64.RawStdEncoding.EncodedLen(len(sum)))
	b.WriteString(prefix)
	for _, r := range base64.RawStdEncoding.EncodeToString(sum[:]) {
		switch r {
		case '+':
			b.WriteRune('.')
		case '/':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ComponentGUID returns a name-based UUID for a component keyed by its
// source reference. The same source always yields the same GUID.
func ComponentGUID(source string) string {
	return strings.ToUpper(uuid.NewSHA1(guidNamespace, []byte(source)).String())
}
