package catalog

import (
	"strings"
)

// signatureSeparator joins normalized option values into a signature.
const signatureSeparator = "|"

// nameSegmentSeparator joins "Group: Value" pairs into a display name.
const nameSegmentSeparator = " / "

// Signature derives the durable identity of a variant from its ordered option
// values. Values are trimmed, lowercased, and empty values are dropped; the
// survivors are joined with "|" in the order supplied. The signature is a pure
// function of the value tuple, so renaming an option group never changes it.
// Order matters: it encodes option-group order, not a set.
func Signature(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		normalized := normalizeValue(v)
		if normalized == "" {
			continue
		}
		parts = append(parts, normalized)
	}
	return strings.Join(parts, signatureSeparator)
}

// SignatureFromName recovers a signature from a variant display name of the
// form "Size: M / Color: Black". Each segment's value is the substring after
// the first colon. This lets reconciliation match historical records that
// were stored before signatures were persisted alongside names.
func SignatureFromName(name string) string {
	segments := strings.Split(name, nameSegmentSeparator)
	values := make([]string, 0, len(segments))
	for _, segment := range segments {
		if idx := strings.Index(segment, ":"); idx >= 0 {
			values = append(values, segment[idx+1:])
		} else {
			values = append(values, segment)
		}
	}
	return Signature(values)
}

// DisplayName builds the human-readable variant name from option group names
// and the chosen value per group, e.g. "Size: M / Color: Black".
func DisplayName(groupNames, values []string) string {
	segments := make([]string, 0, len(values))
	for i, v := range values {
		segments = append(segments, groupNames[i]+": "+v)
	}
	return strings.Join(segments, nameSegmentSeparator)
}
