package catalog

import (
	"github.com/google/uuid"
)

// ReconcileResult classifies the outcome of diffing a freshly generated
// combination set against the previously persisted one.
type ReconcileResult struct {
	// Merged holds the combinations to render and persist, in generated order.
	Merged []Combination
	// KeptCount is the number of generated combinations whose signature
	// already existed.
	KeptCount int
	// AddedCount is the number of combinations with no prior match.
	AddedCount int
	// ArchivedIDs lists identities of existing variants whose signature no
	// longer appears among the generated set. The records themselves are not
	// mutated here; the caller marks them archived.
	ArchivedIDs []uuid.UUID
}

// Reconcile diffs generated combinations against the existing persisted set,
// matching by signature. A match carries forward the existing record's
// identity, SKU, price, active flag, and stock reference while taking the
// freshly generated name and signature, so renaming an option group never
// loses user-entered data. Existing entries without a surviving signature are
// reported as archived, never deleted.
//
// If an existing record has no stored signature it is recovered from the
// display name. When two distinct option configurations normalize to the same
// signature they are merged silently; signatures encode value order but not
// group names, and that residual ambiguity is accepted behavior.
func Reconcile(generated, existing []Combination) ReconcileResult {
	existingBySig := make(map[string]Combination, len(existing))
	for _, e := range existing {
		sig := e.Signature
		if sig == "" {
			sig = SignatureFromName(e.Name)
		}
		existingBySig[sig] = e
	}

	result := ReconcileResult{
		Merged:      make([]Combination, 0, len(generated)),
		ArchivedIDs: make([]uuid.UUID, 0),
	}

	generatedSigs := make(map[string]struct{}, len(generated))
	for _, g := range generated {
		generatedSigs[g.Signature] = struct{}{}

		prior, found := existingBySig[g.Signature]
		if !found {
			result.AddedCount++
			result.Merged = append(result.Merged, g)
			continue
		}

		merged := prior
		merged.Name = g.Name
		merged.Signature = g.Signature
		merged.IsNew = false
		result.KeptCount++
		result.Merged = append(result.Merged, merged)
	}

	for _, e := range existing {
		sig := e.Signature
		if sig == "" {
			sig = SignatureFromName(e.Name)
		}
		if _, survives := generatedSigs[sig]; !survives && e.ID != nil {
			result.ArchivedIDs = append(result.ArchivedIDs, *e.ID)
		}
	}

	return result
}
