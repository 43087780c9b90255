package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/growbro/backend/internal/domain/shared"
)

const (
	skuTitleMaxLen     = 20
	skuMaxSuffixProbes = 10000
)

// asciiFold strips diacritic marks so accented product titles still produce
// clean SKU prefixes.
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// slugify uppercases the input, folds diacritics, and strips everything that
// is not a letter or digit.
func slugify(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range strings.ToUpper(folded) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AutoSKU derives a stock keeping unit from the product title and the variant
// signature. The title contributes an alphanumeric uppercase slug capped at
// 20 characters; the signature follows uppercased with its separators turned
// into hyphens. When the candidate collides with a taken SKU a numeric suffix
// is appended, starting at 2. Generation gives up after 10,000 probes rather
// than loop forever.
func AutoSKU(productTitle, signature string, taken map[string]struct{}) (string, error) {
	prefix := slugify(productTitle)
	if len(prefix) > skuTitleMaxLen {
		prefix = prefix[:skuTitleMaxLen]
	}
	if prefix == "" {
		prefix = "SKU"
	}

	sigPart := strings.ToUpper(strings.ReplaceAll(signature, signatureSeparator, "-"))

	base := prefix
	if sigPart != "" {
		base = prefix + "-" + sigPart
	}

	if _, exists := taken[base]; !exists {
		return base, nil
	}
	for n := 2; n <= skuMaxSuffixProbes; n++ {
		candidate := fmt.Sprintf("%s-%d", base, n)
		if _, exists := taken[candidate]; !exists {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("SKU_GENERATION_EXHAUSTED",
		fmt.Sprintf("could not find a free SKU for %q after %d attempts", base, skuMaxSuffixProbes))
}
