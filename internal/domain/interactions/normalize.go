package interactions

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizeName deja nombres y términos comparables por substring:
// sin acentos, sin puntuación ("St. John's" => "st johns"), case-folded y con espacios colapsados.
// Guiones y barras cuentan como separador de palabras.
func normalizeName(s string) string {
	return normalizeWith(nameTransformer(), s)
}

// nameTransformer guarda estado: uno nuevo por llamada.
func nameTransformer() transform.Transformer {
	return transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			switch r {
			case '-', '/', '_', '+':
				return ' '
			}
			return r
		}),
		runes.Remove(runes.In(unicode.P)),
		norm.NFC,
	)
}

// normalizeWith devuelve "" si la transformación falla: un nombre sin normalizar nunca matchea.
func normalizeWith(t transform.Transformer, s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}

	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}
