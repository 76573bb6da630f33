package i18n_test

import (
	"testing"

	"github.com/reoring/gondarray/i18n"
)

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string {
	return "CODE:" + code
}

func TestSetLanguage(t *testing.T) {
	defer i18n.SetLanguage("en")

	if got := i18n.T("shape_mismatch", nil); got != "shape does not match" {
		t.Fatalf("en: %q", got)
	}
	i18n.SetLanguage("ja")
	if got := i18n.T("shape_mismatch", nil); got != "shapeが一致しません" {
		t.Fatalf("ja: %q", got)
	}
	// Unknown languages fall back to English.
	i18n.SetLanguage("fr")
	if got := i18n.T("no_backend", nil); got != "no backend accepts the input" {
		t.Fatalf("fallback: %q", got)
	}
}

func TestSetTranslator(t *testing.T) {
	defer i18n.SetTranslator(nil)

	i18n.SetTranslator(upperTranslator{})
	if got := i18n.T("dtype_mismatch", nil); got != "CODE:dtype_mismatch" {
		t.Fatalf("custom translator: %q", got)
	}
	i18n.SetTranslator(nil)
	if got := i18n.T("unknown_code", nil); got != "unknown_code" {
		t.Fatalf("unknown codes echo back: %q", got)
	}
}
