package i18n

// Translator retrieves localized messages for issue codes. data provides
// optional metadata to embed in the message (for example, "expected" or
// "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "shape_syntax":
			return "shape式が不正です"
		case "shape_mismatch":
			return "shapeが一致しません"
		case "dtype_mismatch":
			return "dtypeが一致しません"
		case "no_backend":
			return "対応するバックエンドがありません"
		case "mark_mismatch":
			return "記録されたインターフェースと一致しません"
		case "schema_unsupported":
			return "JSON Schemaで表現できないdtypeです"
		case "deserialize_error":
			return "デシリアライズに失敗しました"
		case "coerce_error":
			return "配列への変換に失敗しました"
		}
	default: // "en"
		switch code {
		case "shape_syntax":
			return "invalid shape expression"
		case "shape_mismatch":
			return "shape does not match"
		case "dtype_mismatch":
			return "dtype does not match"
		case "no_backend":
			return "no backend accepts the input"
		case "mark_mismatch":
			return "recorded interface no longer matches"
		case "schema_unsupported":
			return "dtype has no JSON Schema equivalent"
		case "deserialize_error":
			return "cannot deserialize descriptor"
		case "coerce_error":
			return "cannot coerce input to an array"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
