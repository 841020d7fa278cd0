package summarize

import "fmt"

// Supported locales.
const (
	LocaleID = "id"
	LocaleEN = "en"
)

var prompts = map[string]string{
	LocaleID: "Jadilah asisten yang merangkum. Buat ringkasan singkat dan jelas dari teks berikut ini dalam bahasa Indonesia. Teks: \"%s\"",
	LocaleEN: "Act as a summarizing assistant. Write a short, clear summary of the following text in English. Text: \"%s\"",
}

var fallbacks = map[string]string{
	LocaleID: "Maaf, terjadi kesalahan saat meringkas.",
	LocaleEN: "Sorry, something went wrong while summarizing.",
}

// Prompt builds the completion prompt for text. Unknown locales use LocaleID.
func Prompt(locale, text string) string {
	tmpl, ok := prompts[locale]
	if !ok {
		tmpl = prompts[LocaleID]
	}
	return fmt.Sprintf(tmpl, text)
}

// FallbackMessage is shown in place of a summary when the request fails.
func FallbackMessage(locale string) string {
	if msg, ok := fallbacks[locale]; ok {
		return msg
	}
	return fallbacks[LocaleID]
}
