package directory

import "agrivision-service/internal/models"

// DefaultLanguageCode is used when a language name has no speech code.
const DefaultLanguageCode = "en"

// languages keeps the dropdown order of the advice language selector.
var languages = []models.Language{
	{Name: "Hindi", Code: "hi"},
	{Name: "English", Code: "en"},
	{Name: "Bengali", Code: "bn"},
	{Name: "Telugu", Code: "te"},
	{Name: "Marathi", Code: "mr"},
	{Name: "Tamil", Code: "ta"},
	{Name: "Gujarati", Code: "gu"},
	{Name: "Urdu", Code: "ur"},
	{Name: "Kannada", Code: "kn"},
	{Name: "Odia", Code: "or"},
	{Name: "Malayalam", Code: "ml"},
	{Name: "Punjabi", Code: "pa"},
	{Name: "Assamese", Code: "as"},
	{Name: "Maithili", Code: "mai"},
}

var languageCodes = func() map[string]string {
	m := make(map[string]string, len(languages))
	for _, l := range languages {
		m[l.Name] = l.Code
	}
	return m
}()

// Languages returns the supported advice languages in display order.
func Languages() []models.Language {
	out := make([]models.Language, len(languages))
	copy(out, languages)
	return out
}

func IsSupportedLanguage(name string) bool {
	_, ok := languageCodes[name]
	return ok
}

// LanguageCode maps a language name to its speech code, falling back to English.
func LanguageCode(name string) string {
	if code, ok := languageCodes[name]; ok {
		return code
	}
	return DefaultLanguageCode
}
