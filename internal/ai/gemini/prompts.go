package gemini

import "fmt"

const TreatmentPromptTemplate = "Professional agricultural treatment for %s in %s. Limit to 60 words."

func BuildTreatmentPrompt(disease, language string) string {
	return fmt.Sprintf(TreatmentPromptTemplate, disease, language)
}
