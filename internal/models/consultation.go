package models

type ConsultationRequest struct {
	Disease  string `json:"disease"`
	Language string `json:"language"`
}

func (r ConsultationRequest) Validate() error {
	if r.Disease == "" {
		return NewValidationError("disease", "is required")
	}
	if r.Language == "" {
		return NewValidationError("language", "is required")
	}
	return nil
}

// ConsultationResponse carries one section per downstream adapter. Each
// section reports its own failure so a broken adapter never hides the others.
type ConsultationResponse struct {
	Disease  string        `json:"disease"`
	Language string        `json:"language"`
	Advice   AdviceSection `json:"advice"`
	Voice    VoiceSection  `json:"voice"`
	Videos   VideoSection  `json:"videos"`
	Expert   ExpertSection `json:"expert"`
}

type AdviceSection struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

type VoiceSection struct {
	LanguageCode string `json:"language_code,omitempty"`
	AudioHTML    string `json:"audio_html,omitempty"`
	AudioURL     string `json:"audio_url,omitempty"`
	Error        string `json:"error,omitempty"`
}

type VideoSection struct {
	Heading string        `json:"heading"`
	Items   []VideoResult `json:"items"`
	Info    string        `json:"info,omitempty"`
	Error   string        `json:"error,omitempty"`
}

type ExpertSection struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsapp_url"`
}

type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
