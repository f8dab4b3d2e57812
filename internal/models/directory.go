package models

type Helpline struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Note   string `json:"note,omitempty"`
}

type OfficeLookupResponse struct {
	State      string     `json:"state"`
	District   string     `json:"district"`
	MapsURL    string     `json:"maps_url"`
	PortalURL  string     `json:"portal_url"`
	Helplines  []Helpline `json:"helplines"`
	Disclaimer string     `json:"disclaimer"`
}

type MarketLinks struct {
	Query     string `json:"query"`
	AmazonURL string `json:"amazon_url"`
	MoglixURL string `json:"moglix_url"`
}

type StoreLookupRequest struct {
	StoreType StoreType    `json:"store_type"`
	Method    SearchMethod `json:"method"`
	State     string       `json:"state"`
	District  string       `json:"district"`
}

func (r StoreLookupRequest) Validate() error {
	if !r.StoreType.IsValid() {
		return NewValidationError("type", "unknown store type")
	}
	if !r.Method.IsValid() {
		return NewValidationError("method", "must be current_location or manual")
	}
	if r.Method == SearchManual && (r.State == "" || r.District == "") {
		return NewValidationError("district", "state and district are required for manual search")
	}
	return nil
}

type StoreLookupResponse struct {
	StoreType StoreType    `json:"store_type"`
	Method    SearchMethod `json:"method"`
	MapsURL   string       `json:"maps_url"`
	Message   string       `json:"message"`
}
