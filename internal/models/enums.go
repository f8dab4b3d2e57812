package models

type SprayAdvisory string

const (
	SpraySafe     SprayAdvisory = "safe"
	SprayHighRisk SprayAdvisory = "high_risk"
)

// Label is the text shown in the forecast table's action column.
func (s SprayAdvisory) Label() string {
	switch s {
	case SpraySafe:
		return "Safe to Spray"
	case SprayHighRisk:
		return "High Rain Risk"
	default:
		return ""
	}
}

type UserType string

const (
	UserFarmer      UserType = "Farmer"
	UserAgriExpert  UserType = "Agriculture Expert"
	UserStudent     UserType = "Student"
	UserOther       UserType = "Other"
	DefaultUserType          = UserFarmer
)

var UserTypes = []UserType{UserFarmer, UserAgriExpert, UserStudent, UserOther}

func (u UserType) IsValid() bool {
	switch u {
	case UserFarmer, UserAgriExpert, UserStudent, UserOther:
		return true
	default:
		return false
	}
}

type StoreType string

const (
	StorePesticideDealer StoreType = "Pesticide Dealer"
	StoreSeeds           StoreType = "Beej Bhandar (Seeds)"
	StoreFertilizer      StoreType = "Fertilizer Shop"
)

var StoreTypes = []StoreType{StorePesticideDealer, StoreSeeds, StoreFertilizer}

func (s StoreType) IsValid() bool {
	switch s {
	case StorePesticideDealer, StoreSeeds, StoreFertilizer:
		return true
	default:
		return false
	}
}

type SearchMethod string

const (
	SearchCurrentLocation SearchMethod = "current_location"
	SearchManual          SearchMethod = "manual"
)

func (m SearchMethod) IsValid() bool {
	return m == SearchCurrentLocation || m == SearchManual
}
