package commute

import "strings"

// TravelMethod is a supported mode of transport. The string value is the
// wire identifier sent to the estimation service (always lowercase).
type TravelMethod string

// Supported travel methods.
const (
	MethodPetrolCar    TravelMethod = "petrol-car"
	MethodDieselCar    TravelMethod = "diesel-car"
	MethodHybridCar    TravelMethod = "hybrid-car"
	MethodElectricCar  TravelMethod = "electric-car"
	MethodTaxi         TravelMethod = "taxi"
	MethodBlackCab     TravelMethod = "black-cab"
	MethodNationalRail TravelMethod = "national-rail"
	MethodLightRail    TravelMethod = "light-rail"
	MethodBike         TravelMethod = "bike"
	MethodWalk         TravelMethod = "walk"
)

// Methods returns all supported travel methods in display order.
func Methods() []TravelMethod {
	return []TravelMethod{
		MethodPetrolCar,
		MethodDieselCar,
		MethodHybridCar,
		MethodElectricCar,
		MethodTaxi,
		MethodBlackCab,
		MethodNationalRail,
		MethodLightRail,
		MethodBike,
		MethodWalk,
	}
}

// Label returns the human-readable name for the method.
func (m TravelMethod) Label() string {
	switch m {
	case MethodPetrolCar:
		return "Petrol car"
	case MethodDieselCar:
		return "Diesel car"
	case MethodHybridCar:
		return "Hybrid car"
	case MethodElectricCar:
		return "Electric car"
	case MethodTaxi:
		return "Taxi"
	case MethodBlackCab:
		return "Black cab"
	case MethodNationalRail:
		return "National rail"
	case MethodLightRail:
		return "Light rail"
	case MethodBike:
		return "Bike"
	case MethodWalk:
		return "Walk"
	default:
		return string(m)
	}
}

// ParseTravelMethod resolves a user-supplied string to a TravelMethod.
// Matching is case-insensitive and accepts both wire identifiers
// ("petrol-car") and display labels ("Petrol car").
func ParseTravelMethod(s string) (TravelMethod, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Methods() {
		if needle == string(m) || needle == strings.ToLower(m.Label()) {
			return m, nil
		}
	}
	return "", ErrUnknownTravelMethod
}
