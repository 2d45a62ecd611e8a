// Package campus holds the static catalogue of campus sites shown on the
// map screen.
package campus

// Location is one campus site marker.
type Location struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Locations returns the five campus sites. The first entry is the map's
// default focus.
func Locations() []Location {
	return []Location{
		{Code: "ESTG", Name: "Escola Superior de Tecnologia e Gestão", Lat: 41.6932, Lng: -8.8464},
		{Code: "ESE", Name: "Escola Superior de Educação", Lat: 41.7032, Lng: -8.8264},
		{Code: "ESA", Name: "Escola Superior Agrária", Lat: 41.7937, Lng: -8.5427},
		{Code: "ESS", Name: "Escola Superior de Saúde", Lat: 41.6970, Lng: -8.8210},
		{Code: "ESCE", Name: "Escola Superior de Ciências Empresariais", Lat: 41.9317, Lng: -8.6231},
	}
}
