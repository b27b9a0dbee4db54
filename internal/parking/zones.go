package parking

// LedgerZone is a zone of the plate-keyed ledger tariff (Z1..Z3).
type LedgerZone struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HourlyFt int    `json:"hourlyFt"`
}

// DefaultLedgerZones returns the built-in Z1/Z2/Z3 tariff. Rates may be
// overridden per deployment through config.
func DefaultLedgerZones() map[string]LedgerZone {
	return map[string]LedgerZone{
		"Z1": {ID: "Z1", Name: "Belváros", HourlyFt: 400},
		"Z2": {ID: "Z2", Name: "Piac", HourlyFt: 300},
		"Z3": {ID: "Z3", Name: "Park", HourlyFt: 200},
	}
}

// Zone is an entry of the richer catalog used by the car/zone meter.
type Zone struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	HourlyRateFt int    `json:"hourlyRate"`
}

var meterZones = []Zone{
	{ID: "zone-1", Name: "I. Zóna", Description: "Belváros", HourlyRateFt: 480},
	{ID: "zone-2", Name: "II. Zóna", Description: "Piac", HourlyRateFt: 450},
	{ID: "zone-3", Name: "III. Zóna", Description: "Vasútállomás", HourlyRateFt: 420},
	{ID: "zone-4", Name: "IV. Zóna", Description: "Park", HourlyRateFt: 380},
	{ID: "zone-5", Name: "V. Zóna", Description: "Kórház", HourlyRateFt: 480},
}

// MeterZones returns the static five-zone catalog.
func MeterZones() []Zone {
	out := make([]Zone, len(meterZones))
	copy(out, meterZones)
	return out
}

// MeterZone looks up a catalog zone by id.
func MeterZone(id string) (Zone, bool) {
	for _, z := range meterZones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}
