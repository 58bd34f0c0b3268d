package domain

// wfoNames maps Weather Forecast Office codes to the senderName strings the
// NWS API emits for them. The roster covers the CONUS, Alaska, Hawaii, Guam,
// Puerto Rico offices and the National Tsunami Warning Center.
var wfoNames = map[string]string{
	"AAQ": "NWS National Tsunami Warning Center",
	"ABQ": "NWS Albuquerque NM",
	"ABR": "NWS Aberdeen SD",
	"AFC": "NWS Anchorage AK",
	"AFG": "NWS Fairbanks AK",
	"AJK": "NWS Juneau AK",
	"AKQ": "NWS Wakefield VA",
	"ALY": "NWS Albany NY",
	"AMA": "NWS Amarillo TX",
	"APX": "NWS Gaylord MI",
	"ARX": "NWS La Crosse WI",
	"BGM": "NWS Binghamton NY",
	"BIS": "NWS Bismarck ND",
	"BMX": "NWS Birmingham AL",
	"BOI": "NWS Boise ID",
	"BOU": "NWS Denver CO",
	"BOX": "NWS Boston/Norton MA",
	"BRO": "NWS Brownsville TX",
	"BTV": "NWS Burlington VT",
	"BUF": "NWS Buffalo NY",
	"BYZ": "NWS Billings MT",
	"CAE": "NWS Columbia SC",
	"CAR": "NWS Caribou ME",
	"CHS": "NWS Charleston SC",
	"CLE": "NWS Cleveland OH",
	"CRP": "NWS Corpus Christi TX",
	"CTP": "NWS State College PA",
	"CYS": "NWS Cheyenne WY",
	"DDC": "NWS Dodge City KS",
	"DLH": "NWS Duluth MN",
	"DMX": "NWS Des Moines IA",
	"DTX": "NWS Detroit/Pontiac MI",
	"DVN": "NWS Quad Cities IA IL",
	"EAX": "NWS Kansas City/Pleasant Hill MO",
	"EKA": "NWS Eureka CA",
	"EPZ": "NWS El Paso Tx/Santa Teresa NM",
	"EWX": "NWS Austin/San Antonio TX",
	"FFC": "NWS Peachtree City GA",
	"FGF": "NWS Grand Forks ND",
	"FGZ": "NWS Flagstaff AZ",
	"FSD": "NWS Sioux Falls SD",
	"FWD": "NWS Fort Worth TX",
	"GGW": "NWS Glasgow MT",
	"GID": "NWS Hastings NE",
	"GJT": "NWS Grand Junction CO",
	"GLD": "NWS Goodland KS",
	"GRB": "NWS Green Bay WI",
	"GRR": "NWS Grand Rapids MI",
	"GSP": "NWS Greenville-Spartanburg SC",
	"GUM": "NWS Tiyan GU",
	"GYX": "NWS Gray ME",
	"HFO": "NWS Honolulu HI",
	"HGX": "NWS Houston/Galveston TX",
	"HNX": "NWS Hanford CA",
	"HUN": "NWS Huntsville AL",
	"ICT": "NWS Wichita KS",
	"ILM": "NWS Wilmington NC",
	"ILN": "NWS Wilmington OH",
	"ILX": "NWS Lincoln IL",
	"IND": "NWS Indianapolis IN",
	"IWX": "NWS Northern Indiana",
	"JAN": "NWS Jackson MS",
	"JAX": "NWS Jacksonville FL",
	"JKL": "NWS Jackson KY",
	"KEY": "NWS Key West FL",
	"LBF": "NWS North Platte NE",
	"LCH": "NWS Lake Charles LA",
	"LIX": "NWS New Orleans LA",
	"LKN": "NWS Elko NV",
	"LMK": "NWS Louisville KY",
	"LOT": "NWS Chicago IL",
	"LOX": "NWS Los Angeles/Oxnard CA",
	"LSX": "NWS St Louis MO",
	"LUB": "NWS Lubbock TX",
	"LWX": "NWS Baltimore MD/Washington DC",
	"LZK": "NWS Little Rock AR",
	"MAF": "NWS Midland/Odessa TX",
	"MEG": "NWS Memphis TN",
	"MFL": "NWS Miami FL",
	"MFR": "NWS Medford OR",
	"MHX": "NWS Newport/Morehead City NC",
	"MKX": "NWS Milwaukee/Sullivan WI",
	"MLB": "NWS Melbourne FL",
	"MOB": "NWS Mobile AL",
	"MPX": "NWS Twin Cities/Chanhassen MN",
	"MQT": "NWS Marquette MI",
	"MRX": "NWS Morristown TN",
	"MSO": "NWS Missoula MT",
	"MTR": "NWS San Francisco CA",
	"OAX": "NWS Omaha/Valley NE",
	"OHX": "NWS Nashville TN",
	"OKX": "NWS Upton NY",
	"OTX": "NWS Spokane WA",
	"OUN": "NWS Norman OK",
	"PAH": "NWS Paducah KY",
	"PBZ": "NWS Pittsburgh PA",
	"PDT": "NWS Pendleton OR",
	"PHI": "NWS Mount Holly NJ",
	"PIH": "NWS Pocatello ID",
	"PQR": "NWS Portland OR",
	"PSR": "NWS Phoenix AZ",
	"PUB": "NWS Pueblo CO",
	"RAH": "NWS Raleigh NC",
	"REV": "NWS Reno NV",
	"RIW": "NWS Riverton WY",
	"RLX": "NWS Charleston WV",
	"RNK": "NWS Blacksburg VA",
	"SEW": "NWS Seattle WA",
	"SGF": "NWS Springfield MO",
	"SGX": "NWS San Diego CA",
	"SHV": "NWS Shreveport LA",
	"SJT": "NWS San Angelo TX",
	"SJU": "NWS San Juan PR",
	"SLC": "NWS Salt Lake City UT",
	"STO": "NWS Sacramento CA",
	"TAE": "NWS Tallahassee FL",
	"TBW": "NWS Tampa Bay Ruskin FL",
	"TFX": "NWS Great Falls MT",
	"TOP": "NWS Topeka KS",
	"TSA": "NWS Tulsa OK",
	"TWC": "NWS Tucson AZ",
	"UNR": "NWS Rapid City SD",
	"VEF": "NWS Las Vegas NV",
}

var wfoBySender = func() map[string]string {
	m := make(map[string]string, len(wfoNames))
	for code, name := range wfoNames {
		m[name] = code
	}
	return m
}()

// KnownIssuer reports whether sender matches a WFO roster entry.
func KnownIssuer(sender string) bool {
	_, ok := wfoBySender[sender]
	return ok
}

// WFOCode returns the office code for a roster sender, or "" if unknown.
func WFOCode(sender string) string {
	return wfoBySender[sender]
}

// WFOName returns the senderName for an office code, or "" if unknown.
func WFOName(code string) string {
	return wfoNames[code]
}
