package teams

// Aliases maps normalized abbreviations, nicknames and city names to the
// canonical lowercase franchise name.
var Aliases = map[string]string{
	// Atlanta Hawks
	"atl":     "atlanta hawks",
	"hawks":   "atlanta hawks",
	"atlanta": "atlanta hawks",
	// Boston Celtics
	"bos":     "boston celtics",
	"celtics": "boston celtics",
	"boston":  "boston celtics",
	// Brooklyn Nets
	"bkn":      "brooklyn nets",
	"nets":     "brooklyn nets",
	"brooklyn": "brooklyn nets",
	// Charlotte Hornets
	"cha":       "charlotte hornets",
	"hornets":   "charlotte hornets",
	"charlotte": "charlotte hornets",
	// Chicago Bulls
	"chi":     "chicago bulls",
	"bulls":   "chicago bulls",
	"chicago": "chicago bulls",
	// Cleveland Cavaliers
	"cle":       "cleveland cavaliers",
	"cavaliers": "cleveland cavaliers",
	"cavs":      "cleveland cavaliers",
	"cleveland": "cleveland cavaliers",
	// Dallas Mavericks
	"dal":       "dallas mavericks",
	"mavericks": "dallas mavericks",
	"mavs":      "dallas mavericks",
	"dallas":    "dallas mavericks",
	// Denver Nuggets
	"den":     "denver nuggets",
	"nuggets": "denver nuggets",
	"denver":  "denver nuggets",
	// Detroit Pistons
	"det":     "detroit pistons",
	"pistons": "detroit pistons",
	"detroit": "detroit pistons",
	// Golden State Warriors
	"gsw":          "golden state warriors",
	"gs":           "golden state warriors",
	"warriors":     "golden state warriors",
	"golden state": "golden state warriors",
	// Houston Rockets
	"hou":     "houston rockets",
	"rockets": "houston rockets",
	"houston": "houston rockets",
	// Indiana Pacers
	"ind":     "indiana pacers",
	"pacers":  "indiana pacers",
	"indiana": "indiana pacers",
	// Los Angeles Clippers
	"lac":         "los angeles clippers",
	"clippers":    "los angeles clippers",
	"la clippers": "los angeles clippers",
	// Los Angeles Lakers
	"lal":       "los angeles lakers",
	"lakers":    "los angeles lakers",
	"la lakers": "los angeles lakers",
	// Memphis Grizzlies
	"mem":       "memphis grizzlies",
	"grizzlies": "memphis grizzlies",
	"memphis":   "memphis grizzlies",
	// Miami Heat
	"mia":   "miami heat",
	"heat":  "miami heat",
	"miami": "miami heat",
	// Milwaukee Bucks
	"mil":       "milwaukee bucks",
	"bucks":     "milwaukee bucks",
	"milwaukee": "milwaukee bucks",
	// Minnesota Timberwolves
	"min":          "minnesota timberwolves",
	"timberwolves": "minnesota timberwolves",
	"wolves":       "minnesota timberwolves",
	"minnesota":    "minnesota timberwolves",
	// New Orleans Pelicans
	"nop":         "new orleans pelicans",
	"no":          "new orleans pelicans",
	"pelicans":    "new orleans pelicans",
	"new orleans": "new orleans pelicans",
	// New York Knicks
	"nyk":      "new york knicks",
	"ny":       "new york knicks",
	"knicks":   "new york knicks",
	"new york": "new york knicks",
	// Oklahoma City Thunder
	"okc":           "oklahoma city thunder",
	"thunder":       "oklahoma city thunder",
	"oklahoma city": "oklahoma city thunder",
	// Orlando Magic
	"orl":     "orlando magic",
	"magic":   "orlando magic",
	"orlando": "orlando magic",
	// Philadelphia 76ers
	"phi":                 "philadelphia 76ers",
	"76ers":               "philadelphia 76ers",
	"sixers":              "philadelphia 76ers",
	"philadelphia":        "philadelphia 76ers",
	"philadelphia sixers": "philadelphia 76ers",
	// Phoenix Suns
	"phx":     "phoenix suns",
	"suns":    "phoenix suns",
	"phoenix": "phoenix suns",
	// Portland Trail Blazers
	"por":           "portland trail blazers",
	"blazers":       "portland trail blazers",
	"trail blazers": "portland trail blazers",
	"portland":      "portland trail blazers",
	// Sacramento Kings
	"sac":        "sacramento kings",
	"kings":      "sacramento kings",
	"sacramento": "sacramento kings",
	// San Antonio Spurs
	"sas":         "san antonio spurs",
	"sa":          "san antonio spurs",
	"spurs":       "san antonio spurs",
	"san antonio": "san antonio spurs",
	// Toronto Raptors
	"tor":     "toronto raptors",
	"raptors": "toronto raptors",
	"toronto": "toronto raptors",
	// Utah Jazz
	"uta":  "utah jazz",
	"jazz": "utah jazz",
	"utah": "utah jazz",
	// Washington Wizards
	"was":        "washington wizards",
	"wsh":        "washington wizards",
	"wizards":    "washington wizards",
	"washington": "washington wizards",
}
