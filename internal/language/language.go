package language

import "strings"

// Language is a resolved language with its ISO 639-1 code and display name.
type Language struct {
	Code string
	Name string
}

// English is the fallback language for unmapped primary-language matches.
var English = Language{Code: "en", Name: "English"}

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string
}

var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
	{"hi", "hin", "", "Hindi"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"sv", "swe", "", "Swedish"},
	{"da", "dan", "", "Danish"},
	{"no", "nor", "", "Norwegian"},
	{"fi", "fin", "", "Finnish"},
	{"tr", "tur", "", "Turkish"},
	{"el", "ell", "gre", "Greek"},
	{"he", "heb", "", "Hebrew"},
	{"hu", "hun", "", "Hungarian"},
	{"cs", "ces", "cze", "Czech"},
	{"th", "tha", "", "Thai"},
	{"vi", "vie", "", "Vietnamese"},
	{"uk", "ukr", "", "Ukrainian"},
	{"ro", "ron", "rum", "Romanian"},
	{"bg", "bul", "", "Bulgarian"},
	{"is", "isl", "ice", "Icelandic"},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	return nil
}

// Find resolves a 2- or 3-letter code to a Language. Region codes that
// coincide with a language code (e.g. "FR", "DE") resolve to that
// language; anything else reports ok=false.
func Find(code string) (Language, bool) {
	e := lookup(code)
	if e == nil {
		return Language{}, false
	}
	return Language{Code: e.code2, Name: e.display}, true
}

// DisplayName returns a human-readable name for any recognized code, or
// the uppercased input when the code is unknown.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
