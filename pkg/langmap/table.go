package langmap

// alpha3to1 is the general ISO 639-3 to ISO 639-1 correspondence,
// covering every language that has a two-letter code. Dialect and
// individual-language tags that need a non-obvious target live in
// collapses instead.
var alpha3to1 = map[string]string{
	"aar": "aa", "abk": "ab", "afr": "af", "aka": "ak", "amh": "am",
	"ara": "ar", "arg": "an", "asm": "as", "ava": "av", "ave": "ae",
	"aym": "ay", "aze": "az", "bak": "ba", "bam": "bm", "bel": "be",
	"ben": "bn", "bis": "bi", "bod": "bo", "bos": "bs", "bre": "br",
	"bul": "bg", "cat": "ca", "ces": "cs", "cha": "ch", "che": "ce",
	"chu": "cu", "chv": "cv", "cor": "kw", "cos": "co", "cre": "cr",
	"cym": "cy", "dan": "da", "deu": "de", "div": "dv", "dzo": "dz",
	"ell": "el", "eng": "en", "epo": "eo", "est": "et", "eus": "eu",
	"ewe": "ee", "fao": "fo", "fas": "fa", "fij": "fj", "fin": "fi",
	"fra": "fr", "fry": "fy", "ful": "ff", "gla": "gd", "gle": "ga",
	"glg": "gl", "glv": "gv", "grn": "gn", "guj": "gu", "hat": "ht",
	"hau": "ha", "heb": "he", "her": "hz", "hin": "hi", "hmo": "ho",
	"hrv": "hr", "hun": "hu", "hye": "hy", "ibo": "ig", "ido": "io",
	"iii": "ii", "iku": "iu", "ile": "ie", "ina": "ia", "ind": "id",
	"ipk": "ik", "isl": "is", "ita": "it", "jav": "jv", "jpn": "ja",
	"kal": "kl", "kan": "kn", "kas": "ks", "kat": "ka", "kau": "kr",
	"kaz": "kk", "khm": "km", "kik": "ki", "kin": "rw", "kir": "ky",
	"kom": "kv", "kon": "kg", "kor": "ko", "kua": "kj", "kur": "ku",
	"lao": "lo", "lat": "la", "lav": "lv", "lim": "li", "lin": "ln",
	"lit": "lt", "ltz": "lb", "lub": "lu", "lug": "lg", "mah": "mh",
	"mal": "ml", "mar": "mr", "mkd": "mk", "mlg": "mg", "mlt": "mt",
	"mon": "mn", "mri": "mi", "msa": "ms", "mya": "my", "nau": "na",
	"nav": "nv", "nbl": "nr", "nde": "nd", "ndo": "ng", "nep": "ne",
	"nld": "nl", "nno": "nn", "nob": "nb", "nor": "no", "nya": "ny",
	"oci": "oc", "oji": "oj", "ori": "or", "orm": "om", "oss": "os",
	"pan": "pa", "pli": "pi", "pol": "pl", "por": "pt", "pus": "ps",
	"que": "qu", "roh": "rm", "ron": "ro", "run": "rn", "rus": "ru",
	"sag": "sg", "san": "sa", "sin": "si", "slk": "sk", "slv": "sl",
	"sme": "se", "smo": "sm", "sna": "sn", "snd": "sd", "som": "so",
	"sot": "st", "spa": "es", "sqi": "sq", "srd": "sc", "srp": "sr",
	"ssw": "ss", "sun": "su", "swa": "sw", "swe": "sv", "tah": "ty",
	"tam": "ta", "tat": "tt", "tel": "te", "tgk": "tg", "tgl": "tl",
	"tha": "th", "tir": "ti", "ton": "to", "tsn": "tn", "tso": "ts",
	"tuk": "tk", "tur": "tr", "twi": "tw", "uig": "ug", "ukr": "uk",
	"urd": "ur", "uzb": "uz", "ven": "ve", "vie": "vi", "vol": "vo",
	"wln": "wa", "wol": "wo", "xho": "xh", "yid": "yi", "yor": "yo",
	"zha": "za", "zho": "zh", "zul": "zu",
}

// collapses maps dialect-specific and individual-language tags onto the
// code a 639-1 detector vocabulary actually carries. Several benchmark
// tags intentionally share one target (many-to-one).
var collapses = map[string]string{
	// Arabic varieties
	"arb": "ar", // Standard Arabic
	"arz": "ar", // Egyptian Arabic
	"ary": "ar", // Moroccan Arabic
	"ars": "ar", // Najdi Arabic
	"apd": "ar", // Sudanese Arabic
	"aeb": "ar", // Tunisian Arabic
	// Individual language vs macrolanguage
	"swh": "sw", // Swahili (individual)
	"azj": "az", // North Azerbaijani
	"lvs": "lv", // Standard Latvian
	"uzs": "uz", // Southern Uzbek
	"uzn": "uz", // Northern Uzbek
	"zsm": "ms", // Standard Malay
	"cmn": "zh", // Mandarin Chinese
	"pes": "fa", // Iranian Persian
	"khk": "mn", // Halh Mongolian
	"als": "sq", // Tosk Albanian
	"ekk": "et", // Standard Estonian
	"ory": "or", // Odia (individual)
	"gaz": "om", // West Central Oromo
	// Close mappings
	"fil": "tl", // Filipino scored against Tagalog
	"hbo": "he", // Ancient Hebrew scored against Hebrew
}

// Alpha2For returns the plain ISO 639-1 equivalent of a 639-3 code,
// without consulting any detector vocabulary. Used by adapters whose
// underlying library reports 639-3 codes.
func Alpha2For(alpha3 string) (string, bool) {
	if code, ok := collapses[alpha3]; ok {
		return code, true
	}
	code, ok := alpha3to1[alpha3]
	return code, ok
}
