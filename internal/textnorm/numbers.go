package textnorm

import "strconv"

var numberWords = map[int]string{
	0: "null", 1: "eins", 2: "zwei", 3: "drei", 4: "vier",
	5: "fünf", 6: "sechs", 7: "sieben", 8: "acht", 9: "neun",
	10: "zehn", 11: "elf", 12: "zwölf", 13: "dreizehn", 14: "vierzehn",
	15: "fünfzehn", 16: "sechzehn", 17: "siebzehn", 18: "achtzehn",
	19: "neunzehn", 20: "zwanzig", 30: "dreißig", 40: "vierzig",
	50: "fünfzig", 60: "sechzig", 70: "siebzig", 80: "achtzig",
	90: "neunzig", 100: "hundert",
}

// NumberToGerman converts 0-9999 to its composed German word form. Values
// outside that range pass through as plain digits, matching the source
// behavior of leaving large or negative numbers untouched.
func NumberToGerman(n int) string {
	if n < 0 || n > 9999 {
		return strconv.Itoa(n)
	}
	if word, ok := numberWords[n]; ok {
		return word
	}
	if n < 100 {
		tens := (n / 10) * 10
		ones := n % 10
		if ones == 0 {
			return wordOr(tens)
		}
		if ones == 1 {
			return "einund" + numberWords[tens]
		}
		return wordOr(ones) + "und" + wordOr(tens)
	}
	if n < 1000 {
		hundreds := n / 100
		rest := n % 100
		prefix := wordOr(hundreds) + "hundert"
		if rest == 0 {
			return prefix
		}
		return prefix + NumberToGerman(rest)
	}
	thousands := n / 1000
	rest := n % 1000
	prefix := wordOr(thousands) + "tausend"
	if rest == 0 {
		return prefix
	}
	return prefix + NumberToGerman(rest)
}

func wordOr(n int) string {
	if word, ok := numberWords[n]; ok {
		return word
	}
	return strconv.Itoa(n)
}
