package insight

import "strings"

// Compiled-in sentiment lexicon covering common English and Arabic review
// vocabulary. Weights are in [-1, 1].
var lexicon = map[string]float64{
	// English positive
	"excellent": 0.9, "amazing": 0.9, "great": 0.7, "good": 0.5,
	"love": 0.8, "loved": 0.8, "perfect": 0.9, "fast": 0.4,
	"recommend": 0.6, "recommended": 0.6, "helpful": 0.5, "happy": 0.6,
	"best": 0.8, "awesome": 0.8, "quality": 0.4, "easy": 0.4,
	"satisfied": 0.6, "friendly": 0.5, "reliable": 0.6, "fresh": 0.4,

	// English negative
	"terrible": -0.9, "awful": -0.9, "bad": -0.6, "poor": -0.6,
	"hate": -0.8, "hated": -0.8, "worst": -0.9, "slow": -0.4,
	"broken": -0.7, "damaged": -0.7, "late": -0.4, "rude": -0.7,
	"refund": -0.5, "disappointed": -0.7, "disappointing": -0.7,
	"scam": -0.9, "fake": -0.7, "expensive": -0.3, "never": -0.3,
	"waste": -0.7, "useless": -0.8,

	// Arabic positive
	"ممتاز": 0.9, "رائع": 0.9, "جميل": 0.6, "جيد": 0.5,
	"سريع": 0.4, "أنصح": 0.6, "انصح": 0.6, "شكرا": 0.4,
	"أحببته": 0.8, "حبيته": 0.8, "مذهل": 0.8, "نظيف": 0.4,
	"سعيد": 0.6, "مريح": 0.5, "يستاهل": 0.7, "خرافي": 0.8,

	// Arabic negative
	"سيء": -0.7, "سيئ": -0.7, "رديء": -0.8, "بطيء": -0.4,
	"متأخر": -0.4, "مكسور": -0.7, "تالف": -0.7, "غالي": -0.3,
	"نصب": -0.9, "احتيال": -0.9, "مقلد": -0.7, "خايس": -0.8,
	"زفت": -0.9, "مخيب": -0.7, "استرجاع": -0.5, "ندمت": -0.8,
}

// Negation tokens flip the sign of the following sentiment-bearing token.
var negations = map[string]bool{
	"not": true, "no": true, "never": true, "dont": true, "don't": true,
	"didnt": true, "didn't": true, "isnt": true, "isn't": true,
	"wasnt": true, "wasn't": true,
	"لا": true, "لم": true, "لن": true, "ليس": true, "ما": true, "مو": true,
	"مش": true, "غير": true,
}

var tokenTrim = ".,!?;:()[]{}\"'،؛؟«»"

// lexiconScore averages the weights of sentiment-bearing tokens. Tokens with
// no weight are ignored; a text with none scores zero.
func lexiconScore(text string) float64 {
	tokens := tokenize(text)
	var sum float64
	var hits int
	negate := false
	for _, token := range tokens {
		if negations[token] {
			negate = true
			continue
		}
		weight, ok := lexicon[token]
		if !ok {
			negate = false
			continue
		}
		if negate {
			weight = -weight
			negate = false
		}
		sum += weight
		hits++
	}
	if hits == 0 {
		return 0
	}
	return sum / float64(hits)
}

// collectTerms records which lexicon terms occur in a text, bucketed by the
// sign of their weight. Used for the top-terms summary.
func collectTerms(text string, positive, negative map[string]int) {
	for _, token := range tokenize(text) {
		weight, ok := lexicon[token]
		if !ok {
			continue
		}
		if weight > 0 {
			positive[token]++
		} else {
			negative[token]++
		}
	}
}

func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, tokenTrim)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
