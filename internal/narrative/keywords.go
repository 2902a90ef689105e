package narrative

// The keyword tables below drive detection, type scoring and synthesis.
// All of them are ordered: detection lists are tried in priority order,
// substitutions run as a single left-to-right pass, and context/detail
// groups are tested first-match (context) or one-by-one (details).
// Adding or removing a trigger is a data change, not a code change.

// Style marker phrases, tested in this order: first-person wins over
// third-person wins over clinical.
var (
	firstPersonMarkers = []string{
		"i have", "i am", "i'm", "i've", "i feel", "i was", "my ", "me ",
	}
	thirdPersonMarkers = []string{
		"patient", "the person", "victim", "he has", "she has", "they have",
		"he is", "she is", "his ", "her ",
	}
	clinicalMarkers = []string{
		"presents with", "complains of", "reports", "on examination",
		"history of", "acute onset", "bilateral", "palpation",
	}
)

// Condition-type scoring sets. Each keyword counts once when present,
// regardless of repetition.
var (
	injuryKeywords = []string{
		"fell", "fall", "cut", "wound", "bleeding", "fracture", "broken",
		"burn", "injury", "injured", "accident", "struck", "crush",
		"sprain", "bruise", "laceration", "trauma", "bite", "bitten",
		"gunshot", "stab", "crash", "collision", "electrocut", "swelling",
		"dislocat", "deformity",
	}
	medicalKeywords = []string{
		"fever", "cough", "headache", "nausea", "vomit", "diarrhea",
		"rash", "pain", "fatigue", "dizz", "chills", "infection",
		"sore throat", "runny nose", "congestion", "breathing", "stomach",
		"cramp", "itch", "sweating", "weakness", "urination", "appetite",
		"sneez", "migraine",
	}
	workContextKeywords = []string{
		"work", "job", "site", "factory", "construction", "machine",
	}
)

// workContextBonus is added to the injury score when any work-context
// term appears anywhere in the text.
const workContextBonus = 3

// substitution rewrites a casual short form into the longer clinical
// phrasing the classifier was trained on.
type substitution struct {
	short string
	long  string
}

// Applied in order as a single pass. A rule is skipped when the long form
// is already present, so users who typed clinical phrasing are not doubled
// up. Later rules may match text introduced by earlier ones; keep the order.
var substitutions = []substitution{
	{"cant breathe", "difficulty breathing"},
	{"can't breathe", "difficulty breathing"},
	{"short of breath", "difficulty breathing"},
	{"cant walk", "unable to walk"},
	{"can't walk", "unable to walk"},
	{"threw up", "vomiting"},
	{"throwing up", "vomiting"},
	{"tummy", "stomach"},
	{"stomach ache", "stomach pain"},
	{"headache", "severe headache"},
	{"high temp", "high fever"},
	{"feverish", "fever"},
	{"dizzy", "dizziness"},
	{"bleeding a lot", "severe bleeding"},
	{"hurts a lot", "severe pain"},
	{"passed out", "unconscious"},
}

// keywordGroup pairs a trigger list with the sentence it contributes.
type keywordGroup struct {
	triggers []string
	sentence string
}

// Injury opening contexts, first match wins. The final fallback is applied
// in code when nothing matches.
var injuryContexts = []keywordGroup{
	{[]string{"fell", "fall", "height", "ladder", "roof", "stairs"}, "a person fell"},
	{[]string{"cut", "blade", "knife", "glass", "laceration"}, "a person was cut"},
	{[]string{"burn", "fire", "chemical", "scald"}, "a person was burned"},
	{[]string{"crush", "machine", "caught in", "trapped"}, "a person was caught in machinery"},
	{[]string{"struck", "hit by", "object"}, "a person was struck by an object"},
	{[]string{"electric", "shock", "electrocut"}, "a person received an electric shock"},
	{[]string{"bite", "bitten", "animal", "snake", "dog"}, "a person was bitten"},
	{[]string{"gun", "bullet", "gunshot"}, "a person sustained a gunshot wound"},
	{[]string{"vehicle", "crash", "car", "collision", "motorcycle"}, "a person was involved in a vehicle accident"},
}

const injuryDefaultContext = "a person was injured"

// Injury detail sentences. Each group is checked independently and appends
// its sentence at most once.
var injuryDetails = []keywordGroup{
	{[]string{"fracture", "broken", "bone", "deformity"}, "there may be a broken bone or fracture."},
	{[]string{"bleed", "blood", "hemorrhage"}, "there is visible bleeding from the wound."},
	{[]string{"unconscious", "unresponsive", "fainted", "blacked out"}, "the person lost consciousness."},
	{[]string{"swelling", "swollen", "bruis"}, "the injured area is swollen."},
	{[]string{"cannot move", "can't move", "unable to move", "unable to walk", "immobile"}, "the person is unable to move the injured area."},
}

// Medical detail sentences, same independent-check semantics.
var medicalDetails = []keywordGroup{
	{[]string{"fever", "chills", "temperature"}, "i have been feeling feverish with chills."},
	{[]string{"skin", "rash", "itch", "patch"}, "my skin shows visible changes and irritation."},
	{[]string{"stomach", "nausea", "vomit", "diarrhea", "constipation", "appetite"}, "my digestion has been upset."},
	{[]string{"breath", "cough", "chest", "congestion", "wheez"}, "i am having trouble with my breathing."},
	{[]string{"urin", "bladder"}, "i have noticed changes in urination."},
	{[]string{"joint", "muscle", "stiff", "cramp", "ache"}, "my joints and muscles ache."},
	{[]string{"head", "vision", "dizz", "blurr", "migraine"}, "i have head pain and my vision is affected."},
}
