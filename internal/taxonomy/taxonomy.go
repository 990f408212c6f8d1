package taxonomy

// Category is one symptom family: multi-word phrases are matched before
// single words so a phrase hit is never also counted word by word.
type Category struct {
	Name    string
	Phrases []string
	Words   []string
}

// Categories is the static symptom taxonomy, scanned in order. When a term
// appears under more than one category the first category in this list wins;
// the ordering below is therefore part of the contract and must not be
// shuffled.
var Categories = []Category{
	{
		Name: "pain",
		Phrases: []string{
			"chest pain",
			"back pain",
			"abdominal pain",
			"joint pain",
			"muscle pain",
		},
		Words: []string{"pain", "ache", "aching", "sore", "cramping", "burning"},
	},
	{
		Name: "respiratory",
		Phrases: []string{
			"shortness of breath",
			"difficulty breathing",
			"chest tightness",
		},
		Words: []string{"cough", "coughing", "wheezing", "congestion"},
	},
	{
		Name: "cardiovascular",
		Phrases: []string{
			"heart palpitations",
			"racing heart",
		},
		Words: []string{"palpitations"},
	},
	{
		Name: "gastrointestinal",
		Phrases: []string{
			"stomach ache",
			"loss of appetite",
		},
		Words: []string{
			"nausea", "nauseous", "vomiting", "bloated", "stomach",
			"diarrhea", "constipation", "heartburn",
		},
	},
	{
		Name: "neurological",
		Phrases: []string{
			"blurred vision",
			"pins and needles",
		},
		Words: []string{
			"headache", "headaches", "migraine", "dizzy", "dizziness",
			"numbness", "tingling",
		},
	},
	{
		Name: "constitutional",
		Phrases: []string{
			"night sweats",
			"weight loss",
			"weight gain",
		},
		Words: []string{
			"fatigue", "tired", "exhausted", "exhaustion", "fever",
			"chills", "weakness",
		},
	},
	{
		Name: "sleep",
		Phrases: []string{
			"trouble sleeping",
			"waking up",
		},
		Words: []string{"insomnia", "sleep", "sleepless", "restless"},
	},
	{
		Name: "mental_health",
		Phrases: []string{
			"panic attack",
			"panic attacks",
		},
		Words: []string{
			"anxiety", "anxious", "depressed", "depression", "stress",
			"stressed", "worried", "overwhelmed",
		},
	},
}
