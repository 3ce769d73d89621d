// Package taxonomy holds the static clinical vocabulary: per-category term
// lists, a synonym map, and an abbreviation map. Tables are built once at
// startup and never mutated, so they are safe for concurrent reads.
package taxonomy

// Category names, in extraction order.
const (
	CategoryConditions  = "conditions"
	CategoryMedications = "medications"
	CategoryProcedures  = "procedures"
	CategorySymptoms    = "symptoms"
	CategoryLabTests    = "labTests"
)

// Abbreviation maps a clinical shorthand to its full phrase. Expansion runs
// over normalized (lowercased) text, so abbreviations are stored lowercase.
type Abbreviation struct {
	Short string
	Full  string
}

// TermList pairs a category name with its ordered term table.
type TermList struct {
	Category string
	Terms    []string
}

// Tables is the immutable clinical vocabulary shared by all requests.
type Tables struct {
	Conditions      []string
	Medications     []string
	Procedures      []string
	Symptoms        []string
	LabTests        []string
	AnatomicalSites []string

	// Synonyms maps a canonical term to its alternates. Used to enrich the
	// processed query before it is sent to retrieval.
	Synonyms map[string][]string

	// Abbreviations is applied in order after normalization.
	Abbreviations []Abbreviation

	vocabulary []string
}

// Default builds the standard clinical vocabulary.
func Default() *Tables {
	t := &Tables{
		Conditions: []string{
			"diabetes",
			"diabetes mellitus",
			"type 2 diabetes",
			"hypertension",
			"high blood pressure",
			"heart failure",
			"congestive heart failure",
			"coronary artery disease",
			"myocardial infarction",
			"atrial fibrillation",
			"chronic obstructive pulmonary disease",
			"asthma",
			"pneumonia",
			"chronic kidney disease",
			"urinary tract infection",
			"gastroesophageal reflux disease",
			"stroke",
			"sepsis",
			"anemia",
			"hyperlipidemia",
			"obesity",
			"depression",
			"arthritis",
			"cancer",
		},
		Medications: []string{
			"metformin",
			"insulin",
			"lisinopril",
			"amlodipine",
			"losartan",
			"metoprolol",
			"atorvastatin",
			"aspirin",
			"clopidogrel",
			"warfarin",
			"apixaban",
			"furosemide",
			"omeprazole",
			"albuterol",
			"prednisone",
			"levothyroxine",
			"gabapentin",
			"sertraline",
			"ibuprofen",
			"acetaminophen",
		},
		Procedures: []string{
			"biopsy",
			"colonoscopy",
			"endoscopy",
			"echocardiogram",
			"electrocardiogram",
			"angioplasty",
			"cardiac catheterization",
			"stent placement",
			"bypass surgery",
			"dialysis",
			"intubation",
			"appendectomy",
			"cholecystectomy",
			"transplant",
			"mri",
			"ct scan",
			"x-ray",
			"ultrasound",
			"vaccination",
		},
		Symptoms: []string{
			"chest pain",
			"shortness of breath",
			"fatigue",
			"fever",
			"cough",
			"nausea",
			"vomiting",
			"diarrhea",
			"headache",
			"dizziness",
			"palpitations",
			"syncope",
			"edema",
			"swelling",
			"wheezing",
			"weight loss",
			"abdominal pain",
			"back pain",
			"confusion",
			"rash",
		},
		LabTests: []string{
			"hemoglobin a1c",
			"glucose",
			"creatinine",
			"blood urea nitrogen",
			"hemoglobin",
			"hematocrit",
			"white blood cell count",
			"platelet count",
			"complete blood count",
			"basic metabolic panel",
			"sodium",
			"potassium",
			"cholesterol",
			"ldl",
			"hdl",
			"triglycerides",
			"tsh",
			"troponin",
			"bnp",
			"inr",
			"bilirubin",
			"albumin",
		},
		AnatomicalSites: []string{
			"heart",
			"lung",
			"kidney",
			"liver",
			"brain",
			"chest",
			"abdomen",
			"head",
			"neck",
			"arm",
			"leg",
			"back",
			"spine",
			"cardiac",
			"pulmonary",
			"renal",
			"hepatic",
			"cerebral",
		},
		Synonyms: map[string][]string{
			"diabetes":                              {"diabetes mellitus", "hyperglycemia"},
			"diabetes mellitus":                     {"diabetes", "hyperglycemia"},
			"type 2 diabetes":                       {"diabetes mellitus", "adult onset diabetes"},
			"hypertension":                          {"high blood pressure", "elevated blood pressure"},
			"high blood pressure":                   {"hypertension"},
			"heart failure":                         {"congestive heart failure", "cardiac failure"},
			"congestive heart failure":              {"heart failure", "cardiac failure"},
			"myocardial infarction":                 {"heart attack"},
			"chronic obstructive pulmonary disease": {"emphysema", "chronic bronchitis"},
			"chronic kidney disease":                {"renal insufficiency", "kidney disease"},
			"stroke":                                {"cerebrovascular accident"},
			"pneumonia":                             {"lung infection"},
			"hyperlipidemia":                        {"high cholesterol", "dyslipidemia"},
			"asthma":                                {"reactive airway disease"},
		},
		Abbreviations: []Abbreviation{
			{Short: "dm", Full: "diabetes mellitus"},
			{Short: "htn", Full: "hypertension"},
			{Short: "bp", Full: "blood pressure"},
			{Short: "mi", Full: "myocardial infarction"},
			{Short: "chf", Full: "congestive heart failure"},
			{Short: "cad", Full: "coronary artery disease"},
			{Short: "afib", Full: "atrial fibrillation"},
			{Short: "copd", Full: "chronic obstructive pulmonary disease"},
			{Short: "ckd", Full: "chronic kidney disease"},
			{Short: "uti", Full: "urinary tract infection"},
			{Short: "gerd", Full: "gastroesophageal reflux disease"},
			{Short: "cva", Full: "cerebrovascular accident"},
			{Short: "hba1c", Full: "hemoglobin a1c"},
			{Short: "cbc", Full: "complete blood count"},
			{Short: "bmp", Full: "basic metabolic panel"},
			{Short: "ekg", Full: "electrocardiogram"},
			{Short: "ecg", Full: "electrocardiogram"},
			{Short: "sob", Full: "shortness of breath"},
		},
	}

	t.vocabulary = buildVocabulary(t)
	return t
}

// Categories returns the taxonomy term tables in extraction order.
func (t *Tables) Categories() []TermList {
	return []TermList{
		{Category: CategoryConditions, Terms: t.Conditions},
		{Category: CategoryMedications, Terms: t.Medications},
		{Category: CategoryProcedures, Terms: t.Procedures},
		{Category: CategorySymptoms, Terms: t.Symptoms},
		{Category: CategoryLabTests, Terms: t.LabTests},
	}
}

// Vocabulary returns the full cross-category term list, used for
// spell-correction distance checks.
func (t *Tables) Vocabulary() []string {
	return t.vocabulary
}

// SynonymsFor returns the known alternates for a term, or nil.
func (t *Tables) SynonymsFor(term string) []string {
	return t.Synonyms[term]
}

func buildVocabulary(t *Tables) []string {
	var vocab []string
	seen := make(map[string]struct{})
	for _, tl := range t.Categories() {
		for _, term := range tl.Terms {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			vocab = append(vocab, term)
		}
	}
	for _, term := range t.AnatomicalSites {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		vocab = append(vocab, term)
	}
	return vocab
}
