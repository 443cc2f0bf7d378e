package plan

import "github.com/justinav/pamoka/internal/llm"

// SystemInstruction is the fixed instruction every session is opened with.
// It is a prose contract, in Lithuanian, describing the exact JSON shape
// the model must reply with. Session identity starts from this text.
const SystemInstruction = `Tu esi ekspertas pedagogas ir pamokų planavimo asistentas, puikiai išmanantis Lietuvos bendrąsias ugdymo programas (pasiekiamas https://emokykla.lt/bendrosios-programos/visos-bendrosios-programos). Tavo tikslas - padėti mokytojams kurti išsamius, struktūruotus ir diferencijuotus pamokų planus. Visada atsakyk lietuvių kalba.
Tavo atsakas privalo būti JSON formatu, griežtai laikantis šios struktūros:
{
  "generalNotes": "Bendros pastabos apie pamoką, jei mokytojas jų pateikė. Jei pastabų nėra, palik tuščią eilutę.",
  "lessonOverview": {
    "topic": "Pamokos tema",
    "goal": "Pamokos tikslas ir uždaviniai",
    "competencies": "Pagrindiniai gebėjimai pagal Bendrąsias Programas",
    "evaluation": "Kaip mokiniai bus vertinami šioje pamokoje, atsižvelgiant į nurodytą vertinimo tipą."
  },
  "lessonActivities": {
    "gifted": "Veiklos gabesniems mokiniams",
    "general": "Veiklos bendro lygio mokiniams",
    "struggling": "Veiklos pagalbos reikalingiems mokiniams"
  },
  "homework": {
    "purpose": "Namų darbų tikslas ir sąsajos su pamoka. Aprašymas turi būti motyvuojantis ir aiškiai paaiškinti, kodėl užduotis svarbi (pvz., 'kad geriau prisimintumėte, ką šiandien išmokome', 'kad įtvirtintumėte gebėjimą...', 'kad pasiruoštumėte rytojaus diskusijai apie...').",
    "gifted": "Užduotis gabesniems mokiniams",
    "general": "Užduotis bendro lygio mokiniams",
    "struggling": "Užduotis pagalbos reikalingiems mokiniams"
  },
  "eDiaryEntry": {
    "classwork": "Trumpas ir aiškus pamokos temos pavadinimas, tinkamas įrašyti į dienyno 'Klasės darbai' skiltį. Pvz.: 'Dviejų skaitmenų skaičių sudėtis'.",
    "homework": "Suformuluota namų darbų užduotis, tinkama įrašyti į dienyno 'Namų darbai' skiltį. Pvz.: 'Pratybų sąsiuvinis, p. 25, 3 pratimas.'. Jei namų darbai neskiriami, nurodyk 'Neskirta'.",
    "notes": "Pastabos apie pamoką, pvz., apie vertinimą ar priminimus mokiniams, tinkamos įrašyti į dienyno 'Pastabos apie pamoką' skiltį. Pvz.: 'Mokiniai bus vertinami už aktyvumą pamokoje.'",
    "thematicPlanning": "Įrašas dienyno 'Teminis planavimas' skilčiai: temos vieta ilgalaikiame plane.",
    "individualWork": "Įrašas dienyno 'Individualus darbas' skilčiai: kaip diferencijuojamas darbas su atskirais mokiniais."
  },
  "motivation": "Trumpa, įkvepianti, motyvuojanti žinutė mokytojui, girianti jo darbą ir pastangas."
}
Nesvarbu, koks vartotojo prašymas, tavo atsakas privalo būti tik šis JSON objektas, be jokio papildomo teksto ar paaiškinimų.`

func stringField(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

// PlanSchema defines the JSON schema a lesson-plan reply must satisfy.
// Providers use it as the structured-output hint; the parser uses it for
// strict validation of the decoded reply.
var PlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A differentiated lesson plan for Lithuanian general education",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"generalNotes": stringField("General notes about the lesson, empty when none"),
			"lessonOverview": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"topic":        stringField("Lesson topic"),
					"goal":         stringField("Lesson goal and objectives"),
					"competencies": stringField("Key competencies per the national curriculum"),
					"evaluation":   stringField("How learners are evaluated in this lesson"),
				},
				"required":             []any{"topic", "goal", "competencies", "evaluation"},
				"additionalProperties": false,
			},
			"lessonActivities": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"gifted":     stringField("Activities for gifted learners"),
					"general":    stringField("Activities for general-level learners"),
					"struggling": stringField("Activities for learners needing support"),
				},
				"required":             []any{"gifted", "general", "struggling"},
				"additionalProperties": false,
			},
			"homework": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"purpose":    stringField("Homework purpose and ties to the lesson"),
					"gifted":     stringField("Homework for gifted learners"),
					"general":    stringField("Homework for general-level learners"),
					"struggling": stringField("Homework for learners needing support"),
				},
				"required":             []any{"purpose", "gifted", "general", "struggling"},
				"additionalProperties": false,
			},
			"eDiaryEntry": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"classwork":        stringField("Entry for the diary 'Classwork' column"),
					"homework":         stringField("Entry for the diary 'Homework' column"),
					"notes":            stringField("Entry for the diary 'Lesson notes' column"),
					"thematicPlanning": stringField("Entry for the diary 'Thematic planning' column"),
					"individualWork":   stringField("Entry for the diary 'Individual work' column"),
				},
				"required":             []any{"classwork", "homework", "notes", "thematicPlanning", "individualWork"},
				"additionalProperties": false,
			},
			"motivation": stringField("Short motivating message for the teacher"),
		},
		"required":             []any{"lessonOverview", "lessonActivities", "homework", "eDiaryEntry", "motivation"},
		"additionalProperties": false,
	},
}
