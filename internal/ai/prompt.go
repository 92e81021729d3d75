package ai

import (
	"fmt"
	"strings"
)

// BuildPrompt renders the exact prompt string for a task. Pure and total:
// every well-formed task produces a prompt.
func BuildPrompt(task Task) string {
	switch task.Kind {
	case TaskSummary:
		return buildSummaryPrompt(task.SourceText)
	case TaskVisualDescription:
		return buildVisualPrompt(task.Topic)
	case TaskQuiz:
		return buildQuizPrompt(task)
	case TaskBattleFlow:
		return buildBattleFlowPrompt(task.Battle)
	case TaskMapInfo:
		return buildMapInfoPrompt(task.Topic)
	case TaskWritingFeedback:
		return buildFeedbackPrompt(task.Question, task.Answer, task.SourceDesc)
	case TaskEquationBalance:
		return buildEquationPrompt(task.Equation)
	case TaskProcessExplainer:
		return buildProcessPrompt(task.Process)
	case TaskFlashcards:
		return buildFlashcardPrompt(task.SourceText)
	case TaskChat:
		return buildChatPrompt(task.Message)
	default:
		return ""
	}
}

func buildSummaryPrompt(text string) string {
	return fmt.Sprintf("Summarize the following text concisely for a secondary school student. Focus on the main points and key information:\n\n---\n%s\n---", text)
}

func buildVisualPrompt(topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Generate a detailed yet easy-to-understand description (around 6-10 sentences) to help an engineering college student visualize the concept or topic of '%s'.\n", topic))
	b.WriteString("Focus on imagery, analogies, or easy-to-picture scenes. Avoid overly technical jargon but provide enough detail for a good mental picture.\n\n")
	b.WriteString("Example for 'Gravity': 'Imagine the Earth like a giant, slightly stretchy trampoline. Anything with mass, like you or an apple, creates a small dip. Things naturally roll downhill into these dips towards the object - that's gravity pulling them in! The bigger the mass, the deeper the dip, the stronger the pull.'\n")
	b.WriteString("Example for 'Photosynthesis': 'Think of a tiny solar-powered kitchen inside a plant leaf. It uses sunlight energy, water sucked up by roots, and carbon dioxide from the air to cook up sugary food (glucose) for the plant's energy. As a bonus, it releases the oxygen we breathe as a waste product.'\n\n")
	b.WriteString(fmt.Sprintf("Now, generate a description for: '%s'\n", topic))

	return b.String()
}

var quizDifficulties = map[string]string{
	"easy":   "easy (suitable for secondary school level)",
	"medium": "medium difficulty (suitable for introductory university level)",
	"hard":   "hard (suitable for challenging university level)",
}

// QuizDifficultyDescription maps a simple difficulty term onto the phrase
// embedded in the quiz prompt, defaulting to easy.
func QuizDifficultyDescription(difficulty string) string {
	if d, ok := quizDifficulties[difficulty]; ok {
		return d
	}
	return quizDifficulties["easy"]
}

// buildQuizPrompt encodes a two-step contract: the model first judges whether
// the source text is relevant to the subject; if not, its only valid output
// is a one-key error object, otherwise a JSON list of question objects.
func buildQuizPrompt(task Task) string {
	subject := capitalize(task.Subject)
	var b strings.Builder

	b.WriteString("You are a strict subject-matter expert creating a quiz.\n\n")
	b.WriteString(fmt.Sprintf("Step 1: Analyze Relevance. First, determine if the following Source Text/Topic is relevant to the subject of %s.\n\n", subject))
	b.WriteString("Step 2: Generate Output.\n")
	b.WriteString(fmt.Sprintf("- If the text is NOT relevant to %s, your ONLY output MUST be this exact JSON object:\n", subject))
	b.WriteString(fmt.Sprintf(`  {"error": "The provided text does not seem to be related to %s. Please provide relevant text to generate a quiz."}`, subject))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("- If the text IS relevant, generate exactly %d multiple-choice quiz questions of %s difficulty. For each question, provide 4 options (A, B, C, D) and the correct answer letter. Return the output ONLY as a single valid JSON list of objects, like this example:\n", task.Count, QuizDifficultyDescription(task.Difficulty)))
	b.WriteString(`  [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": "A"}]`)
	b.WriteString("\n\n")
	b.WriteString("Do not add any explanatory text before or after your JSON output in either case.\n\n")
	b.WriteString("Source Text/Topic:\n---\n")
	b.WriteString(task.SourceText)
	b.WriteString("\n---\n\nGenerate the JSON quiz now:\n")

	return b.String()
}

func buildBattleFlowPrompt(battle string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("For the historical battle '%s', generate a concise, chronological sequence of the main events, causes, or contributing factors that led up to the battle itself.\n", battle))
	b.WriteString("Present this as a clearly formatted numbered or bulleted list.\n")
	b.WriteString("Focus on key developments understandable by a secondary school student. Avoid excessive detail.\n")
	b.WriteString("Start from relevant background context and end just before the battle begins. Ensure the flow is logical and historically plausible.\n\n")
	b.WriteString("Example format for 'Battle of Hastings':\n")
	b.WriteString("* Death of Edward the Confessor created a succession crisis.\n")
	b.WriteString("* Harold Godwinson was crowned King, but faced rival claims from William of Normandy and Harald Hardrada of Norway.\n")
	b.WriteString("* Hardrada invaded northern England, forcing Harold to march north and defeat him at Stamford Bridge.\n")
	b.WriteString("* While Harold was in the north, William landed his invasion force on the south coast at Pevensey.\n")
	b.WriteString("* Harold rapidly marched his tired army south again to confront William near Hastings.\n\n")
	b.WriteString(fmt.Sprintf("Now, generate the event flow for: '%s'\n", battle))

	return b.String()
}

func buildMapInfoPrompt(topic string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Analyze the geographical topic: %q. Provide information suitable for displaying on an interactive map for a secondary school student.\n\n", topic))
	b.WriteString("Return the output ONLY as a single valid JSON object with the following keys:\n")
	b.WriteString("- \"center_lat\": Suggested map center latitude (float). Use null if no sensible center exists.\n")
	b.WriteString("- \"center_lon\": Suggested map center longitude (float). Use null if no sensible center exists.\n")
	b.WriteString("- \"zoom\": Suggested initial map zoom level (integer, e.g., 3-5 for global/continental, 6-10 for country/region, 11-14 for city/area, 15+ for specific site). Use null if no sensible default zoom exists.\n")
	b.WriteString("- \"description\": A reasonably detailed (around 4-6 sentences) geographical description of the topic, written in easy-to-understand language.\n")
	b.WriteString("- \"points_of_interest\": A JSON list of 1 to 5 specific, relevant locations. Each object must have: \"name\" (string), \"lat\" (float), \"lon\" (float), \"popup_info\" (string). Always include at least one point.\n")
	b.WriteString("- \"bounding_box\": An object with keys \"south_west_lat\", \"south_west_lon\", \"north_east_lat\", \"north_east_lon\" (all floats) covering the main area of the topic, or null if a bounding box is not applicable (e.g., a single landmark). Ensure coordinates are plausible.\n\n")
	b.WriteString("Strictly adhere to the JSON format. Output only the JSON object, nothing else.\n\n")
	b.WriteString("Example for \"Sahara Desert\":\n")
	b.WriteString(`{"center_lat": 23.0, "center_lon": 12.0, "zoom": 4, "description": "The Sahara is the largest hot desert in the world...", "points_of_interest": [{"name": "Erg Chebbi, Morocco", "lat": 31.16, "lon": -3.98, "popup_info": "Famous sand dunes..."}, {"name": "Ahaggar Mountains, Algeria", "lat": 23.29, "lon": 5.54, "popup_info": "Highland region..."}], "bounding_box": {"south_west_lat": 15.0, "south_west_lon": -17.0, "north_east_lat": 35.0, "north_east_lon": 40.0}}`)
	b.WriteString("\n\nExample for \"Eiffel Tower\":\n")
	b.WriteString(`{"center_lat": 48.8584, "center_lon": 2.2945, "zoom": 16, "description": "A famous wrought-iron lattice tower located on the Champ de Mars in Paris, France.", "points_of_interest": [{"name": "Eiffel Tower Summit", "lat": 48.8584, "lon": 2.2945, "popup_info": "Iconic landmark offering panoramic views."}], "bounding_box": null}`)
	b.WriteString(fmt.Sprintf("\n\nNow generate the JSON for topic: %q\n", topic))

	return b.String()
}

func buildFeedbackPrompt(question, answer, sourceDesc string) string {
	var b strings.Builder

	b.WriteString("Act as a helpful and encouraging college faculty member reviewing a student's written answer.\n")
	b.WriteString("Provide constructive feedback on the student's answer below, considering the provided question or topic.\n\n")
	b.WriteString("Question/Topic:\n")
	b.WriteString(question)
	b.WriteString(fmt.Sprintf("\n\nStudent's Answer (from %s):\n", sourceDesc))
	b.WriteString(answer)
	b.WriteString("\n\nInstructions for Feedback:\n")
	b.WriteString("1. Acknowledge effort.\n")
	b.WriteString("2. Comment on Relevance & Accuracy (mentioning AI limitations on fact-checking).\n")
	b.WriteString("3. Evaluate Clarity & Structure.\n")
	b.WriteString("4. Assess Completeness for secondary level.\n")
	b.WriteString("5. Comment on Terminology/Vocabulary use.\n")
	b.WriteString("6. Provide 1-2 specific, actionable Suggestions for Improvement.\n")
	b.WriteString("7. Maintain positive, encouraging Tone. Do NOT grade.\n")
	b.WriteString("8. Format clearly (e.g., use bullet points for suggestions).\n\n")
	b.WriteString("Provide the feedback now:\n")

	return b.String()
}

func buildEquationPrompt(equation string) string {
	var b strings.Builder

	b.WriteString("You are an expert chemistry assistant.\n")
	b.WriteString(fmt.Sprintf("Given the unbalanced chemical equation: %q\n\n", equation))
	b.WriteString("1. Balance this chemical equation.\n")
	b.WriteString("2. Provide a step-by-step explanation of how you balanced it, or explain the principle of conservation of atoms/mass applied. If the equation is already balanced, state that and briefly explain why.\n")
	b.WriteString("3. If the equation is invalid or cannot be balanced, explain why.\n\n")
	b.WriteString("Return the output ONLY as a single valid JSON object with the following exact keys:\n")
	b.WriteString("- \"balanced_equation\": A string representing the balanced chemical equation.\n")
	b.WriteString("- \"explanation\": A string containing the detailed explanation.\n")
	b.WriteString("- \"is_balanced_successfully\": A boolean (true if a previously unbalanced equation was successfully balanced, false if the input was already balanced, invalid, or balancing failed).\n\n")
	b.WriteString("Example for \"H2 + O2 -> H2O\":\n")
	b.WriteString(`{"balanced_equation": "2H2 + O2 -> 2H2O", "explanation": "To balance the equation, we need an equal number of each type of atom on both sides...", "is_balanced_successfully": true}`)
	b.WriteString("\n\nExample for \"H2O -> H2O\" (already balanced):\n")
	b.WriteString(`{"balanced_equation": "H2O -> H2O", "explanation": "The provided equation is already balanced as the number of hydrogen and oxygen atoms are equal on both sides.", "is_balanced_successfully": false}`)
	b.WriteString(fmt.Sprintf("\n\nNow, process the equation: %q\n", equation))

	return b.String()
}

func buildProcessPrompt(process string) string {
	var b strings.Builder

	b.WriteString("You are an expert biology educator.\n")
	b.WriteString(fmt.Sprintf("For the biological process %q, provide a detailed explanation suitable for a secondary school or early university student.\n\n", process))
	b.WriteString("Return the output ONLY as a single valid JSON object with the following exact keys:\n")
	b.WriteString("- \"process_name_explained\": A string confirming the process name, with common synonyms if appropriate.\n")
	b.WriteString("- \"overview\": A concise overview (2-4 sentences) of what the process is and its general purpose.\n")
	b.WriteString("- \"key_stages\": A list of strings, each describing a key stage or step in the process. Aim for 3-7 key stages if applicable.\n")
	b.WriteString("- \"inputs_outputs\": A string briefly listing the main reactants/inputs and products/outputs.\n")
	b.WriteString("- \"significance\": A brief explanation (2-3 sentences) of the importance of this process for living organisms or ecosystems.\n\n")
	b.WriteString("Ensure the language is clear, accurate, and easy to understand.\n\n")
	b.WriteString("Example for \"Photosynthesis\":\n")
	b.WriteString(`{"process_name_explained": "Photosynthesis", "overview": "Photosynthesis is the process used by plants, algae, and some bacteria to convert light energy into chemical energy, turning carbon dioxide and water into glucose and oxygen.", "key_stages": ["Light-dependent reactions: Light energy is absorbed by chlorophyll and converted into chemical energy (ATP and NADPH). Water is split, releasing oxygen.", "Light-independent reactions (Calvin Cycle): ATP and NADPH are used to convert carbon dioxide into glucose."], "inputs_outputs": "Inputs: Carbon Dioxide, Water, Light Energy; Outputs: Glucose, Oxygen", "significance": "Photosynthesis produces food for plants, the base of most food chains, and releases the oxygen most organisms need for respiration."}`)
	b.WriteString(fmt.Sprintf("\n\nNow, generate the JSON explanation for: %q\n", process))

	return b.String()
}

func buildFlashcardPrompt(sourceText string) string {
	var b strings.Builder

	b.WriteString("Based on the following text or topic, identify 5 to 10 key terms, concepts, or important facts.\n")
	b.WriteString("For each identified item, provide a concise definition, explanation, or associated key information suitable for a flashcard.\n")
	b.WriteString("The term should be relatively short. The definition should be clear and informative.\n\n")
	b.WriteString("Return the output ONLY as a single valid JSON list of objects. Each object must have these exact keys:\n")
	b.WriteString("- \"term\": A string representing the key term or concept.\n")
	b.WriteString("- \"definition\": A string containing the concise definition or explanation for that term.\n\n")
	b.WriteString("Do not include any explanatory text, markdown, or anything else before or after the JSON list.\n\n")
	b.WriteString("Source Text/Topic:\n---\n")
	b.WriteString(sourceText)
	b.WriteString("\n---\n\nJSON Output Example:\n")
	b.WriteString(`[{"term": "Photosynthesis", "definition": "The process by which green plants use sunlight to synthesize foods with the help of chlorophyll."}, {"term": "Stomata", "definition": "Tiny pores in the epidermis of a leaf or stem that allow movement of gases in and out."}]`)
	b.WriteString("\n\nNow, generate the JSON list of flashcard data:\n")

	return b.String()
}

// ChatSubjects is the fixed scope the chatbot is allowed to discuss.
var ChatSubjects = []string{"physics", "chemistry", "biology", "history", "geography"}

func buildChatPrompt(message string) string {
	var b strings.Builder

	b.WriteString("You are a friendly and helpful AI assistant for a student learning platform.\n")
	b.WriteString(fmt.Sprintf("The student said: %q\n\n", message))
	b.WriteString(fmt.Sprintf("Respond concisely and helpfully, but do not answer anything outside the scope of %s.\n", strings.Join(ChatSubjects, ", ")))
	b.WriteString("If the question is complex or outside your general knowledge of those subjects, politely state that you can help with general queries or guide the student to specific features on the platform.\n")
	b.WriteString("Keep your answers relatively short and suitable for a chat interface.\n")
	b.WriteString("If asked about a topic within those subjects, tailor your answer slightly, but primarily act as a general helper and mention that detailed queries belong on the subject-specific page.\n")
	b.WriteString("If the question is out of scope, say the platform currently focuses only on those subjects and more will be added soon.\n")
	b.WriteString("Do not make up facts. If you don't know, say so.\n")

	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
