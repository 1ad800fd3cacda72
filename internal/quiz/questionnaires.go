package quiz

import "mindcheck-service/internal/domain"

// Bundled questionnaire identifiers.
const (
	WellbeingID = "wellbeing"
	CheckupID   = "checkup"
)

// Bundled returns the questionnaires shipped with the service, keyed by ID.
func Bundled() map[string]domain.Questionnaire {
	return map[string]domain.Questionnaire{
		WellbeingID: Wellbeing(),
		CheckupID:   Checkup(),
	}
}

// Wellbeing is the fifteen question self-check used by the standalone quiz page.
func Wellbeing() domain.Questionnaire {
	return domain.Questionnaire{ID: WellbeingID, Title: "Mental Well-being Self-Check", Questions: []domain.Question{
		question("How often do you feel able to relax and unwind after a stressful day?",
			opt("Almost always", domain.CategoryGood),
			opt("Sometimes", domain.CategoryMedium),
			opt("Rarely", domain.CategoryAverage),
			opt("Never", domain.CategoryBad),
		),
		question("How would you describe your current sleep habits?",
			opt("Consistently restful", domain.CategoryGood),
			opt("Fair, but sometimes troubled", domain.CategoryMedium),
			opt("Inconsistent", domain.CategoryAverage),
			opt("Frequently poor", domain.CategoryBad),
		),
		question("When faced with challenges, you...",
			opt("Feel resilient and seek healthy coping", domain.CategoryGood),
			opt("Try to cope, but sometimes struggle", domain.CategoryMedium),
			opt("Often feel overwhelmed", domain.CategoryAverage),
			opt("Tend to avoid or give up", domain.CategoryBad),
		),
		question("How often do you feel overwhelmed by daily tasks or responsibilities?",
			opt("Rarely or never", domain.CategoryGood),
			opt("Sometimes", domain.CategoryMedium),
			opt("Often", domain.CategoryAverage),
			opt("Almost always", domain.CategoryBad),
		),
		question("How would you rate your ability to manage stress?",
			opt("Excellent", domain.CategoryGood),
			opt("Good", domain.CategoryMedium),
			opt("Fair", domain.CategoryAverage),
			opt("Poor", domain.CategoryBad),
		),
		question("How connected do you feel to friends, family, or your community?",
			opt("Very connected and supported", domain.CategoryGood),
			opt("Moderately connected", domain.CategoryMedium),
			opt("Somewhat isolated", domain.CategoryAverage),
			opt("Very isolated and alone", domain.CategoryBad),
		),
		question("How often do you engage in physical activity?",
			opt("Daily or almost daily", domain.CategoryGood),
			opt("A few times a week", domain.CategoryMedium),
			opt("Occasionally", domain.CategoryAverage),
			opt("Rarely or never", domain.CategoryBad),
		),
		question("How would you describe your overall mood most days?",
			opt("Positive and optimistic", domain.CategoryGood),
			opt("Generally stable, with some ups and downs", domain.CategoryMedium),
			opt("Often low or irritable", domain.CategoryAverage),
			opt("Consistently sad or anxious", domain.CategoryBad),
		),
		question("Do you find yourself withdrawing from social activities you once enjoyed?",
			opt("Never", domain.CategoryGood),
			opt("Rarely", domain.CategoryMedium),
			opt("Sometimes", domain.CategoryAverage),
			opt("Often or always", domain.CategoryBad),
		),
		question("How often do you feel a sense of purpose or meaning in your daily life?",
			opt("Almost always", domain.CategoryGood),
			opt("Often", domain.CategoryMedium),
			opt("Sometimes", domain.CategoryAverage),
			opt("Rarely or never", domain.CategoryBad),
		),
		question("How well do you manage your emotions during difficult situations?",
			opt("Very well, I stay calm and focused", domain.CategoryGood),
			opt("Reasonably well, but sometimes I get flustered", domain.CategoryMedium),
			opt("Not very well, I often feel overwhelmed by them", domain.CategoryAverage),
			opt("Poorly, my emotions often control me", domain.CategoryBad),
		),
		question("How often do you feel hopeful about the future?",
			opt("Almost always", domain.CategoryGood),
			opt("Most of the time", domain.CategoryMedium),
			opt("Sometimes", domain.CategoryAverage),
			opt("Rarely or never", domain.CategoryBad),
		),
		question("How often do you engage in activities that bring you joy or help you de-stress?",
			opt("Almost daily", domain.CategoryGood),
			opt("A few times a week", domain.CategoryMedium),
			opt("Occasionally", domain.CategoryAverage),
			opt("Rarely or never", domain.CategoryBad),
		),
		question("How confident are you in your ability to handle unexpected life changes?",
			opt("Very confident", domain.CategoryGood),
			opt("Moderately confident", domain.CategoryMedium),
			opt("A little unsure", domain.CategoryAverage),
			opt("Not confident at all", domain.CategoryBad),
		),
		question("How often do you practice mindfulness or meditation?",
			opt("Daily", domain.CategoryGood),
			opt("A few times a week", domain.CategoryMedium),
			opt("Occasionally", domain.CategoryAverage),
			opt("Never", domain.CategoryBad),
		),
	}}
}

// Checkup is the thirteen question quiz embedded in the landing page.
func Checkup() domain.Questionnaire {
	return domain.Questionnaire{ID: CheckupID, Title: "Mental Health Quiz", Questions: []domain.Question{
		question("How often do you feel able to relax and unwind after a stressful day?",
			opt("Almost always", domain.CategoryGood),
			opt("Sometimes", domain.CategoryMedium),
			opt("Rarely", domain.CategoryAverage),
			opt("Never", domain.CategoryBad),
		),
		question("How would you describe your current sleep habits?",
			opt("Consistently restful", domain.CategoryGood),
			opt("Fair, but sometimes troubled", domain.CategoryMedium),
			opt("Inconsistent", domain.CategoryAverage),
			opt("Frequently poor", domain.CategoryBad),
		),
		question("When faced with challenges, you...",
			opt("Feel resilient and seek healthy coping", domain.CategoryGood),
			opt("Try, but occasionally struggle", domain.CategoryMedium),
			opt("Find it overwhelming sometimes", domain.CategoryAverage),
			opt("Feel helpless or hopeless", domain.CategoryBad),
		),
		question("How often do you seek help or talk to others when feeling low?",
			opt("Whenever I need to", domain.CategoryGood),
			opt("Occasionally", domain.CategoryMedium),
			opt("Rarely", domain.CategoryAverage),
			opt("Never", domain.CategoryBad),
		),
		question("How do you rate your self-esteem currently?",
			opt("High", domain.CategoryGood),
			opt("Moderate", domain.CategoryMedium),
			opt("Low at times", domain.CategoryAverage),
			opt("Very low", domain.CategoryBad),
		),
		question("How do you manage feelings of anxiety or worry?",
			opt("Practice calming and grounding techniques", domain.CategoryGood),
			opt("Try to distract myself", domain.CategoryMedium),
			opt("Struggle to manage", domain.CategoryAverage),
			opt("Feel overwhelmed often", domain.CategoryBad),
		),
		question("How strong is your social support network?",
			opt("Very strong", domain.CategoryGood),
			opt("Moderate", domain.CategoryMedium),
			opt("Weak", domain.CategoryAverage),
			opt("None", domain.CategoryBad),
		),
		question("How often do you enjoy activities or hobbies?",
			opt("Daily or almost daily", domain.CategoryGood),
			opt("A few times a week", domain.CategoryMedium),
			opt("Once or twice a month", domain.CategoryAverage),
			opt("Never", domain.CategoryBad),
		),
		question("How frequently do you experience persistent sadness?",
			opt("Very rarely", domain.CategoryGood),
			opt("Sometimes", domain.CategoryMedium),
			opt("Often", domain.CategoryAverage),
			opt("Almost all the time", domain.CategoryBad),
		),
		question("How often do you find it difficult to concentrate or focus?",
			opt("Rarely", domain.CategoryGood),
			opt("Occasionally", domain.CategoryMedium),
			opt("Frequently", domain.CategoryAverage),
			opt("Always", domain.CategoryBad),
		),
		question("How do you describe your appetite and eating patterns?",
			opt("Healthy and balanced", domain.CategoryGood),
			opt("Mostly balanced", domain.CategoryMedium),
			opt("Irregular at times", domain.CategoryAverage),
			opt("Very erratic or unhealthy", domain.CategoryBad),
		),
		question("In the last month, how often did you feel hopeless about your future?",
			opt("Not at all", domain.CategoryGood),
			opt("A few times", domain.CategoryMedium),
			opt("Several times", domain.CategoryAverage),
			opt("Very often or always", domain.CategoryBad),
		),
		question("How would you rate your current overall mental health?",
			opt("Excellent", domain.CategoryGood),
			opt("Good", domain.CategoryMedium),
			opt("Fair", domain.CategoryAverage),
			opt("Poor", domain.CategoryBad),
		),
	}}
}

func question(prompt string, options ...domain.Option) domain.Question {
	return domain.Question{Prompt: prompt, Options: options}
}

func opt(label string, c domain.Category) domain.Option {
	return domain.Option{Label: label, Category: c}
}
