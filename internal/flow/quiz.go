package flow

// QuizQuestion is one safety question shown before passphrase creation.
type QuizQuestion struct {
	Prompt  string
	Options []string
	correct int
}

// Correct reports whether the chosen option index answers the question.
func (q QuizQuestion) Correct(choice int) bool {
	return choice == q.correct
}

// quizQuestions is the fixed pre-creation safety quiz. A wrong answer
// retries the same question; completing all three starts the create
// flow with a fresh passphrase.
var quizQuestions = []QuizQuestion{
	{
		Prompt:  "Is Ardex a custodial wallet?",
		Options: []string{"Yes", "No"},
		correct: 1,
	},
	{
		Prompt:  "If anyone asks for your passphrase, what do you do?",
		Options: []string{"Give it", "Block and avoid"},
		correct: 1,
	},
	{
		Prompt:  "If you lose your asset, will Ardex return it?",
		Options: []string{"Yes", "No, I take responsibility"},
		correct: 1,
	},
}

// Quiz tracks progress through the safety questions.
type Quiz struct {
	index int
}

// Question returns the current question, or false when the quiz is done.
func (q *Quiz) Question() (QuizQuestion, bool) {
	if q.index >= len(quizQuestions) {
		return QuizQuestion{}, false
	}
	return quizQuestions[q.index], true
}

// Answer submits a choice for the current question. A correct answer
// advances; a wrong one keeps the same question for retry.
func (q *Quiz) Answer(choice int) (correct, done bool) {
	cur, ok := q.Question()
	if !ok {
		return false, true
	}
	if !cur.Correct(choice) {
		return false, false
	}
	q.index++
	return true, q.index >= len(quizQuestions)
}
