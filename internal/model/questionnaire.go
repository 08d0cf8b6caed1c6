package model

// QChatItems is the number of items on the Q-Chat-10 questionnaire
const QChatItems = 10

// Questions are the ten Q-Chat-10 screening items, in scored order.
// Item 10 is inverse-phrased and reverse-scored by the answer codec.
var Questions = [QChatItems]string{
	"Does your child look at you when you call his/her name?",
	"How easy is it for you to get eye contact with your child?",
	"Does your child point to indicate that he or she wants something?",
	"Does your child point to share interest with you?",
	"Does your child pretend?",
	"Does your child follow where you're looking?",
	"If someone is visibly upset, does your child show signs of wanting to comfort them?",
	"Does your child respond when asked to repeat a word?",
	"Does your child use simple gestures?",
	"Does your child stare at nothing with no apparent purpose?",
}

// Options is the fixed 5-point frequency vocabulary for every item
var Options = []string{"Always", "Usually", "Sometimes", "Rarely", "Never"}

// Questionnaire is the payload served to form clients
type Questionnaire struct {
	Questions []string `json:"questions"`
	Options   []string `json:"options"`
}

// NewQuestionnaire returns the Q-Chat-10 form definition
func NewQuestionnaire() *Questionnaire {
	return &Questionnaire{
		Questions: Questions[:],
		Options:   Options,
	}
}
