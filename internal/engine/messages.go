package engine

import "fmt"

// Message is the title and body shown for a rejected word.
type Message struct {
	Title string
	Text  string
}

var messages = map[Reason]Message{
	TooShort:    {Title: "Words of 3 letters or fewer are not allowed", Text: "Use a longer word"},
	EqualsRoot:  {Title: "Your answer equals the root word", Text: "Don't cheat"},
	AlreadyUsed: {Title: "Word used already", Text: "Be more original!"},
	NotPossible: {Title: "Word not possible", Text: "You can't spell that word from '%s'"},
	NotReal:     {Title: "Word not recognized", Text: "Use a real word"},
}

// MessageFor looks up the pair for reason. Accepted and unknown reasons yield
// the zero Message.
func MessageFor(reason Reason, root string) Message {
	msg, ok := messages[reason]
	if !ok {
		return Message{}
	}
	if reason == NotPossible {
		msg.Text = fmt.Sprintf(msg.Text, root)
	}
	return msg
}

// String joins title and text for single-line output.
func (m Message) String() string {
	if m.Title == "" {
		return ""
	}
	return m.Title + ": " + m.Text
}
