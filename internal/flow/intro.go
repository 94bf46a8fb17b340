package flow

import "time"

// IntroPhrases is the fixed intro sequence revealed character by
// character before the terms screen.
var IntroPhrases = []string{
	"SECURE DECENTRALIZED ASSETS",
	"TOKENIZED REAL WORLD VALUE",
	"POWERED BY HEDERA",
}

const (
	introCharDelay   = 45 * time.Millisecond
	introPhraseDelay = 600 * time.Millisecond
)

// RunIntro reveals the intro phrases and advances to the terms screen.
// An empty phrase list or missing renderer falls straight through to
// terms without error.
func (c *Controller) RunIntro(phrases []string) {
	if c.renderer != nil {
		for _, phrase := range phrases {
			c.renderer.Typewriter(phrase, introCharDelay)
			c.renderer.Pause(introPhraseDelay)
		}
	}
	c.transition(ScreenTerms)
}
