// Package flow implements the onboarding flow controller: a linear
// state machine over named screens ending in the dashboard.
package flow

// Screen identifies one mutually exclusive UI screen. Exactly one
// screen is current at any time; there is no screen stack and no back
// navigation.
type Screen int

const (
	ScreenIntro Screen = iota
	ScreenTerms
	ScreenOptions
	ScreenCreate
	ScreenQuiz
	ScreenRecover
	ScreenLogin
	ScreenConnect
	ScreenDashboard
)

func (s Screen) String() string {
	switch s {
	case ScreenIntro:
		return "intro"
	case ScreenTerms:
		return "terms"
	case ScreenOptions:
		return "options"
	case ScreenCreate:
		return "create"
	case ScreenQuiz:
		return "quiz"
	case ScreenRecover:
		return "recover"
	case ScreenLogin:
		return "login"
	case ScreenConnect:
		return "connect"
	case ScreenDashboard:
		return "dashboard"
	default:
		return "unknown"
	}
}
