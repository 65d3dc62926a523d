package event

// RequestType identifies a state mutation submitted by the input side
type RequestType uint8

const (
	RequestNone RequestType = iota

	// RequestClick hit-tests a plane point and strikes the ball under it
	// Producer: input.Dispatch | Fields: Point
	RequestClick

	// RequestImpulse adds an impulse to a ball by id, vector taken as given
	// Producer: scripted hosts, tests | Fields: BallID, Vector
	RequestImpulse

	// RequestColor changes a ball's display color
	// Producer: palette selection | Fields: BallID, Color
	RequestColor
)

func (t RequestType) String() string {
	switch t {
	case RequestClick:
		return "click"
	case RequestImpulse:
		return "impulse"
	case RequestColor:
		return "color"
	}
	return "none"
}

// NoticeType identifies the outcome of a drained request
type NoticeType uint8

const (
	NoticeNone NoticeType = iota

	// NoticeStruck reports an impulse applied to a ball
	// Fields: BallID, Velocity (new)
	NoticeStruck

	// NoticeSelected reports a click that landed on a ball; host opens the palette
	// Fields: BallID
	NoticeSelected

	// NoticeMissed reports a click outside every ball
	// Fields: Point
	NoticeMissed

	// NoticeRecolored reports a color change
	// Fields: BallID, Color
	NoticeRecolored

	// NoticeRejected reports a request that failed validation, state untouched
	// Fields: Request, Err
	NoticeRejected
)
