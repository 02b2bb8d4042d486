package board

import "math"

// BallId identifies a ball for the lifetime of a board. Ids are never reused
// and 0 is never assigned.
type BallId uint32

// Kind is the color of a ball. Only balls of the same kind can match.
type Kind uint8

const (
	Blue Kind = iota
	Cyan
	Green
	Grey
	Purple
	Red
	Yellow
)

// AllKinds lists every ball color in declaration order.
var AllKinds = []Kind{Blue, Cyan, Green, Grey, Purple, Red, Yellow}

var kindNames = [...]string{"blue", "cyan", "green", "grey", "purple", "red", "yellow"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Vec2 is a point or vector in board space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Rect is an axis aligned area. Min is inclusive, Max exclusive.
type Rect struct {
	Min, Max Vec2
}

func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Ball is a single colored ball on the board.
type Ball struct {
	Id       BallId
	Kind     Kind
	Position Vec2
	Alive    bool
}
