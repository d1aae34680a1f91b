package robotproto

import (
	"strconv"
	"strings"
)

// Navigator drives a robot from its unknown starting position and
// orientation back to the origin (§4.3). Position and Orientation are
// always consistent with the last successful move/turn reply received.
type Navigator struct {
	conn        *Conn
	position    Position
	orientation Orientation
}

// NewNavigator returns a Navigator bound to c. Position and orientation
// are unknown until Navigate is called.
func NewNavigator(c *Conn) *Navigator {
	return &Navigator{conn: c}
}

// Position returns the last known position.
func (n *Navigator) Position() Position { return n.position }

// Navigate discovers the robot's initial orientation, drives it to
// (0, 0), and returns. It never loops indefinitely against an obstacle:
// every single-axis attempt ends at the first stalled move and falls
// back out to the outer loop, which re-evaluates from scratch.
func (n *Navigator) Navigate() error {
	if err := n.determineInitialOrientation(); err != nil {
		return err
	}
	for !n.position.IsOrigin() {
		for axis := 0; axis < 2; axis++ {
			if err := n.reduceAxis(axis); err != nil {
				return err
			}
		}
	}
	return nil
}

// desiredDirection returns the orientation that reduces the magnitude
// of the given axis's coordinate.
//
// Axis 1 (y) is paired with North/South the way the original
// implementation this protocol was distilled from does: north is
// chosen when y is negative. determineInitialOrientation labels a
// move with dy > 0 as North, so facing North raises y toward zero and
// facing South lowers it. The labels themselves are never
// client-observable (only the resulting MOVE/TURN commands are sent
// over the wire) — see DESIGN.md.
func (n *Navigator) desiredDirection(axis int) Orientation {
	if axis == 0 {
		if n.position.X > 0 {
			return West
		}
		return East
	}
	if n.position.Y < 0 {
		return North
	}
	return South
}

// coord returns the signed coordinate for the given axis (0 = x, 1 = y).
func (p Position) coord(axis int) int32 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

func (n *Navigator) reduceAxis(axis int) error {
	if n.position.coord(axis) != 0 {
		direction := n.desiredDirection(axis)
		for n.orientation != direction {
			if err := n.turnLeft(); err != nil {
				return err
			}
		}
		for n.position.coord(axis) != 0 {
			old := n.position
			if err := n.move(); err != nil {
				return err
			}
			if old == n.position || n.position.coord(axis) == 0 {
				break
			}
		}
		return nil
	}

	other := 1 - axis
	if n.position.coord(other) != 0 {
		if err := n.turnLeft(); err != nil {
			return err
		}
		if err := n.move(); err != nil {
			return err
		}
	}
	return nil
}

func (n *Navigator) determineInitialOrientation() error {
	pos1, err := n.rawMove()
	if err != nil {
		return err
	}
	pos2, err := n.rawMove()
	if err != nil {
		return err
	}
	if pos1 == pos2 {
		if err := n.turnRight(); err != nil {
			return err
		}
		pos2, err = n.rawMove()
		if err != nil {
			return err
		}
	}

	delta := pos2.Sub(pos1)
	switch {
	case delta.X > 0:
		n.orientation = East
	case delta.X < 0:
		n.orientation = West
	case delta.Y > 0:
		n.orientation = North
	default:
		n.orientation = South
	}
	n.position = pos2
	return nil
}

// move issues a MOVE command and updates n.position.
func (n *Navigator) move() error {
	pos, err := n.rawMove()
	if err != nil {
		return err
	}
	n.position = pos
	return nil
}

// rawMove issues a MOVE command and returns the reported position
// without touching Navigator state, used during orientation discovery
// before n.position is meaningful.
func (n *Navigator) rawMove() (Position, error) {
	if err := n.conn.Send(msgMove); err != nil {
		return Position{}, err
	}
	payload, err := n.conn.ReadMessage("OK ", maxLenMoveReply, false)
	if err != nil {
		return Position{}, err
	}
	return parseStrictPosition(payload)
}

// turnLeft issues a TURN LEFT command, updating orientation and
// position from the reply.
func (n *Navigator) turnLeft() error {
	pos, err := n.turn(msgTurnLeft)
	if err != nil {
		return err
	}
	n.orientation = n.orientation.Left()
	n.position = pos
	return nil
}

// turnRight issues a TURN RIGHT command, updating orientation and
// position from the reply. Only used during initial orientation
// discovery; the steady-state navigation loop only ever turns left.
func (n *Navigator) turnRight() error {
	pos, err := n.turn(msgTurnRight)
	if err != nil {
		return err
	}
	n.orientation = n.orientation.Right()
	n.position = pos
	return nil
}

func (n *Navigator) turn(command string) (Position, error) {
	if err := n.conn.Send(command); err != nil {
		return Position{}, err
	}
	return n.readOKPosition(true)
}

func (n *Navigator) readOKPosition(stripTrailingSpaces bool) (Position, error) {
	payload, err := n.conn.ReadMessage("OK ", maxLenMoveReply, stripTrailingSpaces)
	if err != nil {
		return Position{}, err
	}
	return parseLenientPosition(payload)
}

// parseStrictPosition parses "x y" with no extraneous whitespace
// whatsoever, per the MOVE reply contract (§4.3): any leading/trailing
// space, or more than a single separating space, is a syntax error.
func parseStrictPosition(payload string) (Position, error) {
	if strings.TrimSpace(payload) != payload {
		return Position{}, syntaxErrorf("move: stray whitespace in position reply")
	}
	fields := strings.Split(payload, " ")
	if len(fields) != 2 {
		return Position{}, syntaxErrorf("move: malformed position reply")
	}
	return parseFields(fields)
}

// parseLenientPosition parses "x y" tolerating arbitrary whitespace
// runs between fields, matching the TURN reply contract.
func parseLenientPosition(payload string) (Position, error) {
	fields := strings.Fields(payload)
	if len(fields) != 2 {
		return Position{}, syntaxErrorf("turn: malformed position reply")
	}
	return parseFields(fields)
}

func parseFields(fields []string) (Position, error) {
	x, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil {
		return Position{}, syntaxErrorf("position: malformed x coordinate")
	}
	y, err := strconv.ParseInt(fields[1], 10, 32)
	if err != nil {
		return Position{}, syntaxErrorf("position: malformed y coordinate")
	}
	return Position{X: int32(x), Y: int32(y)}, nil
}
