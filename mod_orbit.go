package gerkit

// OrbitModule feeds drag and zoom input to the session orbit controls.
type OrbitModule struct {
	// Step is the rotation applied per arrow key press, in radians.
	Step float32
}

const orbitKeyStep = 0.1

func (m OrbitModule) Install(app *App, s *Session) error {
	step := m.Step
	if step == 0 {
		step = orbitKeyStep
	}
	app.OnEvent(func(s *Session, ev Event) bool {
		switch ev := ev.(type) {
		case OrbitDrag:
			s.Orbit.Rotate(ev.DX, ev.DY)
			return true
		case Zoom:
			s.Orbit.Zoom(ev.Factor)
			return true
		case Key:
			switch ev.Code {
			case KeyLeft:
				s.Orbit.Rotate(-step, 0)
			case KeyRight:
				s.Orbit.Rotate(step, 0)
			case KeyUp:
				s.Orbit.Rotate(0, -step)
			case KeyDown:
				s.Orbit.Rotate(0, step)
			case KeyRune:
				switch ev.Rune {
				case '+', '=':
					s.Orbit.Zoom(0.9)
				case '-':
					s.Orbit.Zoom(1.1)
				default:
					return false
				}
			default:
				return false
			}
			return true
		}
		return false
	})
	app.UseSystem(Update, func(s *Session) {
		if s.Orbit.Moving() {
			s.Orbit.Update()
		}
	})
	return nil
}
