// internal/state/state.go
package state

// Phase - фаза матча.
type Phase int

const (
	MainMenu Phase = iota
	Playing
	Paused
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case MainMenu:
		return "MainMenu"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Won:
		return "Won"
	case Lost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the match is over.
func (p Phase) Terminal() bool { return p == Won || p == Lost }

// transitions - разрешённые переходы. Won и Lost достижимы только из Playing;
// новый матч можно начать из любой фазы.
var transitions = map[Phase][]Phase{
	MainMenu: {Playing},
	Playing:  {Playing, Paused, Won, Lost, MainMenu},
	Paused:   {Playing, MainMenu},
	Won:      {Playing, MainMenu},
	Lost:     {Playing, MainMenu},
}

// Allowed reports whether the machine may move from one phase to another.
func Allowed(from, to Phase) bool {
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// State - интерфейс для всех состояний
type State interface {
	Enter()
	Update(deltaTime float64)
	Exit()
}

// StateMachine - структура для управления состояниями
type StateMachine struct {
	phase    Phase
	current  State
	states   map[Phase]State
	onChange func(from, to Phase)
}

// NewStateMachine создаёт машину в фазе MainMenu. Состояния без реализации
// допустимы: переход в них просто меняет фазу.
func NewStateMachine(states map[Phase]State) *StateMachine {
	sm := &StateMachine{phase: MainMenu, states: states}
	sm.current = states[MainMenu]
	if sm.current != nil {
		sm.current.Enter()
	}
	return sm
}

// OnChange registers fn to run after every successful transition.
func (sm *StateMachine) OnChange(fn func(from, to Phase)) {
	sm.onChange = fn
}

// Phase returns the current phase.
func (sm *StateMachine) Phase() Phase { return sm.phase }

// SetPhase moves to the given phase if the transition table allows it.
// Disallowed transitions are reported as false and change nothing.
func (sm *StateMachine) SetPhase(to Phase) bool {
	from := sm.phase
	if !Allowed(from, to) {
		return false
	}
	if sm.current != nil {
		sm.current.Exit() // Выход из текущего состояния, если оно есть
	}
	sm.phase = to
	sm.current = sm.states[to]
	if sm.current != nil {
		sm.current.Enter() // Вход в новое состояние, только если оно не nil
	}
	if sm.onChange != nil {
		sm.onChange(from, to)
	}
	return true
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update(deltaTime float64) {
	if sm.current != nil {
		sm.current.Update(deltaTime)
	}
}
