package gerkit

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

type Stage int

const (
	PreUpdate Stage = iota
	Update
	PostUpdate
	Render
)

var stages = []Stage{PreUpdate, Update, PostUpdate, Render}

// System runs once per tick in its stage.
type System func(s *Session)

// EventHandler reacts to input. Returning true stops further dispatch.
type EventHandler func(s *Session, ev Event) bool

type Module interface {
	Install(app *App, s *Session) error
}

type App struct {
	session   *Session
	modules   []Module
	systems   map[Stage][]System
	handlers  []EventHandler
	closers   []func()
	resources map[reflect.Type]any
	events    chan Event
	tickRate  int
	closed    bool
}

func newApp(s *Session) *App {
	return &App{
		session:   s,
		systems:   make(map[Stage][]System),
		resources: make(map[reflect.Type]any),
		events:    make(chan Event, 256),
		tickRate:  s.Config.TickRate,
	}
}

func (app *App) Session() *Session { return app.session }

func (app *App) UseSystem(stage Stage, fn System) *App {
	app.systems[stage] = append(app.systems[stage], fn)
	return app
}

func (app *App) OnEvent(fn EventHandler) *App {
	app.handlers = append(app.handlers, fn)
	return app
}

// OnClose registers teardown run by Close in reverse order.
func (app *App) OnClose(fn func()) *App {
	app.closers = append(app.closers, fn)
	return app
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the module-provided value of type *T, if installed.
func Resource[T any](app *App) (*T, bool) {
	r, ok := app.resources[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return nil, false
	}
	return r.(*T), true
}

// Post queues an event from any goroutine. It reports false if the queue
// is full and the event was dropped.
func (app *App) Post(ev Event) bool {
	select {
	case app.events <- ev:
		return true
	default:
		return false
	}
}

// Dispatch delivers ev to handlers in install order. Must run on the UI
// goroutine.
func (app *App) Dispatch(ev Event) {
	if r, ok := ev.(Resize); ok {
		app.session.Resize(r.Width, r.Height)
	}
	for _, h := range app.handlers {
		if h(app.session, ev) {
			return
		}
	}
}

// Tick advances the clock, applies finished loads and runs every stage.
func (app *App) Tick(now time.Time) {
	app.session.Time.advance(now)
	app.session.Pump()
	for _, stage := range stages {
		for _, system := range app.systems[stage] {
			system(app.session)
		}
	}
}

// Run drives the frame loop until ctx is cancelled. Posted events are
// handled between ticks.
func (app *App) Run(ctx context.Context) error {
	rate := app.tickRate
	if rate <= 0 {
		rate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	app.Logger().Infof("running %d modules at %d ticks/s", len(app.modules), rate)
	app.Tick(time.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-app.events:
			app.Dispatch(ev)
		case <-app.session.Queue.Ready():
			app.session.Pump()
		case now := <-ticker.C:
			app.Tick(now)
		}
	}
}

// Close tears down modules and the session. It is safe to call twice.
func (app *App) Close() {
	if app.closed {
		return
	}
	app.closed = true
	for i := len(app.closers) - 1; i >= 0; i-- {
		app.closers[i]()
	}
	app.session.Close()
}
