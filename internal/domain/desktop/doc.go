// Package desktop composes the window manager, file store, terminal and drag
// controller into one simulated desktop session.
//
// Components:
//   - Session: phase machine and event dispatch (not safe for concurrent use)
//   - Runner: actor goroutine that serializes events, timers and boot reports
//   - Factory: builds runners from a seed profile
//   - Registry: bounded set of live runners
//
// Phases:
//
//	Booting --boot finished--> BootFinishing --fade--> DesktopShown
//	DesktopShown --restart--> Booting --80ms--> BootFinishing --900ms--> DesktopShown
//
// Every boot and restart starts a new generation. Timer and boot events carry
// the generation they were scheduled for and are dropped once it is stale.
//
// Example Usage:
//
//	factory := desktop.NewFactory(profile.Default(), logger)
//	runner := factory.New()
//	go runner.Run(ctx)
//	runner.Post(desktop.IconActivate{Window: window.Terminal})
//	snap := runner.Latest()
package desktop
