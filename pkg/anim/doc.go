// Package anim schedules transitions between precomputed frames.
//
// A [Scheduler] runs in one of two modes. [Scheduler.Cycle] advances to the
// next frame on a fixed period and plays a bounded transition toward it.
// [Scheduler.Once] plays a single transition, typically after a dependency
// changed. Transitions report eased progress through a [StepFunc]; the host
// owns the drawn state and interpolates it with [InterpolateFrame] or its
// own code.
//
// # States
//
//	Idle → Scheduled → Transitioning → Scheduled → … → Idle
//
// Starting a cycle or a one-shot while a transition is in flight retargets
// it: the old transition stops emitting and a new one starts from wherever
// the host currently is (signalled by [Step.Start]). There is no queue.
//
// # Teardown
//
// Every Cycle or Once call opens a new generation and returns a [Task]
// handle for it. [Scheduler.Stop] or [Task.Cancel] closes the generation:
// pending timers are stopped and any timer that still fires finds a stale
// generation and does nothing. Once Stop returns no step function of the
// closed generation runs again. Step functions run serially and must not
// call back into the scheduler synchronously.
//
// Time comes from a [Clock]. Tests drive a [FakeClock] by hand.
package anim
