// Package frames builds the per-year symbol layouts of a map selection.
//
// A selection names a set of regions and either one year or a year range.
// [Build] resolves every selected country's anchor once, sizes all frames on
// a shared square-root scale and relaxes each frame independently, so
// symbols move between frames only because their radii changed.
//
// A selection without regions or years yields an empty [Result]; renderers
// draw the base map alone in that case.
package frames
