// Package symbol places proportional symbols on a projected map.
//
// # Overview
//
// Every visible country becomes one circle whose radius encodes its
// magnitude. Circles start at their projected anchor and are relaxed apart
// by a fixed-iteration force solver so they neither overlap each other nor
// cover the observer's exclusion zone.
//
// # Solver
//
// [Relax] runs the same velocity scheme as a d3-force simulation, with every
// source of randomness removed:
//
//   - alpha starts at 1 and decays toward 0.001 over 300 ticks
//   - an anchor force pulls each node toward its anchor with strength 0.5
//   - a collision force separates circles closer than r1 + r2 + 1, weighted
//     by r² so small circles move more than large ones
//   - an exclusion force pushes any circle overlapping the zone away from
//     the zone center with constant strength 2
//   - velocity keeps 0.6 of its value each tick
//
// The solver never checks for convergence. It always runs the requested
// number of ticks, so the output is a pure function of the input slice,
// its order and the zone.
//
// # Building a Layout
//
// [Layout] assigns radii from a [Scale] and relaxes the result:
//
//	scale := symbol.NewSqrtScale(maxMagnitude)
//	nodes := symbol.Layout(inputs, &zone, scale)
package symbol
