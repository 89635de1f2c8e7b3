// Package game is CakeWalk, a small platformer built on cakewalk: run right,
// eat the cakes, dodge the flames and spikes, reach the goal.
//
// A Session builds a cakewalk.World from a Level and reports game events
// (cakes eaten, damage taken, level complete) through its own dispatcher.
package game
