// Package batch runs many independent searches with bounded concurrency.
//
// A batch is a list of Jobs, usually loaded from a YAML file. Each job is
// handed to a RunFunc; results keep the order of the jobs whatever order
// they finish in, and a failing job never stops the others.
package batch
