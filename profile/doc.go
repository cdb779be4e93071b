// Package profile provides optional runtime profiling for cidrcalc.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] with conditional
// compilation. Profiling must be enabled at build time using the "pprof"
// build tag; without it every [Profiler] is a no-op.
//
//	go build -tags pprof -o cidrcalc .
//
// # Modes
//
// The following modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list programmatically. It is empty when the
// pprof tag is unset.
//
// # Usage
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/profiles"),
//	)
//	defer p.Start().Stop()
//
// Profile files are written to the output directory with names matching the
// mode (e.g., cpu.pprof, mem.pprof). Analyze them with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The cidrcalc command exposes the profiler through --pprof-mode and
// --pprof-dir, defaulting to a pprof directory under the user cache
// directory. Profiling a batch run is the usual way to measure evaluation of
// large scripts:
//
//	cidrcalc --pprof-mode=cpu run -f subnets.cidr
package profile
