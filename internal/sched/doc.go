// Package sched provides the schedulable units and locks that the football
// harness runs on.
//
// The harness only relies on two contracts, both defined here:
//
//   - [Spawner] creates a [Unit] of work at a numeric policy level and starts
//     it running. [ThreadSpawner] backs every unit with its own OS thread,
//     optionally switched to SCHED_FIFO.
//   - [Lock] is a blocking mutual-exclusion lock. [LockPI] locks are Linux
//     priority-inheritance futexes: a waiter lends its priority to the holder
//     for as long as it is blocked. [LockPlain] locks do not inherit and exist
//     to show that the harness detects the inversion they allow.
//
// # Yield Points
//
// [Unit.Yield] is a real sched_yield(2) on thread-backed units. It is the
// only point at which a worker voluntarily gives up its CPU, and the test is
// meaningless without it: nothing else in a worker loop lets the kernel put a
// different runnable thread on the processor. Callers must not optimize it
// away. It is a hint, not a guarantee; the kernel still decides who runs.
//
// # Privileges
//
// [PolicyFIFO] needs CAP_SYS_NICE (or a suitable RLIMIT_RTPRIO). PI futexes
// need no privileges but do require that the locking goroutine stays on one
// OS thread between Lock and Unlock, which every [Unit] guarantees.
package sched
