// Package football implements the sched_football harness: a game between
// five teams of real-time workers that checks whether the N highest-priority
// runnable threads are always the ones running on an N-CPU machine.
//
// # The Game
//
// Every team has one player per CPU. Teams are spawned in this order, each
// at a higher priority than the last, and each spawn waits for the whole
// team to check in before the next one starts:
//
//   - Low defense grabs one low lock each and spins.
//   - Mid defense grabs one mid lock each, then blocks on a low lock.
//   - Offense spins, advancing the ball every time it gets a CPU.
//   - High defense blocks on the mid locks.
//   - Crazy fans burn CPU in short bursts above everyone else.
//
// With the high defense blocked, the offense would own the machine, unless
// the high defenders lend their priority down the lock chain to the mid and
// low defenders, who then keep every CPU busy. After all teams check in the
// referee resets the ball, waits out the game and expects the ball to still
// be at zero.
//
// # Priorities
//
// [Priority] only promises relative order. The numeric level each class runs
// at comes from [Levels]; [DefaultLevels] matches the classic test.
//
// # Failure Modes
//
// Spawn failures and check-in timeouts abort the game ([SpawnError]); a
// moving ball is a result, not an error ([Result.Passed] is false).
package football
