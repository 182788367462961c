/*
Package history implements a linear undo/redo log of commands.

A History owns an ordered slice of executed commands and a cursor (index) that
points at the last executed one, or -1 when there is none. Everything up to the
cursor has been executed; everything after it is waiting to be redone.

	Execute(c)  runs c, drops every redo entry, appends c, moves the cursor to it
	Record(c)   same bookkeeping for a mutation the caller already performed
	Undo()      undoes the command at the cursor and moves the cursor back
	Redo()      moves the cursor forward and re-executes that command
	Clear()     empties the log

The log is a single branch: appending after an Undo discards the undone commands.
It is bounded by MaxSize; when an append overflows it, the oldest command is
evicted for good and the cursor shifts with it.

After each of these operations every subscriber is called with (canUndo, canRedo).
Subscribing delivers the current pair once immediately.

# Concurrency

One mutex guards the execute, truncate, append and evict sequence. Commands run
while it is held and must not call back into the same History. The resulting
event is delivered to hooks and subscribers after the mutex is released, so they
may read the history, for example to refresh an "Undo Move node" label.

ExecuteWith extends the critical section to building the command, for callers
whose command captures before-values from shared state.
*/
package history
