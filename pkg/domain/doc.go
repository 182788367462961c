/*
Package domain contains the core data model shared by the valence packages.

It defines the graph entities the editor works on (Nodes, Edges and the Document
that groups them) and the lifecycle events emitted by the command history. The
package is kept free of I/O and persistence concerns; stores and adapters live
elsewhere and exchange these types by value.

# Key Entities

  - Node: a positioned box on the canvas with an optional rendered or declared size and free-form data.
  - Edge: a connection between a source node and a target node.
  - Document: the canonical node and edge collections of one graph.
  - HistoryEvent / HistoryHooks: notifications about changes to an undo/redo log.
*/
package domain
