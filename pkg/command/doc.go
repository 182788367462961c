/*
Package command defines the unit of undo/redo: a forward action paired with its
inverse and a human-readable description.

Commands never hold graph state themselves. Each variant carries plain data
(ids, before/after values) plus a Target, the capability to apply a transform to
the canonical node or edge collection. Execute applies the forward transform and
Undo applies its structural inverse.

Invoking Execute or Undo out of sequence is tolerated: adds upsert by id, deletes
are filters, and moves or data merges are idempotent. Sequencing is the job of
the history log.

# Variants

  - MoveNode, UpdateNodeData, AddNode, DeleteNode: node mutations.
  - AddEdge, DeleteEdge: edge mutations.
  - Batch: runs sub-commands in order and undoes them in reverse order.
  - Func: adapts a pair of closures.

Spec is the serializable form of a command, decoded from generic maps and
turned into a concrete variant with Spec.Build.
*/
package command
