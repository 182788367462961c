/*
Package valence provides editor state utilities for node-graph canvases:
an undo/redo history of reversible commands and an awareness detector that
finds nodes placed close to each other.

# Concept

The canvas (nodes and edges) lives outside the history. Every change is a
command: a forward action, its inverse and a label. The history keeps a
bounded linear log of commands with a cursor. Executing after an undo
discards the redo branch; when the log is full the oldest command is evicted.

Awareness expands each node's bounding box by a fixed distance and reports
the pairs whose expanded boxes intersect, so a UI can hint at relationships
between nearby nodes.

# Usage

	ed := valence.New(valence.WithDocument(doc))

	unsubscribe := ed.History().Subscribe(func(canUndo, canRedo bool) {
		toolbar.SetEnabled(canUndo, canRedo)
	})
	defer unsubscribe()

	ed.Canvas().MoveNode("a", domain.Position{X: 120, Y: 80})
	ed.Canvas().DeleteNode("b")
	ed.Undo()

	for _, key := range ed.Overlaps().Keys() {
		fmt.Println("near:", key)
	}

Node components receive the canvas bundle through a context.Context:

	ctx = canvas.WithContext(ctx, ed.Canvas())
	c, err := canvas.FromContext(ctx)

# Architecture

  - pkg/geometry: bounding boxes, overlap tests and pair keys.
  - pkg/command: reversible commands over a node/edge Target.
  - pkg/history: the bounded undo/redo log with subscriptions.
  - pkg/document: the canonical in-memory document.
  - pkg/canvas: the capability bundle handed to node components.
  - pkg/ports: persistence interfaces; adapters live under pkg/adapters and internal/adapters.
*/
package valence
