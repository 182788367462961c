package valence_test

import (
	"fmt"

	"github.com/aretw0/valence"
	"github.com/aretw0/valence/pkg/domain"
)

func sampleDocument() domain.Document {
	return domain.Document{
		ID: "board",
		Nodes: []domain.Node{
			{ID: "a", Type: "task", Position: domain.Position{X: 0, Y: 0}},
			{ID: "b", Type: "task", Position: domain.Position{X: 250, Y: 0}},
			{ID: "c", Type: "note", Position: domain.Position{X: 1000, Y: 1000}},
		},
		Edges: []domain.Edge{{ID: "ab", Source: "a", Target: "b"}},
	}
}

// ExampleNew shows the undo/redo flow and the notifications a toolbar would receive.
func ExampleNew() {
	ed := valence.New(valence.WithDocument(sampleDocument()))

	unsubscribe := ed.History().Subscribe(func(canUndo, canRedo bool) {
		fmt.Printf("undo=%v redo=%v\n", canUndo, canRedo)
	})
	defer unsubscribe()

	ed.Canvas().DeleteNode("b")
	fmt.Println("nodes:", len(ed.Document().Nodes), "edges:", len(ed.Document().Edges))

	ed.Undo()
	fmt.Println("nodes:", len(ed.Document().Nodes), "edges:", len(ed.Document().Edges))

	// Output:
	// undo=false redo=false
	// undo=true redo=false
	// nodes: 2 edges: 0
	// undo=false redo=true
	// nodes: 3 edges: 1
}

// ExampleEditor_Overlaps shows awareness detection with the default 50px distance.
func ExampleEditor_Overlaps() {
	ed := valence.New(valence.WithDocument(sampleDocument()))

	fmt.Println(ed.Overlaps().Keys())

	ed.Canvas().MoveNode("c", domain.Position{X: -200, Y: 150})
	entered, left := ed.AwarenessChanges()
	fmt.Println("entered:", entered, "left:", left)

	// Output:
	// [a:b]
	// entered: [a:b a:c] left: []
}
