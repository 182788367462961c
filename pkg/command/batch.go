package command

// Batch groups commands into a single undo step.
type Batch struct {
	Commands []Command
	Label    string
}

// NewBatch creates a batch over cmds. Nil entries are skipped.
func NewBatch(description string, cmds ...Command) *Batch {
	kept := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &Batch{Commands: kept, Label: description}
}

func (b *Batch) Kind() Kind { return KindBatch }

func (b *Batch) Description() string { return b.Label }

// Execute runs the sub-commands in order.
func (b *Batch) Execute() {
	for _, c := range b.Commands {
		c.Execute()
	}
}

// Undo reverts the sub-commands last to first, so later commands that depend
// on earlier ones are unwound first.
func (b *Batch) Undo() {
	for i := len(b.Commands) - 1; i >= 0; i-- {
		b.Commands[i].Undo()
	}
}
