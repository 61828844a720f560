package instruction

// Builder turns operation parameters into the program's wire representation.
type Builder interface {
	InitializeMint(params InitializeMintParams) (Instruction, error)
}
