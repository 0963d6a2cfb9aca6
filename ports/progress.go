package ports

// ProgressPort receives completion notifications while trials run.
// Increment is called concurrently from every worker and must not block.
type ProgressPort interface {
	Start(total int)
	Increment()
	Finish()
}
