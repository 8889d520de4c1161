package swarm

// Observer receives progress notifications while a run is in flight.
// Calls may arrive concurrently from different tasks; every call happens
// before Run returns.
type Observer interface {
	TaskStarted(name string)
	TaskFinished(outcome Outcome)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Started  func(name string)
	Finished func(outcome Outcome)
}

func (f ObserverFuncs) TaskStarted(name string) {
	if f.Started != nil {
		f.Started(name)
	}
}

func (f ObserverFuncs) TaskFinished(outcome Outcome) {
	if f.Finished != nil {
		f.Finished(outcome)
	}
}

type nopObserver struct{}

func (nopObserver) TaskStarted(string)   {}
func (nopObserver) TaskFinished(Outcome) {}
