package automaton

// ToDFA performs the standard subset construction over Sigma x Sigma labels,
// used only by the dot package's graph dump path.
// Subset identity uses the injective Column hash of the element list.
func (a *Automaton) ToDFA() *Automaton {
	out := New(a.Codec)
	namer := NewNamer()

	initial := Column(append([]State(nil), a.initial...))
	workQueue := []Column{initial}
	visited := map[string]bool{initial.Key(): true}

	startID, _ := namer.StateFor(initial.Key())
	out.AddInitial(startID)

	for len(workQueue) > 0 {
		qList := workQueue[0]
		workQueue = workQueue[1:]

		newQ, _ := namer.StateFor(qList.Key())
		if anyFinal(a, qList) {
			out.AddFinal(newQ)
		}

		for _, label := range a.Codec.Pairs() {
			var pList Column
			for _, q := range qList {
				for _, p := range a.SuccessorsOf(q, label) {
					pList = pList.Append(p)
				}
			}
			if len(pList) == 0 {
				continue
			}
			newP, seen := namer.StateFor(pList.Key())
			if !visited[pList.Key()] {
				visited[pList.Key()] = true
				workQueue = append(workQueue, pList)
			}
			_ = seen
			out.AddTransition(newQ, label, newP)
		}
	}
	return out
}

func anyFinal(a *Automaton, qs Column) bool {
	for _, q := range qs {
		if a.IsFinal(q) {
			return true
		}
	}
	return false
}
