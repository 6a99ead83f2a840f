package domain

// transitionMap lists the statuses a ticket may move to from each
// current status. Completed and skipped are terminal.
var transitionMap = map[TicketStatus][]TicketStatus{
	StatusWaiting: {StatusCalled},
	StatusCalled:  {StatusCompleted, StatusSkipped},
}

func CanTransition(from, to TicketStatus) bool {
	for _, allowed := range transitionMap[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
