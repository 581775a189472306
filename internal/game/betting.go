package game

// Act applies a betting action for a seat. Preconditions are checked in
// order, each a distinct failure: the seat must hold the active turn
// (ErrOutOfTurn), must be able to act (ErrSeatInactive), and the street must
// be a betting street (ErrNotAcceptingActions). Amount is the target total
// street contribution for a raise and is ignored otherwise. Rejected actions
// mutate nothing.
func (r *Room) Act(seatID string, action Action, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, idx := r.seatByID(seatID)
	if seat == nil {
		return ErrSeatInactive
	}
	if idx != r.activeIdx {
		return ErrOutOfTurn
	}
	if seat.Folded || seat.AllIn || seat.SittingOut || seat.Absent {
		return ErrSeatInactive
	}
	if !r.street.Betting() {
		return ErrNotAcceptingActions
	}

	street := r.street
	committed, err := r.apply(seat, action, amount)
	if err != nil {
		return err
	}
	seat.LastAction = action.String()
	r.recorder.RecordAction(r.handRef, seat.Name, action.String(), committed, street.String())
	r.logger.Debug("action applied",
		"name", seat.Name,
		"action", action,
		"amount", committed,
		"street", street)

	r.advanceTurn()
	r.routeCompletion()
	r.notifyAll()
	return nil
}

// apply validates and executes one action, returning the seat's resulting
// street contribution for chip-moving actions (0 for check and fold).
func (r *Room) apply(seat *Seat, action Action, amount int) (int, error) {
	switch action {
	case Fold:
		seat.Folded = true
		return 0, nil

	case Check:
		if seat.StreetBet < r.currentBet {
			return 0, invalidAmountf("cannot check, %d owed", r.currentBet-seat.StreetBet)
		}
		if r.street == Preflop && seat.StreetBet < r.cfg.BigBlind {
			return 0, invalidAmountf("cannot check below the big blind")
		}
		return 0, nil

	case Call:
		owed := r.currentBet - seat.StreetBet
		if owed <= 0 {
			return 0, invalidAmountf("nothing to call")
		}
		pay := min(owed, seat.Chips)
		seat.Chips -= pay
		seat.StreetBet += pay
		r.pot += pay
		if seat.Chips == 0 {
			seat.AllIn = true
		}
		return seat.StreetBet, nil

	case Raise:
		if amount <= r.currentBet {
			return 0, invalidAmountf("raise to %d must exceed the current bet of %d", amount, r.currentBet)
		}
		if amount-r.currentBet < r.minRaise {
			return 0, invalidAmountf("raise to %d is below the minimum raise to %d", amount, r.currentBet+r.minRaise)
		}
		if amount > seat.Chips+seat.StreetBet {
			return 0, invalidAmountf("raise to %d exceeds the stack", amount)
		}
		pay := amount - seat.StreetBet
		seat.Chips -= pay
		seat.StreetBet = amount
		r.pot += pay
		r.minRaise = amount - r.currentBet
		r.currentBet = amount
		r.returnToIdx = r.activeIdx
		if seat.Chips == 0 {
			seat.AllIn = true
		}
		return seat.StreetBet, nil

	case AllIn:
		pay := seat.Chips
		seat.Chips = 0
		seat.StreetBet += pay
		r.pot += pay
		seat.AllIn = true
		if seat.StreetBet > r.currentBet {
			// Treated as a raise even when the increment is under-sized,
			// which re-opens action to every seat still able to act.
			r.minRaise = seat.StreetBet - r.currentBet
			r.currentBet = seat.StreetBet
			r.returnToIdx = r.activeIdx
		}
		return seat.StreetBet, nil
	}
	return 0, invalidAmountf("unknown action")
}

// advanceTurn moves the active turn to the next contender and marks the
// betting round complete when no rotation is possible: one or zero seats left
// who can act, every bet matched with the aggressor unable to act again, or
// rotation landing on the return-to seat with every bet matched. A lone
// contender closes the round matched or not; the next street opens with the
// turn on them.
func (r *Room) advanceTurn() {
	if r.contenders() <= 1 {
		r.roundDone = true
		return
	}
	if r.allMatched() && !r.seats[r.returnToIdx].CanAct() {
		r.roundDone = true
		return
	}
	if idx := r.nextContenderAfter(r.activeIdx); idx != -1 {
		if idx == r.returnToIdx && r.allMatched() {
			r.roundDone = true
		}
		r.activeIdx = idx
	}
}

// allMatched reports whether every seat still able to act has matched the
// table bet.
func (r *Room) allMatched() bool {
	for _, s := range r.seats {
		if s.CanAct() && s.StreetBet != r.currentBet {
			return false
		}
	}
	return true
}

// forceFold folds a seat outside its turn (mid-hand departure). Committed
// chips stay in the pot. If the seat held the turn, the turn advances; either
// way completion runs so the hand cannot stall on a departed seat.
func (r *Room) forceFold(idx int) {
	seat := r.seats[idx]
	seat.Folded = true
	seat.LastAction = Fold.String()
	r.recorder.RecordAction(r.handRef, seat.Name, Fold.String(), 0, r.street.String())
	r.logger.Info("seat auto-folded", "name", seat.Name)

	if !r.street.Betting() {
		return
	}
	if r.activeIdx == idx {
		r.advanceTurn()
	} else if r.contenders() <= 1 || (r.allMatched() && !r.seats[r.returnToIdx].CanAct()) {
		r.roundDone = true
	}
	r.routeCompletion()
}

// routeCompletion advances the state machine once betting settles: a lone
// live seat wins uncontested, a completed river round shows down, any other
// completed round deals the next street.
func (r *Room) routeCompletion() {
	if !r.street.Betting() {
		return
	}
	if r.liveSeats() == 1 {
		r.runShowdown()
		return
	}
	if !r.roundDone {
		return
	}
	if r.street == River {
		r.runShowdown()
		return
	}
	r.dealNextStreet()
}

// dealNextStreet resets the per-street betting state, burns and deals the
// next community cards, and hands the turn to the first contender after the
// dealer. When nobody can act (an all-in runout) it keeps dealing streets
// and finishes at showdown.
func (r *Room) dealNextStreet() {
	for {
		r.currentBet = 0
		r.minRaise = r.cfg.BigBlind
		r.roundDone = false
		for _, s := range r.seats {
			s.StreetBet = 0
		}

		var draw int
		switch r.street {
		case Preflop:
			r.street, draw = Flop, 3
		case Flop:
			r.street, draw = Turn, 1
		case Turn:
			r.street, draw = River, 1
		default:
			return
		}

		if err := r.deck.Burn(); err != nil {
			r.abortHand(err)
			return
		}
		cards, err := r.deck.DealN(draw)
		if err != nil {
			r.abortHand(err)
			return
		}
		r.community = append(r.community, cards...)
		r.logger.Debug("street dealt", "street", r.street, "community", r.community)

		if idx := r.nextContenderAfter(r.dealerIdx); idx != -1 {
			r.activeIdx = idx
			r.returnToIdx = idx
			return
		}
		if r.street == River {
			r.runShowdown()
			return
		}
	}
}
