package stock

// Outcome is the result of one delta. Err is nil when the stock moved.
type Outcome struct {
	Delta      Delta
	StockAfter int64
	Err        error
}

// Report collects outcomes in apply order.
type Report struct {
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

func (r Report) Applied() int {
	n := 0

	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}

	return n
}
