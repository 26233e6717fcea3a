package entity

// SwapPointEntry is one reference-data record driving the forward
// subscription fan-out. Maturities are stored already normalized.
type SwapPointEntry struct {
	Ccy1         string
	Ccy2         string
	FromMaturity string
	ToMaturity   string
}

func (e SwapPointEntry) Pair() string {
	return e.Ccy1 + "/" + e.Ccy2
}
