package derive

// Display ceilings for the hearts row. The row renders at most 60 heart
// containers and 20 temp hearts; anything beyond shows as an overflow count.
const (
	HeartDisplayCap = 60
	TempHeartCap    = 20
)

// HeartMark is one unit marker in the hearts row
type HeartMark int

const (
	HeartFull HeartMark = iota
	HeartEmpty
	HeartTemp
)

// HeartsView is the derived hearts visualization. Unlike the resource
// pools, HP is never forced back into range; the view only caps what it
// draws.
type HeartsView struct {
	Filled   int
	Empty    int
	Temp     int
	Overflow int
}

// Hearts derives the view from raw hp/max/temp values
func Hearts(hp, max, temp int) HeartsView {
	if max < 0 {
		max = 0
	}
	if temp < 0 {
		temp = 0
	}

	safeMax := max
	if safeMax > HeartDisplayCap {
		safeMax = HeartDisplayCap
	}

	filled := clamp(hp, 0, safeMax)
	if temp > TempHeartCap {
		temp = TempHeartCap
	}

	return HeartsView{
		Filled:   filled,
		Empty:    safeMax - filled,
		Temp:     temp,
		Overflow: max - safeMax,
	}
}

// Marks returns the ordered unit markers: filled, then empty, then temp
func (v HeartsView) Marks() []HeartMark {
	marks := make([]HeartMark, 0, v.Filled+v.Empty+v.Temp)
	for i := 0; i < v.Filled; i++ {
		marks = append(marks, HeartFull)
	}
	for i := 0; i < v.Empty; i++ {
		marks = append(marks, HeartEmpty)
	}
	for i := 0; i < v.Temp; i++ {
		marks = append(marks, HeartTemp)
	}
	return marks
}
