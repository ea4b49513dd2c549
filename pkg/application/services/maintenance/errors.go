package maintenance

import "errors"

// ErrUsageDecrease is returned when a reading would move a usage counter backwards
var ErrUsageDecrease = errors.New("usage counters cannot decrease")
